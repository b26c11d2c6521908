package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/trafficgo/internal/stats"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w %q: must be 'text', 'json' or 'yaml'", ErrUnknownFormat, s)
}

// Render writes r to w.
func Render(w io.Writer, format Format, r stats.Report) error {
	switch format {
	case FormatText, "":
		return renderText(w, r)
	case FormatJSON:
		return encodeJSON(w, r)
	case FormatYAML:
		return encodeYAML(w, r)
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

// Invalid is the report for a scenario rejected before execution.
type Invalid struct {
	Scenario string   `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	Verdict  string   `json:"verdict" yaml:"verdict"`
	Errors   []string `json:"errors" yaml:"errors"`
}

// RenderInvalid writes the "scenario invalid" form for err. Joined errors are
// listed one per line.
func RenderInvalid(w io.Writer, format Format, name string, err error) error {
	inv := Invalid{Scenario: name, Verdict: "Invalid", Errors: splitErrors(err)}
	switch format {
	case FormatText, "":
		return renderInvalidText(w, inv)
	case FormatJSON:
		return encodeJSON(w, inv)
	case FormatYAML:
		return encodeYAML(w, inv)
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

func splitErrors(err error) []string {
	if err == nil {
		return nil
	}
	var out []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

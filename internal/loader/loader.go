package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/trafficgo/internal/ctxlog"
	"github.com/specialistvlad/trafficgo/internal/scenario"
)

// ErrUnsupportedFormat is returned for files whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported scenario format")

// Loader produces a scenario from a path.
type Loader interface {
	Load(ctx context.Context, path string) (*scenario.Scenario, error)
}

type decodeFunc func(path string, data []byte) (*scenario.Scenario, error)

// FileLoader dispatches on the file extension.
type FileLoader struct {
	decoders map[string]decodeFunc
}

// New creates a FileLoader that understands JSON, YAML and HCL.
func New() *FileLoader {
	return &FileLoader{
		decoders: map[string]decodeFunc{
			".json": decodeJSON,
			".yaml": decodeYAML,
			".yml":  decodeYAML,
			".hcl":  decodeHCL,
		},
	}
}

// Load reads and decodes the scenario at path.
func (l *FileLoader) Load(ctx context.Context, path string) (*scenario.Scenario, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)
	logger.Debug("Scenario loader started.")

	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := l.decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%s: %w %q (want one of %s)", path, ErrUnsupportedFormat, ext, strings.Join(Extensions, ", "))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	sc, err := decode(path, data)
	if err != nil {
		return nil, err
	}
	logger.Debug("Scenario loaded.", "format", ext, "servers", len(sc.Servers), "requests", len(sc.Requests), "responses", len(sc.Responses))
	return sc, nil
}

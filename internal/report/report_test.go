package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/specialistvlad/trafficgo/internal/outcome"
	"github.com/specialistvlad/trafficgo/internal/stats"
	"github.com/specialistvlad/trafficgo/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() stats.Report {
	r := stats.Aggregate("users", []outcome.Outcome{
		{RequestID: 1, Kind: outcome.Passed, Status: 200, Duration: 12 * time.Millisecond},
		{
			RequestID: 2, Kind: outcome.FailedValidation, Status: 500, Wave: 1,
			Reason: "status mismatch: want 200, got 500",
			Verdict: &validator.Verdict{
				Failed: validator.CheckStatus,
				Checks: []validator.CheckResult{
					{Check: validator.CheckStatus, Detail: "want 200, got 500"},
					{Check: validator.CheckHeaders, Passed: true},
					{Check: validator.CheckBody, Passed: true},
				},
			},
		},
		{RequestID: 3, Kind: outcome.Blocked, Wave: 2, Reason: "dependency did not pass: 2", BlockedBy: []uint32{2}},
		{RequestID: 4, Kind: outcome.FailedTransport, Reason: "connection refused: dial tcp"},
	})
	r.RunID = "run-1"
	return r
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"text", "JSON", "yaml"} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRender_Text(t *testing.T) {
	// --- Arrange ---
	var buf bytes.Buffer

	// --- Act ---
	err := Render(&buf, FormatText, sampleReport())

	// --- Assert ---
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Scenario users")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "FailedValidation")
	assert.Contains(t, out, "dependency did not pass: 2")
	assert.Contains(t, out, "connection refused: dial tcp")
	assert.Contains(t, out, "request 2: status mismatch")
	assert.Contains(t, out, "    want 200, got 500")
	assert.Contains(t, out, "4 requests: 1 passed, 1 failed validation, 1 failed transport, 1 blocked")
	assert.Contains(t, out, "FAILED")
	assert.NotContains(t, out, "\x1b[", "non-terminal output carries no color codes")
}

func TestRender_TextPassed(t *testing.T) {
	var buf bytes.Buffer
	r := stats.Aggregate("ok", []outcome.Outcome{{RequestID: 1, Kind: outcome.Passed, Status: 200}})

	require.NoError(t, Render(&buf, FormatText, r))

	assert.Contains(t, buf.String(), "PASSED")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, FormatJSON, sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Failed", decoded["verdict"])
	assert.Equal(t, "run-1", decoded["run_id"])
	counts := decoded["counts"].(map[string]any)
	assert.Equal(t, float64(1), counts["Blocked"])
	outcomes := decoded["outcomes"].([]any)
	require.Len(t, outcomes, 4)
	second := outcomes[1].(map[string]any)
	assert.Equal(t, "FailedValidation", second["kind"])
	assert.Equal(t, "status", second["verdict"].(map[string]any)["failed"])
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, FormatYAML, sampleReport()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Failed", decoded["verdict"])
	assert.Equal(t, "users", decoded["scenario"])
	assert.Contains(t, buf.String(), "kind: Blocked")
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, Format("xml"), sampleReport())
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRenderInvalid(t *testing.T) {
	cause := errors.Join(errors.New("request 1: unknown server [9]"), fmt.Errorf("request 2: dependency cycle"))

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderInvalid(&buf, FormatText, "users", cause))

		assert.Contains(t, buf.String(), "Scenario invalid: users")
		assert.Contains(t, buf.String(), "  - request 1: unknown server [9]")
		assert.Contains(t, buf.String(), "  - request 2: dependency cycle")
		assert.Contains(t, buf.String(), "No requests were sent.")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderInvalid(&buf, FormatJSON, "users", cause))

		var inv Invalid
		require.NoError(t, json.Unmarshal(buf.Bytes(), &inv))
		assert.Equal(t, "Invalid", inv.Verdict)
		assert.Len(t, inv.Errors, 2)
	})
}

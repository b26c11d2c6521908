package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/specialistvlad/trafficgo/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		wantExit   bool
		wantCode   int
		wantConfig *app.Config
	}{
		{
			name: "positional path with defaults",
			args: []string{"scenario.json"},
			wantConfig: &app.Config{
				ScenarioPath:   "scenario.json",
				LogFormat:      "text",
				LogLevel:       "info",
				ReportFormat:   "text",
				DefaultTimeout: 30 * time.Second,
			},
		},
		{
			name: "all flags",
			args: []string{"-s", "a.hcl", "--log-format", "JSON", "--log-level", "debug", "-o", "yaml",
				"-c", "4", "--timeout", "2s", "-k", "--print-scenario"},
			wantConfig: &app.Config{
				ScenarioPath:       "a.hcl",
				LogFormat:          "json",
				LogLevel:           "debug",
				ReportFormat:       "yaml",
				Concurrency:        4,
				DefaultTimeout:     2 * time.Second,
				InsecureSkipVerify: true,
				PrintScenario:      true,
			},
		},
		{name: "help", args: []string{"--help"}, wantExit: true},
		{name: "no path", args: []string{}, wantExit: true},
		{name: "nil args", args: nil, wantExit: true},
		{name: "unknown flag", args: []string{"--nope", "s.json"}, wantCode: ExitUsage},
		{name: "too many args", args: []string{"a.json", "b.json"}, wantCode: ExitUsage},
		{name: "bad log level", args: []string{"--log-level", "loud", "s.json"}, wantCode: ExitUsage},
		{name: "bad output", args: []string{"-o", "xml", "s.json"}, wantCode: ExitUsage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			cfg, shouldExit, err := Parse(tc.args, out)

			// --- Assert ---
			if tc.wantCode != 0 {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tc.wantCode, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExit, shouldExit)
			if tc.wantExit {
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			assert.Equal(t, tc.wantConfig, cfg)
		})
	}
}

func TestFromRunError(t *testing.T) {
	assert.NoError(t, FromRunError(nil))

	var exitErr *ExitError
	err := FromRunError(&app.InvalidScenarioError{Path: "s.json", Err: errors.New("cycle")})
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitInvalid, exitErr.Code)
	assert.Contains(t, exitErr.Message, "cycle")

	err = FromRunError(fmt.Errorf("wrapped: %w", &app.FailedRunError{}))
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitFailed, exitErr.Code)
}

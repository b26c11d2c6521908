package integration_tests

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/specialistvlad/trafficgo/internal/app"
	"github.com/specialistvlad/trafficgo/internal/dag"
	"github.com/specialistvlad/trafficgo/internal/outcome"
	"github.com/specialistvlad/trafficgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedPort(t *testing.T) uint16 {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := uint16(l.Addr().(*net.TCPAddr).Port)
	require.NoError(t, l.Close())
	return port
}

// Test for: A refused connection fails the request and blocks its dependents.
func TestErrorHandling_ConnectionRefusedBlocksDependents(t *testing.T) {
	// --- Arrange ---
	srv := testutil.NewFixtureServer(t)
	host, port := testutil.HostPort(t, srv.URL)
	content := fmt.Sprintf(`
servers:
  - {id: 1, protocol: http, host: 127.0.0.1, port: %d, http_version: v1_1}
  - {id: 2, protocol: http, host: %s, port: %d, http_version: v1_1}
requests:
  - {id: 1, server_id: 1, path: /down, method: GET}
  - {id: 2, server_id: 2, path: /api/v1/users, method: GET, depends: [1]}
  - {id: 3, server_id: 2, path: /api/v1/users, method: GET, depends: [2]}
  - {id: 4, server_id: 2, path: /api/v1/users, method: GET}
`, closedPort(t), host, port)

	// --- Act ---
	result := testutil.RunScenario(t, context.Background(), app.Config{}, "refused.yaml", content)

	// --- Assert ---
	var failed *app.FailedRunError
	require.ErrorAs(t, result.Err, &failed)
	got := failed.Report.Outcomes
	require.Len(t, got, 4)
	assert.Equal(t, outcome.FailedTransport, got[0].Kind)
	assert.Contains(t, got[0].Reason, "connection refused")
	assert.Equal(t, outcome.Blocked, got[1].Kind)
	assert.Equal(t, outcome.Blocked, got[2].Kind)
	assert.Equal(t, []uint32{2}, got[2].BlockedBy)
	assert.Equal(t, outcome.Passed, got[3].Kind, "independent request is unaffected")
}

// Test for: A per-request timeout fails only that request.
func TestErrorHandling_TimeoutIsLocal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	host, port := testutil.HostPort(t, srv.URL)
	content := fmt.Sprintf(`{
  "servers": [{"id": 1, "protocol": "http", "host": %q, "port": %d, "http_version": "v1_1"}],
  "requests": [
    {"id": 1, "server_id": 1, "path": "/slow", "method": "GET", "timeout_ms": 50},
    {"id": 2, "server_id": 1, "path": "/fast", "method": "GET"}
  ]
}`, host, port)

	result := testutil.RunScenario(t, context.Background(), app.Config{}, "timeout.json", content)

	var failed *app.FailedRunError
	require.ErrorAs(t, result.Err, &failed)
	assert.Equal(t, outcome.FailedTransport, failed.Report.Outcomes[0].Kind)
	assert.Contains(t, failed.Report.Outcomes[0].Reason, "timeout")
	assert.Equal(t, outcome.Passed, failed.Report.Outcomes[1].Kind)
}

// Test for: Structural errors are reported together and nothing is sent.
func TestErrorHandling_StructuralErrorsAbortBeforeDispatch(t *testing.T) {
	stub := testutil.NewStubTransport()
	content := `{
  "config": {"name": "broken"},
  "servers": [{"id": 1, "protocol": "http", "host": "h", "port": 80, "http_version": "v1_1"}],
  "requests": [
    {"id": 1, "server_id": 9, "path": "/", "method": "GET"},
    {"id": 2, "server_id": 1, "path": "/", "method": "GET", "depends": [7]}
  ],
  "responses": [
    {"id": 1, "request_id": 2, "expected": {"status": 200}},
    {"id": 2, "request_id": 2, "expected": {"status": 201}}
  ]
}`

	result := testutil.RunScenario(t, context.Background(), app.Config{}, "broken.json", content, app.WithTransport(stub))

	var invalid *app.InvalidScenarioError
	require.ErrorAs(t, result.Err, &invalid)
	assert.ErrorIs(t, result.Err, dag.ErrUnknownServer)
	assert.ErrorIs(t, result.Err, dag.ErrUnknownDependency)
	assert.ErrorIs(t, result.Err, dag.ErrDuplicateResponseForRequest)
	assert.Contains(t, result.Output, "Scenario invalid: broken")
	assert.Zero(t, stub.TotalCalls())
}

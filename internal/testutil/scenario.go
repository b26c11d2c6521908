package testutil

import (
	"net/http"
	"strconv"

	"github.com/specialistvlad/trafficgo/internal/scenario"
)

// ExampleServer is the single server used by most tests.
func ExampleServer() scenario.Server {
	return scenario.Server{
		ID:          1,
		Protocol:    scenario.ProtocolHTTP,
		Host:        "example.test",
		Port:        80,
		HTTPVersion: scenario.HTTP11,
	}
}

// Chain builds a scenario on ExampleServer where request i+1 depends on
// request i. Request ids start at 1 and hit GET /r<id>; each expects 200.
func Chain(n int) *scenario.Scenario {
	sc := &scenario.Scenario{
		Config:  scenario.Config{Name: "chain"},
		Servers: []scenario.Server{ExampleServer()},
	}
	for i := 1; i <= n; i++ {
		id := uint32(i)
		var deps []uint32
		if i > 1 {
			deps = []uint32{id - 1}
		}
		sc.Requests = append(sc.Requests, Get(id, PathFor(id), deps...))
		sc.Responses = append(sc.Responses, Expect(id, id, http.StatusOK, nil))
	}
	return sc
}

// Get builds a GET request against server 1.
func Get(id uint32, path string, deps ...uint32) scenario.Request {
	return scenario.Request{ID: id, ServerID: 1, Path: path, Method: http.MethodGet, Depends: deps}
}

// Expect builds an expected response for a request.
func Expect(id, requestID uint32, status uint16, body any) scenario.ExpectedResponse {
	return scenario.ExpectedResponse{
		ID:        id,
		RequestID: requestID,
		Expected:  scenario.ResponseContent{Status: status, Headers: map[string]string{}, Body: body},
	}
}

// PathFor is the conventional path of request id in generated scenarios.
func PathFor(id uint32) string {
	return "/r" + strconv.FormatUint(uint64(id), 10)
}

package validator

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"testing"

	"github.com/specialistvlad/trafficgo/internal/scenario"
	"github.com/specialistvlad/trafficgo/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expect(status uint16, headers map[string]string, body any) *scenario.ExpectedResponse {
	return &scenario.ExpectedResponse{ID: 1, RequestID: 1, Expected: scenario.ResponseContent{
		Status: status, Headers: headers, Body: body,
	}}
}

func TestValidate_AllChecksPass(t *testing.T) {
	// --- Arrange ---
	exp := expect(200, map[string]string{"content-type": "application/json"}, map[string]any{"result": "ok"})
	actual := &transport.Response{
		Status: 200,
		Header: http.Header{"Content-Type": {"application/json"}, "X-Extra": {"ignored"}},
		Body:   []byte(`{"result": "ok"}`),
	}

	// --- Act ---
	v := Validate(exp, actual)

	// --- Assert ---
	assert.True(t, v.Passed())
	require.Len(t, v.Checks, 3)
	assert.Equal(t, []Check{CheckStatus, CheckHeaders, CheckBody}, []Check{v.Checks[0].Check, v.Checks[1].Check, v.Checks[2].Check})
	assert.Empty(t, v.Reason())
}

func TestValidate_NilExpectationPasses(t *testing.T) {
	v := Validate(nil, &transport.Response{Status: 500})

	assert.True(t, v.Passed())
	assert.Empty(t, v.Checks)
}

func TestValidate_FirstFailureIsReported(t *testing.T) {
	testCases := []struct {
		name       string
		exp        *scenario.ExpectedResponse
		actual     *transport.Response
		wantFailed Check
		wantDetail string
	}{
		{
			name:       "status wins over body",
			exp:        expect(200, nil, map[string]any{"result": "ok"}),
			actual:     &transport.Response{Status: 500, Body: []byte(`{"result":"error"}`)},
			wantFailed: CheckStatus,
			wantDetail: "want 200, got 500",
		},
		{
			name:       "missing header",
			exp:        expect(200, map[string]string{"X-Id": "7"}, nil),
			actual:     &transport.Response{Status: 200, Header: http.Header{}},
			wantFailed: CheckHeaders,
			wantDetail: "header absent",
		},
		{
			name:       "header value differs",
			exp:        expect(200, map[string]string{"X-Id": "7"}, nil),
			actual:     &transport.Response{Status: 200, Header: http.Header{"X-Id": {"8"}}},
			wantFailed: CheckHeaders,
			wantDetail: `want "7", got "8"`,
		},
		{
			name:       "body differs",
			exp:        expect(200, nil, map[string]any{"result": "ok"}),
			actual:     &transport.Response{Status: 200, Body: []byte(`{"result":"no"}`)},
			wantFailed: CheckBody,
			wantDetail: "-want +got",
		},
		{
			name:       "body not json",
			exp:        expect(200, nil, map[string]any{"result": "ok"}),
			actual:     &transport.Response{Status: 200, Body: []byte(`<html>`)},
			wantFailed: CheckBody,
			wantDetail: "not valid JSON",
		},
		{
			name:       "array order matters",
			exp:        expect(200, nil, []any{1, 2}),
			actual:     &transport.Response{Status: 200, Body: []byte(`[2,1]`)},
			wantFailed: CheckBody,
		},
		{
			name:       "no numeric tolerance",
			exp:        expect(200, nil, 1.5),
			actual:     &transport.Response{Status: 200, Body: []byte(`1.5000001`)},
			wantFailed: CheckBody,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := Validate(tc.exp, tc.actual)

			assert.False(t, v.Passed())
			assert.Equal(t, tc.wantFailed, v.Failed)
			assert.Len(t, v.Checks, 3, "all checks are reported")
			assert.Contains(t, v.Reason(), string(tc.wantFailed)+" mismatch")
			assert.Contains(t, v.Reason(), tc.wantDetail)
		})
	}
}

func TestValidate_HeaderMatching(t *testing.T) {
	testCases := []struct {
		name   string
		want   string
		values []string
		ok     bool
	}{
		{name: "single value", want: "a", values: []string{"a"}, ok: true},
		{name: "any of several", want: "b", values: []string{"a", "b"}, ok: true},
		{name: "comma joined", want: "a, b", values: []string{"a", "b"}, ok: true},
		{name: "comma joined tight", want: "a,b", values: []string{"a", "b"}, ok: true},
		{name: "none of several", want: "c", values: []string{"a", "b"}, ok: false},
		{name: "joined out of order", want: "b, a", values: []string{"a", "b"}, ok: false},
		{name: "joined prefix of values", want: "a, b", values: []string{"a", "b", "c"}, ok: false},
		{name: "case sensitive value", want: "A", values: []string{"a"}, ok: false},
		{name: "absent", want: "a", values: nil, ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := http.Header{}
			for _, v := range tc.values {
				h.Add("x-multi", v)
			}
			r := checkHeaders(map[string]string{"X-MULTI": tc.want}, h)
			assert.Equal(t, tc.ok, r.Passed, r.Detail)
		})
	}
}

func TestValidate_EmptyBodyEqualsNull(t *testing.T) {
	v := Validate(expect(204, nil, nil), &transport.Response{Status: 204})
	assert.True(t, v.Passed())

	v = Validate(expect(200, nil, map[string]any{}), &transport.Response{Status: 200})
	assert.Equal(t, CheckBody, v.Failed)
}

func TestValidate_PlainStringBody(t *testing.T) {
	v := Validate(expect(200, nil, "pong"), &transport.Response{Status: 200, Body: []byte("pong")})
	assert.True(t, v.Passed())
}

func TestValidate_YAMLShapedExpectationMatchesJSON(t *testing.T) {
	// Loaders other than JSON produce ints and typed slices.
	exp := expect(200, nil, map[string]any{"n": 3, "tags": []string{"a", "b"}, "nested": map[string]any{"ok": true}})
	actual := &transport.Response{Status: 200, Body: []byte(`{"nested":{"ok":true},"tags":["a","b"],"n":3.0}`)}

	assert.True(t, Validate(exp, actual).Passed())
}

func TestValidate_NumbersCompareExactly(t *testing.T) {
	var loaded scenario.ExpectedResponse
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "request_id": 1,
		"expected": {"status": 200, "headers": {}, "body": {"id": 9007199254740993}}}`), &loaded))

	testCases := []struct {
		name string
		body string
		ok   bool
	}{
		{name: "same integer", body: `{"id":9007199254740993}`, ok: true},
		{name: "neighbouring integer", body: `{"id":9007199254740992}`, ok: false},
		{name: "same value with exponent", body: `{"id":9.007199254740993e15}`, ok: true},
		{name: "trailing fraction", body: `{"id":9007199254740993.000}`, ok: true},
		{name: "tiny fraction apart", body: `{"id":9007199254740993.0001}`, ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := Validate(&loaded, &transport.Response{Status: 200, Body: []byte(tc.body)})
			assert.Equal(t, tc.ok, v.Passed(), v.Reason())
		})
	}
}

func TestValidate_TrailingDataIsNotJSON(t *testing.T) {
	v := Validate(expect(200, nil, map[string]any{"a": 1}), &transport.Response{Status: 200, Body: []byte(`{"a":1} {"a":2}`)})

	assert.Equal(t, CheckBody, v.Failed)
	assert.Contains(t, v.Reason(), "not valid JSON")
}

func TestValidate_Idempotent(t *testing.T) {
	exp := expect(201, map[string]string{"X-A": "1"}, map[string]any{"a": []any{1, "x", nil}})
	actual := &transport.Response{Status: 201, Header: http.Header{"X-A": {"2"}}, Body: []byte(`{"a":[1,"x",null]}`)}

	first := Validate(exp, actual)
	second := Validate(exp, actual)

	assert.Equal(t, first, second)
	assert.Equal(t, CheckHeaders, first.Failed)
}

func TestValidate_KeyPermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	exp := expect(200, nil, map[string]any{"a": 1, "b": "two", "c": []any{true, nil}, "d": map[string]any{"x": 1, "y": 2}})

	keys := []string{`"a":1`, `"b":"two"`, `"c":[true,null]`, `"d":{"y":2,"x":1}`}
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		body := fmt.Sprintf("{%s}", strings.Join(keys, ","))

		v := Validate(exp, &transport.Response{Status: 200, Body: []byte(body)})
		assert.True(t, v.Passed(), "body %s: %s", body, v.Reason())
	}
}

package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/trafficgo/internal/scenario"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// hclFile mirrors the JSON layout with one block per list element:
//
//	config { name = "demo" }
//	server { id = 1 ... }
//	request {
//	  id = 1
//	  content { body = { ... } }
//	}
//	response {
//	  id = 1
//	  expected { status = 200 }
//	}
type hclFile struct {
	Config    *hclConfig    `hcl:"config,block"`
	Servers   []hclServer   `hcl:"server,block"`
	Requests  []hclRequest  `hcl:"request,block"`
	Responses []hclResponse `hcl:"response,block"`
}

type hclConfig struct {
	Name        string `hcl:"name"`
	Rate        uint   `hcl:"rate,optional"`
	Description string `hcl:"description,optional"`
	Author      string `hcl:"author,optional"`
}

type hclServer struct {
	ID            uint32  `hcl:"id"`
	Protocol      string  `hcl:"protocol"`
	Host          string  `hcl:"host"`
	Port          uint16  `hcl:"port"`
	Authorization bool    `hcl:"authorization,optional"`
	HTTPVersion   string  `hcl:"http_version"`
	AuthzToken    *string `hcl:"authz_token,optional"`
}

type hclRequest struct {
	ID        uint32      `hcl:"id"`
	ServerID  uint32      `hcl:"server_id"`
	Path      string      `hcl:"path"`
	Method    string      `hcl:"method"`
	Depends   []uint32    `hcl:"depends,optional"`
	TimeoutMS *uint64     `hcl:"timeout_ms,optional"`
	Content   *hclContent `hcl:"content,block"`
}

type hclContent struct {
	Headers map[string]string `hcl:"headers,optional"`
	Body    hcl.Expression    `hcl:"body,optional"`
}

type hclResponse struct {
	ID        uint32      `hcl:"id"`
	RequestID uint32      `hcl:"request_id"`
	Expected  hclExpected `hcl:"expected,block"`
}

type hclExpected struct {
	Status  uint16            `hcl:"status"`
	Headers map[string]string `hcl:"headers,optional"`
	Body    hcl.Expression    `hcl:"body,optional"`
}

func decodeHCL(path string, data []byte) (*scenario.Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	sc, err := root.translate()
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, err)
	}
	return sc, nil
}

func (f *hclFile) translate() (*scenario.Scenario, error) {
	sc := &scenario.Scenario{}
	var errs []error

	if f.Config != nil {
		sc.Config = scenario.Config{
			Name:        f.Config.Name,
			Rate:        f.Config.Rate,
			Description: f.Config.Description,
			Author:      f.Config.Author,
		}
	}

	for _, s := range f.Servers {
		srv := scenario.Server{
			ID:            s.ID,
			Host:          s.Host,
			Port:          s.Port,
			Authorization: s.Authorization,
			AuthzToken:    s.AuthzToken,
		}
		if err := srv.Protocol.UnmarshalText([]byte(s.Protocol)); err != nil {
			errs = append(errs, fmt.Errorf("server %d: %w", s.ID, err))
		}
		if err := srv.HTTPVersion.UnmarshalText([]byte(s.HTTPVersion)); err != nil {
			errs = append(errs, fmt.Errorf("server %d: %w", s.ID, err))
		}
		sc.Servers = append(sc.Servers, srv)
	}

	for _, r := range f.Requests {
		req := scenario.Request{
			ID:        r.ID,
			ServerID:  r.ServerID,
			Path:      r.Path,
			Depends:   r.Depends,
			TimeoutMS: r.TimeoutMS,
		}
		if err := req.Method.UnmarshalText([]byte(r.Method)); err != nil {
			errs = append(errs, fmt.Errorf("request %d: %w", r.ID, err))
		}
		if r.Content != nil {
			body, err := exprValue(r.Content.Body)
			if err != nil {
				errs = append(errs, fmt.Errorf("request %d body: %w", r.ID, err))
			}
			req.Content = scenario.RequestContent{Headers: r.Content.Headers, Body: body}
		}
		sc.Requests = append(sc.Requests, req)
	}

	for _, r := range f.Responses {
		body, err := exprValue(r.Expected.Body)
		if err != nil {
			errs = append(errs, fmt.Errorf("response %d body: %w", r.ID, err))
		}
		sc.Responses = append(sc.Responses, scenario.ExpectedResponse{
			ID:        r.ID,
			RequestID: r.RequestID,
			Expected: scenario.ResponseContent{
				Status:  r.Expected.Status,
				Headers: r.Expected.Headers,
				Body:    body,
			},
		})
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return sc, nil
}

// exprValue evaluates a literal HCL expression into the same shape
// encoding/json produces. Missing or null expressions yield nil.
func exprValue(expr hcl.Expression) (any, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, errors.New("value must be a literal")
	}

	raw, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

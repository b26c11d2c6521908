package dag

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/trafficgo/internal/ctxlog"
	"github.com/specialistvlad/trafficgo/internal/scenario"
)

// Build constructs a complete, validated dependency graph from a scenario.
// All reference errors are collected and returned together (joined); a
// cycle is only reported once every reference resolves.
func Build(ctx context.Context, sc *scenario.Scenario) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "requests", len(sc.Requests))
	graph := newGraph()
	var errs []error

	servers := make(map[uint32]bool, len(sc.Servers))
	for _, srv := range sc.Servers {
		if servers[srv.ID] {
			errs = append(errs, &ScenarioError{Kind: ErrDuplicateServer, Subject: fmt.Sprintf("server %d", srv.ID), IDs: []uint32{srv.ID}})
		}
		servers[srv.ID] = true
	}

	// First pass: create all nodes and check server references.
	for _, req := range sc.Requests {
		if !graph.addNode(req.ID) {
			errs = append(errs, &ScenarioError{Kind: ErrDuplicateRequest, Subject: fmt.Sprintf("request %d", req.ID), IDs: []uint32{req.ID}})
			continue
		}
		if !servers[req.ServerID] {
			errs = append(errs, &ScenarioError{Kind: ErrUnknownServer, Subject: fmt.Sprintf("request %d", req.ID), IDs: []uint32{req.ServerID}})
		}
	}
	logger.Debug("Build: Node creation complete.", "node_count", len(graph.IDs))

	// Second pass: link dependencies.
	for _, req := range sc.Requests {
		var unknown []uint32
		for _, depID := range req.Depends {
			if !graph.Has(depID) {
				unknown = append(unknown, depID)
				continue
			}
			if depID == req.ID {
				errs = append(errs, &ScenarioError{Kind: ErrDependencyCycle, Subject: fmt.Sprintf("request %d", req.ID), IDs: []uint32{req.ID}})
				continue
			}
			if err := graph.addEdge(depID, req.ID); err != nil {
				return nil, fmt.Errorf("linking request %d: %w", req.ID, err)
			}
		}
		if len(unknown) > 0 {
			errs = append(errs, &ScenarioError{Kind: ErrUnknownDependency, Subject: fmt.Sprintf("request %d", req.ID), IDs: unknown})
		}
	}
	logger.Debug("Build: Node linking complete.")

	responses := make(map[uint32]uint32, len(sc.Responses))
	for _, res := range sc.Responses {
		if !graph.Has(res.RequestID) {
			errs = append(errs, &ScenarioError{Kind: ErrUnknownRequest, Subject: fmt.Sprintf("response %d", res.ID), IDs: []uint32{res.RequestID}})
			continue
		}
		if first, dup := responses[res.RequestID]; dup {
			errs = append(errs, &ScenarioError{Kind: ErrDuplicateResponseForRequest, Subject: fmt.Sprintf("request %d", res.RequestID), IDs: []uint32{first, res.ID}})
			continue
		}
		responses[res.RequestID] = res.ID
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		logger.Debug("Build: Scenario is structurally invalid.", "error", err)
		return nil, err
	}

	if unplaced := graph.computeWaves(); len(unplaced) > 0 {
		member, _ := graph.findCycle(unplaced)
		return nil, &ScenarioError{Kind: ErrDependencyCycle, Subject: fmt.Sprintf("request %d", member), IDs: []uint32{member}}
	}
	logger.Debug("Build: Wave computation complete.", "waves", len(graph.Waves))

	logger.Debug("Build: Graph construction successful.")
	return graph, nil
}

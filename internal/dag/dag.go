package dag

import (
	"fmt"
	"slices"
)

// newGraph creates an initialized, empty Graph.
func newGraph() *Graph {
	return &Graph{
		nodes: make(map[uint32]*node),
		order: make(map[uint32]int),
	}
}

// addNode adds a node for the given request id. It returns false if a node
// with the same id already exists.
func (g *Graph) addNode(id uint32) bool {
	if _, ok := g.nodes[id]; ok {
		return false
	}
	g.order[id] = len(g.IDs)
	g.IDs = append(g.IDs, id)
	g.nodes[id] = &node{
		id:         id,
		wave:       -1,
		deps:       make(map[uint32]*node),
		dependents: make(map[uint32]*node),
	}
	return true
}

// addEdge records that `toID` depends on `fromID`. An error is returned if
// either node does not exist or if the edge would create a self-reference.
func (g *Graph) addEdge(fromID, toID uint32) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %d -> %d", fromID, fromID)
	}
	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %d", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %d", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode
	return nil
}

// Has reports whether the graph contains the request id.
func (g *Graph) Has(id uint32) bool {
	_, ok := g.nodes[id]
	return ok
}

// Dependencies returns the ids the given request depends on, in scenario order.
func (g *Graph) Dependencies(id uint32) []uint32 {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return g.sorted(n.deps)
}

// Dependents returns the ids that depend on the given request, in scenario order.
func (g *Graph) Dependents(id uint32) []uint32 {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return g.sorted(n.dependents)
}

// Adjacency returns a copy of the mapping from request id to the set of its
// dependency ids.
func (g *Graph) Adjacency() map[uint32]map[uint32]struct{} {
	adj := make(map[uint32]map[uint32]struct{}, len(g.nodes))
	for id, n := range g.nodes {
		set := make(map[uint32]struct{}, len(n.deps))
		for depID := range n.deps {
			set[depID] = struct{}{}
		}
		adj[id] = set
	}
	return adj
}

// WaveOf returns the wave index a request was placed in.
func (g *Graph) WaveOf(id uint32) (int, bool) {
	n, ok := g.nodes[id]
	if !ok || n.wave < 0 {
		return 0, false
	}
	return n.wave, true
}

func (g *Graph) sorted(set map[uint32]*node) []uint32 {
	ids := make([]uint32, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	g.sortByOrder(ids)
	return ids
}

func (g *Graph) sortByOrder(ids []uint32) {
	slices.SortFunc(ids, func(a, b uint32) int {
		return g.order[a] - g.order[b]
	})
}

// computeWaves places every node into a wave by repeated frontier extraction.
// It returns the ids that could not be placed, which is non-empty only when
// the graph contains a cycle.
func (g *Graph) computeWaves() []uint32 {
	pending := make(map[uint32]int, len(g.nodes))
	var frontier []uint32
	for _, id := range g.IDs {
		pending[id] = len(g.nodes[id].deps)
		if pending[id] == 0 {
			frontier = append(frontier, id)
		}
	}

	g.Waves = nil
	placed := 0
	for len(frontier) > 0 {
		wave := len(g.Waves)
		var next []uint32
		for _, id := range frontier {
			g.nodes[id].wave = wave
			for depID := range g.nodes[id].dependents {
				pending[depID]--
				if pending[depID] == 0 {
					next = append(next, depID)
				}
			}
		}
		g.Waves = append(g.Waves, frontier)
		placed += len(frontier)
		g.sortByOrder(next)
		frontier = next
	}

	if placed == len(g.nodes) {
		return nil
	}
	var unplaced []uint32
	for _, id := range g.IDs {
		if g.nodes[id].wave < 0 {
			unplaced = append(unplaced, id)
		}
	}
	return unplaced
}

// findCycle returns one node that lies on a cycle among the given candidates.
// It uses classic depth-first search with three sets of nodes:
// permanent: nodes that have been fully visited and are not part of a cycle.
// temporary: nodes currently in the recursion stack for the current traversal.
// unvisited: all other nodes.
func (g *Graph) findCycle(candidates []uint32) (uint32, bool) {
	permanent := make(map[uint32]bool)
	temporary := make(map[uint32]bool)

	var visit func(n *node) (uint32, bool)
	visit = func(n *node) (uint32, bool) {
		if permanent[n.id] {
			return 0, false
		}
		if temporary[n.id] {
			// Back edge: n is on the current recursion stack.
			return n.id, true
		}
		temporary[n.id] = true
		for _, depID := range g.sorted(n.deps) {
			if id, found := visit(g.nodes[depID]); found {
				return id, true
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true
		return 0, false
	}

	for _, id := range candidates {
		if cycleID, found := visit(g.nodes[id]); found {
			return cycleID, true
		}
	}
	return 0, false
}

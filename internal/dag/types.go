package dag

// Graph is the dependency structure of one scenario run. It is built once by
// Build and is read-only afterwards, so it can be shared between goroutines.
type Graph struct {
	// IDs lists every request id in scenario order.
	IDs []uint32
	// Waves is the schedule: Waves[k] holds the ids whose dependencies are
	// all contained in Waves[0..k-1]. Within a wave ids keep scenario order.
	Waves [][]uint32

	// nodes stores all nodes in the graph, keyed by request id.
	nodes map[uint32]*node
	// order maps a request id to its position in the scenario.
	order map[uint32]int
}

// node represents a single request in the graph. It is un-exported to
// enforce interaction with the graph via request ids.
type node struct {
	// id is the request id.
	id uint32
	// wave is the index of the wave the node was placed in, -1 until placed.
	wave int
	// deps holds the set of nodes that this node depends on (predecessors).
	deps map[uint32]*node
	// dependents holds the set of nodes that depend on this node (successors).
	dependents map[uint32]*node
}

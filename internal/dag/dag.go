package dag

import (
	"fmt"
	"slices"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{id: id}
	g.order = append(g.order, id)
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return len(g.order)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. Self-referential
// edges are accepted and surface as cycles. Adding an existing edge again
// does nothing.
func (g *Graph) AddEdge(fromID, toID string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if slices.Contains(toNode.deps, fromID) {
		return nil
	}
	toNode.deps = append(toNode.deps, fromID)
	fromNode.dependents = append(fromNode.dependents, toID)
	return nil
}

// Dependencies returns a slice of node IDs that the given node depends on.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return slices.Clone(n.deps), nil
}

// Dependents returns a slice of node IDs that depend on the given node.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return slices.Clone(n.dependents), nil
}

// Cycles returns one path per back edge found by a depth-first search along
// dependencies. Every cycle in the graph shares nodes with at least one
// returned path. A path starts and ends with the same ID.
func (g *Graph) Cycles() [][]string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(g.nodes))
	var stack []string
	var cycles [][]string

	var visit func(n *node)
	visit = func(n *node) {
		state[n.id] = active
		stack = append(stack, n.id)

		for _, depID := range n.deps {
			switch state[depID] {
			case active:
				// A back edge: the cycle is the active path from depID to n.
				start := slices.Index(stack, depID)
				path := append(slices.Clone(stack[start:]), depID)
				cycles = append(cycles, path)
			case unvisited:
				visit(g.nodes[depID])
			}
		}

		stack = stack[:len(stack)-1]
		state[n.id] = done
	}

	for _, id := range g.order {
		if state[id] == unvisited {
			visit(g.nodes[id])
		}
	}
	return cycles
}

// DetectCycles checks the graph for any cycles. It returns a *CycleError
// describing the first cycle found, or nil.
func (g *Graph) DetectCycles() error {
	if cycles := g.Cycles(); len(cycles) > 0 {
		return &CycleError{Path: cycles[0]}
	}
	return nil
}

// Order returns the nodes that can be ordered so that every node comes
// after all of its dependencies, and separately the nodes that cannot:
// members of a cycle and everything depending on one. Ties are broken by
// insertion order.
func (g *Graph) Order() (sorted, blocked []string) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	pending := make(map[string]int, len(g.nodes))
	var ready []string
	for _, id := range g.order {
		pending[id] = len(g.nodes[id].deps)
		if pending[id] == 0 {
			ready = append(ready, id)
		}
	}

	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		sorted = append(sorted, id)
		for _, dependent := range g.nodes[id].dependents {
			pending[dependent]--
			if pending[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	for _, id := range g.order {
		if pending[id] > 0 {
			blocked = append(blocked, id)
		}
	}
	return sorted, blocked
}

// TopologicalSort returns all nodes with dependencies first, or a
// *CycleError if the graph is not acyclic.
func (g *Graph) TopologicalSort() ([]string, error) {
	sorted, blocked := g.Order()
	if len(blocked) > 0 {
		if err := g.DetectCycles(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("internal error: %d nodes could not be ordered", len(blocked))
	}
	return sorted, nil
}

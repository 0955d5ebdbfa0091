package dag

import (
	"fmt"
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

	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
	g.order = append(g.order, id)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. An error is returned
// if either node does not exist or if the edge would create a self-reference.
// Adding the same edge twice is a no-op.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

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

	if _, ok := toNode.deps[fromID]; ok {
		return nil
	}

	toNode.deps[fromID] = fromNode
	toNode.depOrder = append(toNode.depOrder, fromID)
	fromNode.dependents[toID] = toNode
	fromNode.dependentOrder = append(fromNode.dependentOrder, toID)

	return nil
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all node IDs in insertion order.
func (g *Graph) Nodes() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Dependencies returns the IDs the given node depends on, in the order the
// edges were added.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	deps := make([]string, len(n.depOrder))
	copy(deps, n.depOrder)
	return deps, nil
}

// Dependents returns the IDs that depend on the given node, in the order
// the edges were added.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	dependents := make([]string, len(n.dependentOrder))
	copy(dependents, n.dependentOrder)
	return dependents, nil
}

// TopoSort returns every node ID ordered so that each node appears after
// all of its dependencies. Ties are broken by insertion order, which makes
// the result stable across runs. An error is returned when a cycle makes
// the ordering impossible; FindCycle names the nodes involved.
func (g *Graph) TopoSort() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	indegree := make(map[string]int, len(g.nodes))
	position := make(map[string]int, len(g.nodes))
	for i, id := range g.order {
		indegree[id] = len(g.nodes[id].deps)
		position[id] = i
	}

	var ready []string
	for _, id := range g.order {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	sorted := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		sorted = append(sorted, id)

		for _, depID := range g.nodes[id].dependentOrder {
			indegree[depID]--
			if indegree[depID] == 0 {
				ready = insertByPosition(ready, depID, position)
			}
		}
	}

	if len(sorted) != len(g.nodes) {
		return nil, fmt.Errorf("graph contains a cycle among %d node(s)", len(g.nodes)-len(sorted))
	}
	return sorted, nil
}

// insertByPosition keeps the ready queue ordered by node insertion index.
func insertByPosition(ready []string, id string, position map[string]int) []string {
	i := len(ready)
	for j, other := range ready {
		if position[id] < position[other] {
			i = j
			break
		}
	}
	ready = append(ready, "")
	copy(ready[i+1:], ready[i:])
	ready[i] = id
	return ready
}

// FindCycle returns the IDs of one dependency cycle, in traversal order, or
// nil when the graph is acyclic. The depth-first search follows insertion
// order, so the same graph always reports the same cycle.
func (g *Graph) FindCycle() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited and known not to be part of a cycle.
	// temporary: currently on the recursion stack.
	// unvisited: all other nodes.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)
	var stack []string

	var visit func(n *node) []string
	visit = func(n *node) []string {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			// The node is already on the recursion stack: everything from
			// its first appearance onward forms the cycle.
			for i, id := range stack {
				if id == n.id {
					cycle := make([]string, len(stack)-i)
					copy(cycle, stack[i:])
					return cycle
				}
			}
			return []string{n.id}
		}

		temporary[n.id] = true
		stack = append(stack, n.id)

		for _, depID := range n.dependentOrder {
			if cycle := visit(n.dependents[depID]); cycle != nil {
				return cycle
			}
		}

		stack = stack[:len(stack)-1]
		delete(temporary, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, id := range g.order {
		if !permanent[id] {
			if cycle := visit(g.nodes[id]); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, naming the first node involved in the detected cycle.
func (g *Graph) DetectCycles() error {
	if cycle := g.FindCycle(); cycle != nil {
		return fmt.Errorf("cycle detected involving node '%s'", cycle[0])
	}
	return nil
}

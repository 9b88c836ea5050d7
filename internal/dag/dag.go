// SPDX-License-Identifier: MPL-2.0

// Package dag provides directed graph ordering and cycle detection. Route file
// loading records one edge per include directive and uses it to reject include
// cycles before any routes are spliced.
package dag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is the sentinel wrapped by every CycleError.
var ErrCycle = errors.New("cycle detected")

type (
	// CycleError indicates that the graph contains a cycle, preventing topological ordering.
	CycleError struct {
		// Cycle lists the nodes that sit on a cycle, in insertion order.
		Cycle []string
	}

	// Graph is a directed graph for topological sorting.
	// Nodes are identified by string keys. An edge from A to B means A must be
	// ordered before B; for route files, A includes B.
	Graph struct {
		// adjacency maps each node to its outgoing neighbors.
		adjacency map[string][]string
		// nodes tracks all nodes in insertion order for deterministic output.
		nodes []string
		// nodeSet provides O(1) lookup for node existence.
		nodeSet map[string]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("include cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// Unwrap returns ErrCycle so callers can use errors.Is.
func (e *CycleError) Unwrap() error { return ErrCycle }

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[string][]string),
		nodeSet:   make(map[string]bool),
	}
}

// AddNode adds a node to the graph. If the node already exists, this is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge adds a directed edge from -> to. Both nodes are implicitly added.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	g.adjacency[from] = append(g.adjacency[from], to)
}

// Has reports whether name is a node of the graph.
func (g *Graph) Has(name string) bool {
	return g.nodeSet[name]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// TopologicalSort returns a valid order using Kahn's algorithm.
// Returns CycleError if the graph contains a cycle.
// The returned order is deterministic: nodes at the same topological level
// appear in the order they were first added to the graph.
func (g *Graph) TopologicalSort() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(g.nodes))
	for _, node := range g.nodes {
		inDegree[node] = 0
	}
	for _, neighbors := range g.adjacency {
		for _, neighbor := range neighbors {
			inDegree[neighbor]++
		}
	}

	// Seed the queue with nodes that have no incoming edges, in insertion order.
	queue := make([]string, 0)
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range g.adjacency[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, &CycleError{Cycle: g.cycleNodes(inDegree)}
	}

	return result, nil
}

// cycleNodes narrows the nodes Kahn's algorithm could not order down to those
// on a cycle. Nodes merely reachable from a cycle are peeled off by repeatedly
// dropping remaining nodes with no remaining outgoing edge.
func (g *Graph) cycleNodes(inDegree map[string]int) []string {
	remaining := make(map[string]bool)
	for _, node := range g.nodes {
		if inDegree[node] > 0 {
			remaining[node] = true
		}
	}

	for changed := true; changed; {
		changed = false
		for _, node := range g.nodes {
			if !remaining[node] {
				continue
			}
			hasOut := false
			for _, neighbor := range g.adjacency[node] {
				if remaining[neighbor] {
					hasOut = true
					break
				}
			}
			if !hasOut {
				delete(remaining, node)
				changed = true
			}
		}
	}

	var cycle []string
	for _, node := range g.nodes {
		if remaining[node] {
			cycle = append(cycle, node)
		}
	}
	return cycle
}

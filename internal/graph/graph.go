// Package graph orders named dependencies and detects cycles between them.
package graph

import (
	"fmt"
	"sync"
)

// Graph manages the dependency relationships between named dependencies.
// Nodes remember the order in which they were first added; every traversal
// walks nodes in that order so that results are deterministic.
type Graph struct {
	mu    sync.RWMutex
	order []string
	nodes map[string]*Node
}

// Node represents a named dependency in the graph.
type Node struct {
	Name string

	// Dependencies holds declared dependency names in declared order,
	// including names that are not nodes of this graph.
	Dependencies []string

	// Kind is a free-form label used when rendering the graph.
	Kind string

	Depth int
}

// Node kinds understood by the Visualizer.
const (
	KindSingleton = "singleton"
	KindTransient = "transient"
	KindLazy      = "lazy"
	KindValue     = "value"
)

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
	}
}

// AddNode adds or replaces a node. Replacing keeps the original position.
func (g *Graph) AddNode(name string, dependencies ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	deps := make([]string, len(dependencies))
	copy(deps, dependencies)

	if node, exists := g.nodes[name]; exists {
		node.Dependencies = deps
		return
	}

	g.nodes[name] = &Node{Name: name, Dependencies: deps}
	g.order = append(g.order, name)
}

// SetKind labels an existing node. Unknown names are ignored.
func (g *Graph) SetKind(name, kind string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if node, exists := g.nodes[name]; exists {
		node.Kind = kind
	}
}

// Kind returns the label of a node, or "" if the node does not exist.
func (g *Graph) Kind(name string) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if node, exists := g.nodes[name]; exists {
		return node.Kind
	}
	return ""
}

// Has checks if a node exists in the graph
func (g *Graph) Has(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, exists := g.nodes[name]
	return exists
}

// Size returns the number of nodes in the graph
func (g *Graph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// Names returns node names in insertion order.
func (g *Graph) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Dependencies returns the declared dependencies of a node that are themselves nodes.
func (g *Graph) Dependencies(name string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	node, exists := g.nodes[name]
	if !exists {
		return nil
	}

	result := make([]string, 0, len(node.Dependencies))
	for _, dep := range node.Dependencies {
		if _, ok := g.nodes[dep]; ok {
			result = append(result, dep)
		}
	}
	return result
}

// Dependents returns the nodes that declare a dependency on name, in insertion order.
func (g *Graph) Dependents(name string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]string, 0)
	for _, n := range g.order {
		for _, dep := range g.nodes[n].Dependencies {
			if dep == name {
				result = append(result, n)
				break
			}
		}
	}
	return result
}

// Roots returns all nodes with no in-graph dependencies.
func (g *Graph) Roots() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	roots := make([]string, 0)
	for _, name := range g.order {
		if len(g.internalDeps(name)) == 0 {
			roots = append(roots, name)
		}
	}
	return roots
}

// TopologicalSort returns node names in dependency order (dependencies first).
//
// The sort is a depth-first traversal over nodes in insertion order, visiting
// each node's dependencies in declared order. Dependency names that are not
// nodes of the graph are ignored. Independent nodes therefore keep their
// insertion order.
func (g *Graph) TopologicalSort() ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	const (
		unvisited = iota
		visiting
		visited
	)

	state := make(map[string]int, len(g.nodes))
	stack := make([]string, 0, len(g.nodes))
	result := make([]string, 0, len(g.nodes))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visited:
			return nil
		case visiting:
			return CircularDependencyError{Node: name, Path: cyclePath(stack, name)}
		}

		state[name] = visiting
		stack = append(stack, name)

		for _, dep := range g.nodes[name].Dependencies {
			if _, ok := g.nodes[dep]; !ok {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		state[name] = visited
		result = append(result, name)
		return nil
	}

	for _, name := range g.order {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// DetectCycles checks if the graph contains any cycles
func (g *Graph) DetectCycles() error {
	_, err := g.TopologicalSort()
	return err
}

// IsAcyclic returns true if the graph has no cycles
func (g *Graph) IsAcyclic() bool {
	return g.DetectCycles() == nil
}

// CalculateDepths assigns depth levels to nodes: roots are 0, every other
// node sits one level above its deepest dependency. Nodes on a cycle keep -1.
func (g *Graph) CalculateDepths() map[string]int {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, node := range g.nodes {
		node.Depth = -1
	}

	// Relax at most len(nodes) times; anything still unresolved is on or behind a cycle.
	for range g.order {
		changed := false
		for _, name := range g.order {
			node := g.nodes[name]
			depth := 0
			ready := true
			for _, dep := range g.internalDeps(name) {
				d := g.nodes[dep].Depth
				if d < 0 {
					ready = false
					break
				}
				if d+1 > depth {
					depth = d + 1
				}
			}
			if ready && node.Depth != depth {
				node.Depth = depth
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	depths := make(map[string]int, len(g.nodes))
	for name, node := range g.nodes {
		depths[name] = node.Depth
	}
	return depths
}

// Clear removes all nodes from the graph
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.order = nil
	g.nodes = make(map[string]*Node)
}

func (g *Graph) internalDeps(name string) []string {
	deps := make([]string, 0, len(g.nodes[name].Dependencies))
	for _, dep := range g.nodes[name].Dependencies {
		if _, ok := g.nodes[dep]; ok {
			deps = append(deps, dep)
		}
	}
	return deps
}

// cyclePath returns the portion of the visit stack starting at the re-entered node.
func cyclePath(stack []string, reentered string) []string {
	for i, name := range stack {
		if name == reentered {
			path := make([]string, len(stack)-i)
			copy(path, stack[i:])
			return path
		}
	}
	return []string{reentered}
}

// String returns a string representation of the node
func (n *Node) String() string {
	return fmt.Sprintf("Node{%s, deps:%d, depth:%d}", n.Name, len(n.Dependencies), n.Depth)
}

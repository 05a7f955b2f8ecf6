package container

import (
	"io"

	"github.com/yieldgate/sdk-go/internal/graph"
)

// graphOf builds the dependency graph of everything registered: definitions
// in registration order followed by value-only names.
func (c *Container) graphOf() *graph.Graph {
	c.mu.Lock()
	defer c.mu.Unlock()

	g := graph.New()
	for _, name := range c.order {
		def := c.definitions[name]
		g.AddNode(name, def.Dependencies...)

		_, isValue := c.values[name]
		switch {
		case isValue:
			g.SetKind(name, graph.KindValue)
		case !def.IsSingleton():
			g.SetKind(name, graph.KindTransient)
		case def.Lazy:
			g.SetKind(name, graph.KindLazy)
		default:
			g.SetKind(name, graph.KindSingleton)
		}
	}

	for _, name := range c.valueOrder {
		if _, ok := c.definitions[name]; !ok {
			g.AddNode(name)
			g.SetKind(name, graph.KindValue)
		}
	}

	return g
}

// Validate reports a CircularDependencyError if the declared dependencies of
// the registered definitions contain a cycle. Unlike Initialize it considers
// lazy and transient definitions too and never runs a factory.
func (c *Container) Validate() error {
	return c.graphOf().DetectCycles()
}

// WriteDOT writes the registered dependency graph in Graphviz DOT format.
func (c *Container) WriteDOT(w io.Writer) error {
	return graph.NewVisualizer(c.graphOf()).WriteDOT(w)
}

// WriteText writes a human-readable rendering of the registered dependency graph.
func (c *Container) WriteText(w io.Writer) error {
	return graph.NewVisualizer(c.graphOf()).WriteText(w)
}

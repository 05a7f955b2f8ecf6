package graph

import (
	"fmt"
	"io"
	"strings"
)

// Visualizer provides methods to visualize the dependency graph
type Visualizer struct {
	graph *Graph
}

// NewVisualizer creates a new graph visualizer
func NewVisualizer(graph *Graph) *Visualizer {
	return &Visualizer{graph: graph}
}

// WriteDOT writes the graph in Graphviz DOT format
func (v *Visualizer) WriteDOT(w io.Writer) error {
	names := v.graph.Names()

	fmt.Fprintln(w, "digraph dependencies {")
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=box];")

	nodeIDs := make(map[string]string, len(names))
	for i, name := range names {
		nodeID := fmt.Sprintf("n%d", i)
		nodeIDs[name] = nodeID

		fmt.Fprintf(w, "  %s [label=\"%s\", fillcolor=\"%s\", style=filled];\n",
			nodeID, v.formatNodeLabel(name), nodeColor(v.graph.Kind(name)))
	}

	for _, from := range names {
		for _, to := range v.graph.Dependencies(from) {
			fmt.Fprintf(w, "  %s -> %s;\n", nodeIDs[from], nodeIDs[to])
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

// WriteText writes a text representation of the graph
func (v *Visualizer) WriteText(w io.Writer) error {
	fmt.Fprintln(w, "Dependency Graph:")
	fmt.Fprintln(w, "=================")
	fmt.Fprintln(w)

	sorted, err := v.graph.TopologicalSort()
	if err != nil {
		fmt.Fprintf(w, "Warning: graph contains cycles - %v\n", firstLine(err))
		sorted = v.graph.Names()
	}

	depths := v.graph.CalculateDepths()
	levels := make(map[int][]string)
	maxDepth := -1
	var cyclic []string

	for _, name := range sorted {
		depth := depths[name]
		if depth < 0 {
			cyclic = append(cyclic, name)
			continue
		}
		levels[depth] = append(levels[depth], name)
		if depth > maxDepth {
			maxDepth = depth
		}
	}

	for depth := 0; depth <= maxDepth; depth++ {
		fmt.Fprintf(w, "Level %d:\n", depth)
		fmt.Fprintln(w, "--------")
		for _, name := range levels[depth] {
			v.writeNodeDetails(w, name, "  ")
		}
		fmt.Fprintln(w)
	}

	if len(cyclic) > 0 {
		fmt.Fprintln(w, "Nodes in Cycles:")
		fmt.Fprintln(w, "----------------")
		for _, name := range cyclic {
			v.writeNodeDetails(w, name, "  ")
		}
		fmt.Fprintln(w)
	}

	return v.writeStatistics(w)
}

func (v *Visualizer) formatNodeLabel(name string) string {
	if kind := v.graph.Kind(name); kind != "" {
		return fmt.Sprintf("%s\\n(%s)", name, kind)
	}
	return name
}

func nodeColor(kind string) string {
	switch kind {
	case KindSingleton:
		return "lightblue"
	case KindLazy:
		return "lightgreen"
	case KindTransient:
		return "lightyellow"
	case KindValue:
		return "white"
	default:
		return "lightgray"
	}
}

func (v *Visualizer) writeNodeDetails(w io.Writer, name, indent string) {
	fmt.Fprintf(w, "%s%s\n", indent, name)

	if kind := v.graph.Kind(name); kind != "" {
		fmt.Fprintf(w, "%s  Kind: %s\n", indent, kind)
	}

	if deps := v.graph.Dependencies(name); len(deps) > 0 {
		fmt.Fprintf(w, "%s  Dependencies: [%s]\n", indent, strings.Join(deps, ", "))
	}

	if dependents := v.graph.Dependents(name); len(dependents) > 0 {
		fmt.Fprintf(w, "%s  Dependents: [%s]\n", indent, strings.Join(dependents, ", "))
	}
}

func (v *Visualizer) writeStatistics(w io.Writer) error {
	names := v.graph.Names()
	edges := 0
	for _, name := range names {
		edges += len(v.graph.Dependencies(name))
	}

	fmt.Fprintln(w, "Statistics:")
	fmt.Fprintln(w, "-----------")
	fmt.Fprintf(w, "  Total nodes: %d\n", len(names))
	fmt.Fprintf(w, "  Total edges: %d\n", edges)
	fmt.Fprintf(w, "  Root nodes (no dependencies): %d\n", len(v.graph.Roots()))

	var err error
	if v.graph.IsAcyclic() {
		_, err = fmt.Fprintln(w, "  Cycles: None (graph is acyclic)")
	} else {
		_, err = fmt.Fprintln(w, "  Cycles: DETECTED (graph contains circular dependencies)")
	}
	return err
}

func firstLine(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}

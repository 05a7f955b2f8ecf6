package graph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCircularDependency is the sentinel matched by CircularDependencyError.
var ErrCircularDependency = errors.New("circular dependency detected")

// CircularDependencyError represents a circular dependency between named dependencies.
type CircularDependencyError struct {
	Node string
	Path []string
}

func (e CircularDependencyError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("circular dependency detected: %q\n\n", e.Node))

	if len(e.Path) == 0 {
		b.WriteString(fmt.Sprintf("    %s\n", e.Node))
		b.WriteString("      ↓\n")
		b.WriteString(fmt.Sprintf("    %s (cycle)\n", e.Node))
	} else {
		for i, node := range e.Path {
			b.WriteString(fmt.Sprintf("    %s\n", node))
			if i < len(e.Path)-1 {
				b.WriteString("      ↓\n")
			}
		}
		b.WriteString("      ↓\n")
		b.WriteString(fmt.Sprintf("    %s (cycle)\n", e.Path[0]))
	}

	b.WriteString("\nTo resolve this:\n")
	b.WriteString("  • Mark one side of the cycle as lazy\n")
	b.WriteString("  • Fetch the dependency inside the returned value instead of the factory\n")
	b.WriteString("  • Restructure to remove the circular relationship\n")

	return b.String()
}

// Is reports whether target is ErrCircularDependency.
func (e CircularDependencyError) Is(target error) bool {
	return target == ErrCircularDependency
}

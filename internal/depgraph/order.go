package depgraph

import (
	"fmt"
	"sort"

	"github.com/AthenaLink/dockronos/internal/errors"
)

// Traversal marking for cycle detection.
type mark int

const (
	unvisited mark = iota
	visiting
	visited
)

// StartOrder returns the startup order for the given root service and its
// transitive dependencies: a depth-first post-order in which every service
// appears strictly after everything it depends on, with the root last.
//
// A service encountered while still being visited means the graph has a
// cycle; traversal stops immediately with a CycleError naming that service.
func (g *Graph) StartOrder(root string) ([]string, error) {
	if _, ok := g.definitions[root]; !ok {
		return nil, fmt.Errorf("service %q: %w", root, errors.ErrServiceNotFound)
	}

	marks := make(map[string]mark, len(g.definitions))
	var order []string
	if err := g.visit(root, marks, &order); err != nil {
		return nil, err
	}
	return order, nil
}

// FullOrder returns a startup order covering every service in the graph.
// The result is a permutation of all defined service names. Roots are
// traversed in name order so the result is deterministic.
func (g *Graph) FullOrder() ([]string, error) {
	names := make([]string, 0, len(g.definitions))
	for name := range g.definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	marks := make(map[string]mark, len(names))
	var order []string
	for _, name := range names {
		if err := g.visit(name, marks, &order); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// visit appends name to order after all of its dependencies.
func (g *Graph) visit(name string, marks map[string]mark, order *[]string) error {
	switch marks[name] {
	case visited:
		return nil
	case visiting:
		return errors.NewCycleError(name)
	}

	marks[name] = visiting
	for _, dep := range g.Dependencies[name] {
		if err := g.visit(dep, marks, order); err != nil {
			return err
		}
	}
	marks[name] = visited
	*order = append(*order, name)
	return nil
}

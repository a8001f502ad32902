package depgraph

import (
	"sort"
	"strings"
)

// Build constructs the dependency graph from the given definitions. Each
// service's dependency set is the union of its explicit depends_on names,
// the service-name portion of its network links, and its volumes_from
// sources. Names that do not match a defined service are ignored.
//
// The graph is always built fresh; callers must not cache one across
// definition changes.
func Build(definitions []ServiceDefinition) *Graph {
	g := &Graph{
		Dependencies: make(map[string][]string, len(definitions)),
		Dependents:   make(map[string][]string, len(definitions)),
		definitions:  make(map[string]ServiceDefinition, len(definitions)),
	}

	for _, def := range definitions {
		g.definitions[def.Name] = def
		g.Dependencies[def.Name] = nil
		g.Dependents[def.Name] = nil
	}

	for _, def := range definitions {
		deps := dependencySet(def)
		for _, dep := range deps {
			if _, defined := g.definitions[dep]; !defined || dep == def.Name {
				continue
			}
			g.Dependencies[def.Name] = append(g.Dependencies[def.Name], dep)
			g.Dependents[dep] = append(g.Dependents[dep], def.Name)
		}
	}

	for name := range g.Dependencies {
		sort.Strings(g.Dependencies[name])
	}
	for name := range g.Dependents {
		sort.Strings(g.Dependents[name])
	}
	return g
}

// dependencySet returns the deduplicated union of a definition's declared
// dependency names.
func dependencySet(def ServiceDefinition) []string {
	seen := make(map[string]bool)
	var deps []string

	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			deps = append(deps, name)
		}
	}

	for _, dep := range def.DependsOn {
		add(dep)
	}
	for _, link := range def.Links {
		service, _, _ := strings.Cut(link, ":")
		add(service)
	}
	for _, source := range def.VolumesFrom {
		add(source)
	}
	return deps
}

package depgraph

// ServiceDefinition describes one locally declared service. Definitions are
// supplied by the external configuration source and are immutable for the
// duration of a run.
type ServiceDefinition struct {
	// Name is the unique service key.
	Name string `mapstructure:"name"`

	// Directory is the service's build context or compose directory.
	Directory string `mapstructure:"directory"`

	// Image is the image reference, for services without a build directory.
	Image string `mapstructure:"image"`

	// DependsOn lists service names this service must start after.
	DependsOn []string `mapstructure:"depends_on"`

	// Links lists network links in "service" or "service:alias" form.
	// The service-name portion contributes a dependency.
	Links []string `mapstructure:"links"`

	// VolumesFrom lists services whose volumes this service mounts.
	// Each source contributes a dependency.
	VolumesFrom []string `mapstructure:"volumes_from"`

	// HealthProbe reports whether the service declares a health check.
	// Services without one are assumed healthy after a fixed grace period.
	HealthProbe bool `mapstructure:"health_probe"`
}

// DefinitionSource supplies the current service definitions. It is the
// boundary to the external configuration collaborator; the engine never
// reads configuration files itself.
type DefinitionSource interface {
	Definitions() ([]ServiceDefinition, error)
}

// DefinitionSourceFunc adapts a function to the DefinitionSource interface.
type DefinitionSourceFunc func() ([]ServiceDefinition, error)

// Definitions calls the wrapped function.
func (f DefinitionSourceFunc) Definitions() ([]ServiceDefinition, error) {
	return f()
}

// Graph holds the forward and reverse dependency adjacency for one set of
// service definitions.
type Graph struct {
	// Dependencies maps a service to the services it depends on.
	Dependencies map[string][]string

	// Dependents maps a service to the services that depend on it.
	Dependents map[string][]string

	definitions map[string]ServiceDefinition
}

// Definition returns the definition for a service name.
func (g *Graph) Definition(name string) (ServiceDefinition, bool) {
	def, ok := g.definitions[name]
	return def, ok
}

// Services returns the number of services in the graph.
func (g *Graph) Services() int {
	return len(g.definitions)
}

// Package depgraph builds the service dependency graph and drives
// dependency-ordered, health-gated startup.
//
// The graph is rebuilt from scratch from the current service definitions
// before every orchestrated start; it is never incrementally patched.
// Start order is computed by depth-first post-order traversal with
// three-color cycle detection, so a service is always started strictly
// after everything it depends on. Startup is sequential even for
// independent branches; ordering correctness is prioritized over parallel
// throughput.
package depgraph

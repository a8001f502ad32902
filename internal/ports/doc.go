// Package ports provides host-port ownership tracking for containers.
//
// Two containers publishing the same host port cannot run at the same
// time. The ports package maintains a registry of port ownership claims
// built from the current container records, and the lifecycle executor
// consults it before every start so a conflicting container is rejected
// instead of failing inside the runtime.
//
// # Basic Usage
//
//	reg := ports.NewRegistry()
//	reg.Rebuild(manager.Running())
//
//	// Reject a start whose host ports are already held
//	err := reg.Check(record)
//
//	// Inspect ownership
//	owner, ok := reg.Owner("80")
//
// # Thread Safety
//
// All [Registry] methods are safe for concurrent use via an internal
// sync.RWMutex.
package ports

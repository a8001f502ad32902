package ports

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/errors"
)

// Claim represents an ownership claim on a host port.
type Claim struct {
	Container string    // Container that owns the claim
	Port      string    // Host-side port
	ClaimedAt time.Time // When the claim was established
}

// Registry tracks which container holds each host port. It is rebuilt
// from the running container set before use and consulted before starts.
type Registry struct {
	mu     sync.RWMutex
	claims map[string]Claim // host port -> claim
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{claims: make(map[string]Claim)}
}

// Rebuild replaces the registry contents with the host ports of the given
// records. Records publishing no host ports contribute nothing.
func (r *Registry) Rebuild(records []container.Record) {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.claims = make(map[string]Claim)
	for _, record := range records {
		for _, port := range record.HostPorts() {
			if _, taken := r.claims[port]; taken {
				continue
			}
			r.claims[port] = Claim{Container: record.Name, Port: port, ClaimedAt: now}
		}
	}
}

// Claim registers ownership of a host port for the given container.
// Returns an error wrapping ErrPortConflict if the port is held by a
// different container. Re-claiming an owned port is a no-op.
func (r *Registry) Claim(name, port string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.claims[port]; ok {
		if existing.Container == name {
			return nil // idempotent
		}
		return fmt.Errorf("host port %s held by %q: %w", port, existing.Container, errors.ErrPortConflict)
	}

	r.claims[port] = Claim{Container: name, Port: port, ClaimedAt: time.Now()}
	return nil
}

// Release relinquishes a container's claim on a host port. Releasing a
// port the container does not hold is a no-op.
func (r *Registry) Release(name, port string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.claims[port]; ok && existing.Container == name {
		delete(r.claims, port)
	}
}

// ReleaseAll relinquishes every port held by the given container.
func (r *Registry) ReleaseAll(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for port, claim := range r.claims {
		if claim.Container == name {
			delete(r.claims, port)
		}
	}
}

// Owner returns the container holding the port and true, or ("", false)
// if the port is unclaimed.
func (r *Registry) Owner(port string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	claim, ok := r.claims[port]
	if !ok {
		return "", false
	}
	return claim.Container, true
}

// Available returns true if no container holds the port.
func (r *Registry) Available(port string) bool {
	_, taken := r.Owner(port)
	return !taken
}

// ContainerPorts returns all host ports held by the given container,
// sorted for deterministic output.
func (r *Registry) ContainerPorts(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var held []string
	for port, claim := range r.claims {
		if claim.Container == name {
			held = append(held, port)
		}
	}
	sort.Strings(held)
	return held
}

// Check verifies every host port the record publishes is either free or
// already held by the record's own container. The first conflict is
// returned as an error wrapping ErrPortConflict.
func (r *Registry) Check(record container.Record) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, port := range record.HostPorts() {
		existing, taken := r.claims[port]
		if taken && existing.Container != record.Name {
			return fmt.Errorf("host port %s held by %q: %w", port, existing.Container, errors.ErrPortConflict)
		}
	}
	return nil
}

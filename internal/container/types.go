package container

import "strings"

// Status represents the lifecycle state of a container.
// Raw runtime status strings are always normalized to one of these values
// before they reach the rest of the system.
type Status int

const (
	// StatusCreated indicates the container exists but has never run.
	StatusCreated Status = iota

	// StatusRunning indicates the container is currently running.
	StatusRunning

	// StatusStopped indicates the container is not running.
	StatusStopped

	// StatusPaused indicates the container's processes are frozen.
	StatusPaused

	// StatusRestarting indicates the container is being restarted.
	StatusRestarting

	// StatusDead indicates the container is defunct and can only be removed.
	StatusDead

	// StatusExited indicates the container ran and terminated.
	StatusExited

	// StatusRemoved indicates the container has been removed.
	StatusRemoved
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusRunning:
		return "running"
	case StatusStopped:
		return "stopped"
	case StatusPaused:
		return "paused"
	case StatusRestarting:
		return "restarting"
	case StatusDead:
		return "dead"
	case StatusExited:
		return "exited"
	case StatusRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Health represents a container's reported health probe result.
type Health int

const (
	// HealthUnknown indicates no health probe result is available.
	HealthUnknown Health = iota

	// HealthHealthy indicates the most recent probe succeeded.
	HealthHealthy

	// HealthUnhealthy indicates the most recent probe failed.
	HealthUnhealthy
)

// String returns a human-readable name for the health state.
func (h Health) String() string {
	switch h {
	case HealthHealthy:
		return "healthy"
	case HealthUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Record is a point-in-time snapshot of a single container as reported by
// the active engine. Records are immutable once produced; the lifecycle
// manager replaces the full record set on every refresh cycle.
type Record struct {
	// ID is the opaque container identifier assigned by the runtime.
	ID string

	// Name is the human-readable container name.
	Name string

	// Image is the image reference the container was created from.
	Image string

	// Status is the normalized lifecycle state.
	Status Status

	// Ports holds the host:container port mappings in listing order.
	Ports []string

	// Created is the creation timestamp text as reported by the runtime.
	Created string

	// Health is the container's health probe state, if one is declared.
	Health Health
}

// HostPorts returns the host-side portion of each port mapping.
// Mappings without an explicit host side are skipped.
func (r Record) HostPorts() []string {
	var hosts []string
	for _, mapping := range r.Ports {
		host, _, ok := strings.Cut(mapping, ":")
		if ok && host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

// StatsRow is one parsed row of runtime resource usage output.
type StatsRow struct {
	Name    string
	CPU     string
	Memory  string
	NetIO   string
	BlockIO string
}

package engine

import (
	"context"
	"io"
	"strings"

	"github.com/AthenaLink/dockronos/internal/container"
)

// OfflineEngine is the fallback used when no container runtime is detected.
// Every operation returns a harmless empty or placeholder result so the rest
// of the system remains usable for inspection. The degraded mode is
// observable through Offline().
type OfflineEngine struct{}

// NewOfflineEngine creates an OfflineEngine.
func NewOfflineEngine() *OfflineEngine {
	return &OfflineEngine{}
}

// Name returns "offline".
func (e *OfflineEngine) Name() string { return "offline" }

// Offline returns true.
func (e *OfflineEngine) Offline() bool { return true }

// ListContainers returns an empty listing.
func (e *OfflineEngine) ListContainers(ctx context.Context) ([]container.Record, error) {
	return nil, nil
}

// StartServices is a no-op.
func (e *OfflineEngine) StartServices(ctx context.Context, names []string) error {
	return nil
}

// StopServices is a no-op.
func (e *OfflineEngine) StopServices(ctx context.Context, names []string) error {
	return nil
}

// RestartServices is a no-op.
func (e *OfflineEngine) RestartServices(ctx context.Context, names []string) error {
	return nil
}

// PauseContainer is a no-op.
func (e *OfflineEngine) PauseContainer(ctx context.Context, name string) error {
	return nil
}

// UnpauseContainer is a no-op.
func (e *OfflineEngine) UnpauseContainer(ctx context.Context, name string) error {
	return nil
}

// RemoveContainer is a no-op.
func (e *OfflineEngine) RemoveContainer(ctx context.Context, name string) error {
	return nil
}

// Logs returns a placeholder message stream.
func (e *OfflineEngine) Logs(ctx context.Context, name string, follow bool) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("offline mode: no container engine available\n")), nil
}

// Stats returns an empty listing.
func (e *OfflineEngine) Stats(ctx context.Context) ([]container.StatsRow, error) {
	return nil, nil
}

// Exec returns empty output.
func (e *OfflineEngine) Exec(ctx context.Context, name string, cmd []string) (string, error) {
	return "", nil
}

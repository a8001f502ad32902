package engine

import (
	"context"
	"io"
	"time"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/logging"
)

// defaultRestartDelay is the pause between stop and start when a runtime
// has no atomic restart primitive.
const defaultRestartDelay = time.Second

// PodmanEngine drives the podman CLI, using podman-compose for
// service-level operations.
type PodmanEngine struct {
	runner       Runner
	logger       *logging.Logger
	restartDelay time.Duration
}

// PodmanOption configures a PodmanEngine.
type PodmanOption func(*PodmanEngine)

// WithRestartDelay overrides the stop-to-start delay used by
// RestartServices.
func WithRestartDelay(delay time.Duration) PodmanOption {
	return func(e *PodmanEngine) {
		if delay >= 0 {
			e.restartDelay = delay
		}
	}
}

// NewPodmanEngine creates a PodmanEngine.
func NewPodmanEngine(runner Runner, logger *logging.Logger, opts ...PodmanOption) *PodmanEngine {
	e := &PodmanEngine{
		runner:       runner,
		logger:       logger.WithEngine("podman"),
		restartDelay: defaultRestartDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns "podman".
func (e *PodmanEngine) Name() string { return "podman" }

// Offline returns false; podman is a real runtime.
func (e *PodmanEngine) Offline() bool { return false }

// ListContainers lists all containers, running or not.
func (e *PodmanEngine) ListContainers(ctx context.Context) ([]container.Record, error) {
	out, err := e.runner.Run(ctx, "podman", "ps", "-a", "--format", listFormat)
	if err != nil {
		return nil, err
	}
	return container.ParseListOutput(out), nil
}

// StartServices brings the named services up in detached mode.
func (e *PodmanEngine) StartServices(ctx context.Context, names []string) error {
	e.logger.Debug("starting services", "services", names)
	args := append([]string{"up", "-d"}, names...)
	_, err := e.runner.Run(ctx, "podman-compose", args...)
	return err
}

// StopServices stops the named services.
func (e *PodmanEngine) StopServices(ctx context.Context, names []string) error {
	e.logger.Debug("stopping services", "services", names)
	args := append([]string{"stop"}, names...)
	_, err := e.runner.Run(ctx, "podman-compose", args...)
	return err
}

// RestartServices restarts the named services. podman-compose has no
// restart verb, so this degrades to stop, a short delay, then start.
func (e *PodmanEngine) RestartServices(ctx context.Context, names []string) error {
	e.logger.Debug("restarting services via stop/start", "services", names)

	if err := e.StopServices(ctx, names); err != nil {
		return err
	}

	select {
	case <-time.After(e.restartDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	return e.StartServices(ctx, names)
}

// PauseContainer freezes the named container's processes.
func (e *PodmanEngine) PauseContainer(ctx context.Context, name string) error {
	_, err := e.runner.Run(ctx, "podman", "pause", name)
	return err
}

// UnpauseContainer resumes a paused container.
func (e *PodmanEngine) UnpauseContainer(ctx context.Context, name string) error {
	_, err := e.runner.Run(ctx, "podman", "unpause", name)
	return err
}

// RemoveContainer removes the named container.
func (e *PodmanEngine) RemoveContainer(ctx context.Context, name string) error {
	_, err := e.runner.Run(ctx, "podman", "rm", name)
	return err
}

// Logs streams logs for one container.
func (e *PodmanEngine) Logs(ctx context.Context, name string, follow bool) (io.ReadCloser, error) {
	args := []string{"logs"}
	if follow {
		args = append(args, "-f")
	}
	args = append(args, name)
	return e.runner.Stream(ctx, "podman", args...)
}

// Stats returns one resource usage row per running container.
func (e *PodmanEngine) Stats(ctx context.Context) ([]container.StatsRow, error) {
	out, err := e.runner.Run(ctx, "podman", "stats", "--no-stream", "--format", statsFormat)
	if err != nil {
		return nil, err
	}
	return container.ParseStatsOutput(out), nil
}

// Exec runs a command inside a running container.
func (e *PodmanEngine) Exec(ctx context.Context, name string, cmd []string) (string, error) {
	args := append([]string{"exec", name}, cmd...)
	return e.runner.Run(ctx, "podman", args...)
}

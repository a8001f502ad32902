package engine

import (
	"context"
	"io"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/logging"
)

// DockerEngine drives the docker CLI, using the compose plugin for
// service-level operations.
type DockerEngine struct {
	runner Runner
	logger *logging.Logger
}

// NewDockerEngine creates a DockerEngine.
func NewDockerEngine(runner Runner, logger *logging.Logger) *DockerEngine {
	return &DockerEngine{runner: runner, logger: logger.WithEngine("docker")}
}

// Name returns "docker".
func (e *DockerEngine) Name() string { return "docker" }

// Offline returns false; docker is a real runtime.
func (e *DockerEngine) Offline() bool { return false }

// ListContainers lists all containers, running or not.
func (e *DockerEngine) ListContainers(ctx context.Context) ([]container.Record, error) {
	out, err := e.runner.Run(ctx, "docker", "ps", "-a", "--format", listFormat)
	if err != nil {
		return nil, err
	}
	return container.ParseListOutput(out), nil
}

// StartServices brings the named services up in detached mode.
func (e *DockerEngine) StartServices(ctx context.Context, names []string) error {
	e.logger.Debug("starting services", "services", names)
	args := append([]string{"compose", "up", "-d"}, names...)
	_, err := e.runner.Run(ctx, "docker", args...)
	return err
}

// StopServices stops the named services.
func (e *DockerEngine) StopServices(ctx context.Context, names []string) error {
	e.logger.Debug("stopping services", "services", names)
	args := append([]string{"compose", "stop"}, names...)
	_, err := e.runner.Run(ctx, "docker", args...)
	return err
}

// RestartServices restarts the named services atomically; docker compose
// has a native restart verb.
func (e *DockerEngine) RestartServices(ctx context.Context, names []string) error {
	e.logger.Debug("restarting services", "services", names)
	args := append([]string{"compose", "restart"}, names...)
	_, err := e.runner.Run(ctx, "docker", args...)
	return err
}

// PauseContainer freezes the named container's processes.
func (e *DockerEngine) PauseContainer(ctx context.Context, name string) error {
	_, err := e.runner.Run(ctx, "docker", "pause", name)
	return err
}

// UnpauseContainer resumes a paused container.
func (e *DockerEngine) UnpauseContainer(ctx context.Context, name string) error {
	_, err := e.runner.Run(ctx, "docker", "unpause", name)
	return err
}

// RemoveContainer removes the named container.
func (e *DockerEngine) RemoveContainer(ctx context.Context, name string) error {
	_, err := e.runner.Run(ctx, "docker", "rm", name)
	return err
}

// Logs streams logs for one container.
func (e *DockerEngine) Logs(ctx context.Context, name string, follow bool) (io.ReadCloser, error) {
	args := []string{"logs"}
	if follow {
		args = append(args, "-f")
	}
	args = append(args, name)
	return e.runner.Stream(ctx, "docker", args...)
}

// Stats returns one resource usage row per running container.
func (e *DockerEngine) Stats(ctx context.Context) ([]container.StatsRow, error) {
	out, err := e.runner.Run(ctx, "docker", "stats", "--no-stream", "--format", statsFormat)
	if err != nil {
		return nil, err
	}
	return container.ParseStatsOutput(out), nil
}

// Exec runs a command inside a running container.
func (e *DockerEngine) Exec(ctx context.Context, name string, cmd []string) (string, error) {
	args := append([]string{"exec", name}, cmd...)
	return e.runner.Run(ctx, "docker", args...)
}

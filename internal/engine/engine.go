package engine

import (
	"context"
	"io"
	"sync"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/errors"
	"github.com/AthenaLink/dockronos/internal/logging"
)

// Format strings for the tabular output the parser consumes.
const (
	listFormat  = "{{.ID}}\t{{.Names}}\t{{.Image}}\t{{.Status}}\t{{.Ports}}\t{{.CreatedAt}}"
	statsFormat = "{{.Name}}\t{{.CPUPerc}}\t{{.MemUsage}}\t{{.NetIO}}\t{{.BlockIO}}"
)

// Engine is the uniform command surface over a container runtime.
// All operations accept a context and may suspend on subprocess I/O.
type Engine interface {
	// Name returns the runtime name ("docker", "podman", or "offline").
	Name() string

	// Offline reports whether this engine is the placeholder fallback.
	Offline() bool

	// ListContainers returns a snapshot of all containers, running or not.
	ListContainers(ctx context.Context) ([]container.Record, error)

	// StartServices starts the named services.
	StartServices(ctx context.Context, names []string) error

	// StopServices stops the named services.
	StopServices(ctx context.Context, names []string) error

	// RestartServices restarts the named services. Runtimes without an
	// atomic restart degrade to stop, a short delay, then start.
	RestartServices(ctx context.Context, names []string) error

	// PauseContainer freezes the named container's processes.
	PauseContainer(ctx context.Context, name string) error

	// UnpauseContainer resumes a paused container.
	UnpauseContainer(ctx context.Context, name string) error

	// RemoveContainer removes the named container.
	RemoveContainer(ctx context.Context, name string) error

	// Logs streams logs for one container. The caller must close the
	// returned reader; closing it terminates a follow stream.
	Logs(ctx context.Context, name string, follow bool) (io.ReadCloser, error)

	// Stats returns one resource usage row per running container.
	Stats(ctx context.Context) ([]container.StatsRow, error)

	// Exec runs a command inside a running container and returns its output.
	Exec(ctx context.Context, name string, cmd []string) (string, error)
}

// Detector probes for a supported runtime and caches the result, making
// repeated detection calls no-ops. A single Detector (and the Engine it
// yields) is constructed at startup and passed into every component that
// needs runtime access.
type Detector struct {
	runner     Runner
	logger     *logging.Logger
	preference string
	podmanOpts []PodmanOption

	once   sync.Once
	engine Engine
	err    error
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithPreference pins detection to a single runtime name ("docker" or
// "podman") instead of probing both. "auto" or "" keeps the default
// probe order.
func WithPreference(name string) DetectorOption {
	return func(d *Detector) {
		if name != "auto" {
			d.preference = name
		}
	}
}

// WithPodmanOptions forwards options to the podman engine if detection
// selects it.
func WithPodmanOptions(opts ...PodmanOption) DetectorOption {
	return func(d *Detector) {
		d.podmanOpts = append(d.podmanOpts, opts...)
	}
}

// NewDetector creates a Detector. A nil runner defaults to the real
// subprocess runner.
func NewDetector(runner Runner, logger *logging.Logger, opts ...DetectorOption) *Detector {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	d := &Detector{runner: runner, logger: logger.WithComponent("engine")}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the active engine, probing on first call only.
//
// Runtimes are probed in fixed priority order: docker, then podman. When
// neither answers a version query the returned engine is the offline
// placeholder and err is ErrEngineNotFound. That error is informational,
// not fatal; the offline engine is fully usable.
func (d *Detector) Detect(ctx context.Context) (Engine, error) {
	d.once.Do(func() {
		d.engine, d.err = d.probe(ctx)
	})
	return d.engine, d.err
}

func (d *Detector) probe(ctx context.Context) (Engine, error) {
	tryDocker := d.preference == "" || d.preference == "docker"
	tryPodman := d.preference == "" || d.preference == "podman"

	if tryDocker {
		if _, err := d.runner.Run(ctx, "docker", "version"); err == nil {
			d.logger.Info("container engine detected", "engine", "docker")
			return NewDockerEngine(d.runner, d.logger), nil
		}
	}

	if tryPodman {
		if _, err := d.runner.Run(ctx, "podman", "version"); err == nil {
			d.logger.Info("container engine detected", "engine", "podman")
			return NewPodmanEngine(d.runner, d.logger, d.podmanOpts...), nil
		}
	}

	d.logger.Warn("no container engine found, entering offline mode", "preference", d.preference)
	return NewOfflineEngine(), errors.ErrEngineNotFound
}

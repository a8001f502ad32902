package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/AthenaLink/dockronos/internal/config"
	"github.com/AthenaLink/dockronos/internal/depgraph"
	"github.com/AthenaLink/dockronos/internal/engine"
	"github.com/AthenaLink/dockronos/internal/errors"
	"github.com/AthenaLink/dockronos/internal/event"
	"github.com/AthenaLink/dockronos/internal/lifecycle"
	"github.com/AthenaLink/dockronos/internal/logging"
	"github.com/AthenaLink/dockronos/internal/observer"
)

// app holds the wired runtime components shared by the commands. Every
// command builds one app per invocation and closes it before returning.
type app struct {
	cfg      *config.Config
	logger   *logging.Logger
	hub      *event.Hub
	console  *observer.Console
	engine   engine.Engine
	manager  *lifecycle.Manager
	executor *lifecycle.Executor
	starter  *depgraph.Starter
}

// newApp loads configuration and constructs the engine, lifecycle, and
// dependency components. Detection falling back to offline mode is
// reported but not fatal; commands fail later with a usable error when
// they actually need a runtime.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.LogDir(), cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}

	hub := event.NewHub(
		event.WithReplayLimit(cfg.Events.ReplayLimit),
		event.WithLogger(logger),
	)

	console := observer.NewConsole(os.Stdout)
	console.Attach(hub)

	detector := engine.NewDetector(nil, logger,
		engine.WithPreference(cfg.Runtime.Preference),
		engine.WithPodmanOptions(engine.WithRestartDelay(cfg.Runtime.RestartDelay())),
	)
	eng, detectErr := detector.Detect(ctx)
	hub.Emit(event.TypeEngineDetected, event.EnginePayload{
		Name:    eng.Name(),
		Offline: eng.Offline(),
	}, event.PriorityNormal)
	if detectErr != nil && !errors.Is(detectErr, errors.ErrEngineNotFound) {
		_ = logger.Close()
		return nil, detectErr
	}

	manager := lifecycle.NewManager(eng)
	graphDeps := newGraphLookups(cfg)
	executor := lifecycle.NewExecutor(manager, eng, hub, logger,
		lifecycle.WithDependentsFunc(graphDeps.dependents),
		lifecycle.WithVolumeSourcesFunc(graphDeps.volumeSources),
	)
	starter := depgraph.NewStarter(cfg.DefinitionSource(), manager, executor, eng, hub, logger, cfg.StarterConfig())

	return &app{
		cfg:      cfg,
		logger:   logger,
		hub:      hub,
		console:  console,
		engine:   eng,
		manager:  manager,
		executor: executor,
		starter:  starter,
	}, nil
}

// close drains pending events and releases the log file.
func (a *app) close() {
	a.hub.Close()
	_ = a.logger.Close()
}

// refresh primes the lifecycle manager with the current container set.
func (a *app) refresh(ctx context.Context) error {
	return a.manager.Refresh(ctx)
}

// graphLookups adapts the configured dependency graph to the executor's
// lookup functions.
type graphLookups struct {
	graph *depgraph.Graph
}

func newGraphLookups(cfg *config.Config) graphLookups {
	return graphLookups{graph: depgraph.Build(cfg.Services)}
}

func (g graphLookups) dependents(name string) []string {
	return g.graph.Dependents[name]
}

func (g graphLookups) volumeSources(name string) []string {
	def, ok := g.graph.Definition(name)
	if !ok {
		return nil
	}
	return def.VolumesFrom
}

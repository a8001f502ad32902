package depgraph

import (
	"context"
	"fmt"
	"time"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/engine"
	"github.com/AthenaLink/dockronos/internal/errors"
	"github.com/AthenaLink/dockronos/internal/event"
	"github.com/AthenaLink/dockronos/internal/lifecycle"
	"github.com/AthenaLink/dockronos/internal/logging"
)

// ActionRunner is the slice of the lifecycle executor the starter needs.
type ActionRunner interface {
	Execute(ctx context.Context, req lifecycle.Request) (lifecycle.Result, error)
}

// StarterConfig bounds the health-gating behavior.
type StarterConfig struct {
	// HealthInterval is the polling interval while waiting for a declared
	// health probe to report healthy.
	HealthInterval time.Duration

	// HealthTimeout bounds the total health wait per service.
	HealthTimeout time.Duration

	// GracePeriod is how long a service without a declared health probe is
	// given before it is assumed healthy.
	GracePeriod time.Duration
}

// DefaultStarterConfig returns the standard health-gating bounds.
func DefaultStarterConfig() StarterConfig {
	return StarterConfig{
		HealthInterval: time.Second,
		HealthTimeout:  30 * time.Second,
		GracePeriod:    2 * time.Second,
	}
}

// NodeResult is the per-service outcome of a dependency-ordered start.
type NodeResult struct {
	Service string
	Skipped bool   // already running, no action taken
	Err     string // empty on success
}

// ChainResult is the overall outcome of a dependency-ordered start.
type ChainResult struct {
	Success      bool
	StartedCount int
	FailedNode   string // empty on success
	Nodes        map[string]NodeResult
}

// Starter drives sequential, health-gated startup over the dependency
// graph. Already-running services are skipped. When a node fails to start
// or never reports healthy, the chain aborts and reports that node;
// ancestors that already started are left running.
type Starter struct {
	source  DefinitionSource
	manager *lifecycle.Manager
	runner  ActionRunner
	engine  engine.Engine
	hub     *event.Hub
	logger  *logging.Logger
	cfg     StarterConfig
}

// NewStarter creates a Starter.
func NewStarter(source DefinitionSource, manager *lifecycle.Manager, runner ActionRunner,
	eng engine.Engine, hub *event.Hub, logger *logging.Logger, cfg StarterConfig) *Starter {
	if cfg.HealthInterval <= 0 {
		cfg.HealthInterval = DefaultStarterConfig().HealthInterval
	}
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = DefaultStarterConfig().HealthTimeout
	}
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = DefaultStarterConfig().GracePeriod
	}
	return &Starter{
		source:  source,
		manager: manager,
		runner:  runner,
		engine:  eng,
		hub:     hub,
		logger:  logger.WithComponent("depgraph"),
		cfg:     cfg,
	}
}

// StartWithDependencies starts the root service and everything it depends
// on, strictly in computed topological order. The graph is rebuilt from the
// current definitions on every call.
func (s *Starter) StartWithDependencies(ctx context.Context, root string) (ChainResult, error) {
	result := ChainResult{Nodes: make(map[string]NodeResult)}

	definitions, err := s.source.Definitions()
	if err != nil {
		return result, fmt.Errorf("loading service definitions: %w", err)
	}

	graph := Build(definitions)
	order, err := graph.StartOrder(root)
	if err != nil {
		return result, err
	}

	if err := s.manager.Refresh(ctx); err != nil {
		s.logger.Warn("refresh before dependency start failed", "error", err)
	}

	s.logger.Info("starting dependency chain", "root", root, "order", order)

	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		record, known := s.manager.Get(name)
		if known && record.Status == container.StatusRunning {
			result.Nodes[name] = NodeResult{Service: name, Skipped: true}
			continue
		}

		def, _ := graph.Definition(name)
		err := s.startNode(ctx, name, known)
		if err == nil {
			err = s.waitHealthy(ctx, name, def.HealthProbe)
		}
		if err != nil {
			result.Nodes[name] = NodeResult{Service: name, Err: err.Error()}
			result.FailedNode = name
			s.emitChain(root, result)
			return result, fmt.Errorf("dependency chain aborted at %q: %w", name, err)
		}

		result.Nodes[name] = NodeResult{Service: name}
		result.StartedCount++
	}

	result.Success = true
	s.emitChain(root, result)
	return result, nil
}

// startNode starts one service. Services with an existing container go
// through the lifecycle executor so hooks and validation apply; services
// whose container does not exist yet are created directly by the engine.
func (s *Starter) startNode(ctx context.Context, name string, hasRecord bool) error {
	if hasRecord {
		_, err := s.runner.Execute(ctx, lifecycle.Request{Target: name, Action: lifecycle.ActionStart})
		return err
	}
	return s.engine.StartServices(ctx, []string{name})
}

// waitHealthy blocks until the service reports healthy, the timeout
// elapses, or ctx is cancelled. Services without a declared probe are
// assumed healthy after the grace period and never time out.
func (s *Starter) waitHealthy(ctx context.Context, name string, hasProbe bool) error {
	if !hasProbe {
		select {
		case <-time.After(s.cfg.GracePeriod):
			s.emitHealth(name, "healthy", "assumed healthy after grace period")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	started := time.Now()
	ticker := time.NewTicker(s.cfg.HealthInterval)
	defer ticker.Stop()
	timeout := time.NewTimer(s.cfg.HealthTimeout)
	defer timeout.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout.C:
			elapsed := time.Since(started)
			s.emitHealth(name, "unhealthy", fmt.Sprintf("no healthy signal within %s", elapsed.Round(time.Second)))
			return errors.NewHealthTimeoutError(name, elapsed)
		case <-ticker.C:
			if err := s.manager.Refresh(ctx); err != nil {
				s.logger.Warn("refresh during health wait failed", "service", name, "error", err)
				continue
			}
			if record, ok := s.manager.Get(name); ok && record.Health == container.HealthHealthy {
				s.emitHealth(name, "healthy", "health probe reported healthy")
				return nil
			}
		}
	}
}

// HealthState classifies a service health check result.
type HealthState string

const (
	HealthNotFound  HealthState = "not_found"
	HealthUnhealthy HealthState = "unhealthy"
	HealthHealthy   HealthState = "healthy"
	HealthError     HealthState = "error"
)

// HealthReport is the result of an on-demand service health check.
type HealthReport struct {
	Status  HealthState
	Message string
}

// CheckServiceHealth reports the current health of one service. A running
// container without a declared probe is considered healthy.
func (s *Starter) CheckServiceHealth(ctx context.Context, name string) HealthReport {
	if err := s.manager.Refresh(ctx); err != nil {
		return HealthReport{Status: HealthError, Message: err.Error()}
	}

	record, ok := s.manager.Get(name)
	if !ok {
		return HealthReport{Status: HealthNotFound, Message: fmt.Sprintf("no container for service %q", name)}
	}

	switch {
	case record.Health == container.HealthUnhealthy:
		return HealthReport{Status: HealthUnhealthy, Message: "health probe reported unhealthy"}
	case record.Health == container.HealthHealthy:
		return HealthReport{Status: HealthHealthy, Message: "health probe reported healthy"}
	case record.Status == container.StatusRunning:
		return HealthReport{Status: HealthHealthy, Message: "running, no health probe declared"}
	default:
		return HealthReport{Status: HealthUnhealthy, Message: fmt.Sprintf("container is %s", record.Status)}
	}
}

func (s *Starter) emitChain(root string, result ChainResult) {
	priority := event.PriorityNormal
	if !result.Success {
		priority = event.PriorityUrgentThreshold + 1
	}
	s.hub.Emit(event.TypeChainCompleted, event.ChainPayload{
		Root:       root,
		Started:    result.StartedCount,
		FailedNode: result.FailedNode,
	}, priority)
}

func (s *Starter) emitHealth(service, status, message string) {
	s.hub.Emit(event.TypeServiceHealth, event.HealthPayload{
		Service: service,
		Status:  status,
		Message: message,
	}, event.PriorityNormal)
}

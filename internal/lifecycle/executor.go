package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/engine"
	"github.com/AthenaLink/dockronos/internal/errors"
	"github.com/AthenaLink/dockronos/internal/event"
	"github.com/AthenaLink/dockronos/internal/logging"
	"github.com/AthenaLink/dockronos/internal/ports"
)

// Executor runs validated lifecycle actions against the engine.
//
// Overlapping requests against the same container are serialized through a
// per-container lock, so two concurrent start/stop calls queue instead of
// racing. Requests against different containers proceed independently.
type Executor struct {
	manager *Manager
	engine  engine.Engine
	hub     *event.Hub
	logger  *logging.Logger

	hooks         []Hook
	dependents    func(name string) []string
	volumeSources func(name string) []string
	ports         *ports.Registry

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithHooks registers hooks run around every action, in order.
func WithHooks(hooks ...Hook) ExecutorOption {
	return func(x *Executor) {
		x.hooks = append(x.hooks, hooks...)
	}
}

// WithDependentsFunc supplies the reverse-dependency lookup used to warn
// when stopping or removing a container that others depend on.
func WithDependentsFunc(fn func(name string) []string) ExecutorOption {
	return func(x *Executor) {
		x.dependents = fn
	}
}

// WithVolumeSourcesFunc supplies the shared-volume lookup used by the
// pre-start resource check.
func WithVolumeSourcesFunc(fn func(name string) []string) ExecutorOption {
	return func(x *Executor) {
		x.volumeSources = fn
	}
}

// NewExecutor creates an Executor.
func NewExecutor(manager *Manager, eng engine.Engine, hub *event.Hub, logger *logging.Logger, opts ...ExecutorOption) *Executor {
	x := &Executor{
		manager: manager,
		engine:  eng,
		hub:     hub,
		logger:  logger.WithComponent("lifecycle"),
		ports:   ports.NewRegistry(),
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Execute runs one action end to end: pre-hooks, dependency warnings,
// resource pre-checks, the engine call, post-hooks, a record refresh, and
// an emitted event. The returned Result carries the total wall-clock
// duration. Engine failures are wrapped into an ActionError carrying the
// container and action; they are never surfaced bare.
func (x *Executor) Execute(ctx context.Context, req Request) (Result, error) {
	started := time.Now()

	record, ok := x.manager.Get(req.Target)
	if !ok {
		return Result{}, fmt.Errorf("container %q: %w", req.Target, errors.ErrContainerNotFound)
	}

	lock := x.containerLock(record.Name)
	lock.Lock()
	defer lock.Unlock()

	// Re-resolve under the lock; a queued action may have changed state.
	if fresh, ok := x.manager.Get(record.Name); ok {
		record = fresh
	}

	result := Result{Container: record.Name, Action: req.Action}

	if err := ValidateAction(record, req.Action); err != nil {
		result.Duration = time.Since(started)
		return result, err
	}

	for _, hook := range x.hooks {
		proceed, err := hook.Before(ctx, record, req.Action)
		if err != nil {
			result.Duration = time.Since(started)
			return result, fmt.Errorf("pre-action hook failed for %q: %w", record.Name, err)
		}
		if !proceed {
			result.Duration = time.Since(started)
			return result, fmt.Errorf("%s %q: %w", req.Action, record.Name, errors.ErrActionVetoed)
		}
	}

	if req.Action == ActionStop || req.Action == ActionRemove {
		x.warnDependents(record, req.Action)
	}

	if req.Action == ActionStart {
		if err := x.preStartCheck(record); err != nil {
			result.Duration = time.Since(started)
			return result, err
		}
	}

	var actionErr error
	if err := x.dispatch(ctx, record.Name, req.Action); err != nil {
		actionErr = errors.NewActionError(record.Name, string(req.Action), err)
	}

	for _, hook := range x.hooks {
		hook.After(ctx, record, req.Action, actionErr)
	}

	if err := x.manager.Refresh(ctx); err != nil {
		x.logger.Warn("record refresh after action failed", "error", err)
	}

	result.Duration = time.Since(started)
	x.emit(result, actionErr)

	if actionErr != nil {
		return result, actionErr
	}
	return result, nil
}

// dispatch maps an action onto the engine call that performs it.
func (x *Executor) dispatch(ctx context.Context, name string, action Action) error {
	switch action {
	case ActionStart:
		return x.engine.StartServices(ctx, []string{name})
	case ActionStop:
		return x.engine.StopServices(ctx, []string{name})
	case ActionRestart:
		return x.engine.RestartServices(ctx, []string{name})
	case ActionPause:
		return x.engine.PauseContainer(ctx, name)
	case ActionUnpause:
		return x.engine.UnpauseContainer(ctx, name)
	case ActionRemove:
		return x.engine.RemoveContainer(ctx, name)
	default:
		return fmt.Errorf("action %q is not executable", action)
	}
}

// warnDependents surfaces a non-blocking warning when other services depend
// on the container being stopped or removed. The action still proceeds.
func (x *Executor) warnDependents(record container.Record, action Action) {
	if x.dependents == nil {
		return
	}
	dependents := x.dependents(record.Name)
	if len(dependents) == 0 {
		return
	}

	x.logger.Warn("container has dependents",
		"container", record.Name,
		"action", string(action),
		"dependents", dependents)
	x.hub.Emit(event.TypeContainerWarning, event.WarningPayload{
		Container:  record.Name,
		Message:    fmt.Sprintf("%d service(s) depend on %q", len(dependents), record.Name),
		Dependents: dependents,
	}, event.PriorityNormal)
}

// preStartCheck rejects a start whose host ports collide with a running
// container. Shared volume sources produce a warning rather than an error;
// concurrent use is suspect but not always wrong.
func (x *Executor) preStartCheck(record container.Record) error {
	x.ports.Rebuild(x.manager.Running())
	if err := x.ports.Check(record); err != nil {
		return fmt.Errorf("starting %q: %w", record.Name, err)
	}

	if x.volumeSources != nil {
		for _, source := range x.volumeSources(record.Name) {
			for _, running := range x.manager.Running() {
				if running.Name == source {
					conflict := fmt.Errorf("volume source %q: %w", source, errors.ErrVolumeConflict)
					x.logger.Warn("volume source container is in use",
						"container", record.Name, "source", source, "warning", conflict)
					x.hub.Emit(event.TypeContainerWarning, event.WarningPayload{
						Container: record.Name,
						Message:   conflict.Error(),
					}, event.PriorityNormal)
				}
			}
		}
	}
	return nil
}

// emit publishes the action outcome. Failed actions are urgent so that
// consumers surface them ahead of routine traffic.
func (x *Executor) emit(result Result, actionErr error) {
	payload := event.ActionPayload{
		Container: result.Container,
		Action:    string(result.Action),
		Duration:  result.Duration,
	}
	priority := event.PriorityNormal
	if actionErr != nil {
		payload.Err = actionErr.Error()
		priority = event.PriorityUrgentThreshold + 1
	}
	x.hub.Emit(event.TypeContainerAction, payload, priority)

	if actionErr != nil {
		return
	}
	switch result.Action {
	case ActionStart:
		x.hub.Emit(event.TypeContainerStarted, payload, event.PriorityNormal)
	case ActionStop:
		x.hub.Emit(event.TypeContainerStopped, payload, event.PriorityNormal)
	}
}

// containerLock returns the mutex serializing actions for one container.
func (x *Executor) containerLock(name string) *sync.Mutex {
	x.mu.Lock()
	defer x.mu.Unlock()

	lock, ok := x.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		x.locks[name] = lock
	}
	return lock
}

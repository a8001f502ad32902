package lifecycle

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/errors"
	"github.com/AthenaLink/dockronos/internal/event"
	"github.com/AthenaLink/dockronos/internal/logging"
)

// fakeEngine is an in-memory Engine whose listing is controlled by tests.
type fakeEngine struct {
	mu       sync.Mutex
	records  []container.Record
	calls    []string
	failWith error

	inFlight    int
	maxInFlight int
	delay       time.Duration
}

func (e *fakeEngine) Name() string  { return "fake" }
func (e *fakeEngine) Offline() bool { return false }

func (e *fakeEngine) ListContainers(ctx context.Context) ([]container.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	records := make([]container.Record, len(e.records))
	copy(records, e.records)
	return records, nil
}

func (e *fakeEngine) call(name string) error {
	e.mu.Lock()
	e.calls = append(e.calls, name)
	e.inFlight++
	if e.inFlight > e.maxInFlight {
		e.maxInFlight = e.inFlight
	}
	delay := e.delay
	err := e.failWith
	e.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	e.mu.Lock()
	e.inFlight--
	e.mu.Unlock()
	return err
}

func (e *fakeEngine) StartServices(ctx context.Context, names []string) error {
	return e.call("start " + strings.Join(names, ","))
}
func (e *fakeEngine) StopServices(ctx context.Context, names []string) error {
	return e.call("stop " + strings.Join(names, ","))
}
func (e *fakeEngine) RestartServices(ctx context.Context, names []string) error {
	return e.call("restart " + strings.Join(names, ","))
}
func (e *fakeEngine) PauseContainer(ctx context.Context, name string) error {
	return e.call("pause " + name)
}
func (e *fakeEngine) UnpauseContainer(ctx context.Context, name string) error {
	return e.call("unpause " + name)
}
func (e *fakeEngine) RemoveContainer(ctx context.Context, name string) error {
	return e.call("remove " + name)
}
func (e *fakeEngine) Logs(ctx context.Context, name string, follow bool) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}
func (e *fakeEngine) Stats(ctx context.Context) ([]container.StatsRow, error) {
	return nil, nil
}
func (e *fakeEngine) Exec(ctx context.Context, name string, cmd []string) (string, error) {
	return "", nil
}

func (e *fakeEngine) callList() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	calls := make([]string, len(e.calls))
	copy(calls, e.calls)
	return calls
}

// vetoHook vetoes every action.
type vetoHook struct{}

func (vetoHook) Before(ctx context.Context, r container.Record, a Action) (bool, error) {
	return false, nil
}
func (vetoHook) After(ctx context.Context, r container.Record, a Action, err error) {}

// recordingHook records the order hooks fire in.
type recordingHook struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHook) Before(ctx context.Context, r container.Record, a Action) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "before "+string(a))
	return true, nil
}

func (h *recordingHook) After(ctx context.Context, r container.Record, a Action, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "after "+string(a))
}

func newTestExecutor(t *testing.T, eng *fakeEngine, opts ...ExecutorOption) (*Executor, *event.Hub) {
	t.Helper()

	hub := event.NewHub()
	t.Cleanup(hub.Close)

	manager := NewManager(eng)
	if err := manager.Refresh(context.Background()); err != nil {
		t.Fatalf("initial refresh failed: %v", err)
	}
	return NewExecutor(manager, eng, hub, logging.NopLogger(), opts...), hub
}

func TestExecutor_StartStoppedContainer(t *testing.T) {
	eng := &fakeEngine{records: []container.Record{
		{ID: "id1", Name: "web", Status: container.StatusStopped},
	}}
	executor, hub := newTestExecutor(t, eng)

	result, err := executor.Execute(context.Background(), Request{Target: "web", Action: ActionStart})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Container != "web" || result.Action != ActionStart {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Duration <= 0 {
		t.Error("result should carry a measured duration")
	}

	calls := eng.callList()
	if len(calls) == 0 || calls[0] != "start web" {
		t.Errorf("expected engine start call, got %v", calls)
	}

	hub.Close()
	started := hub.Replay(event.TypeContainerStarted, func(event.Event) {}, time.Time{})
	if started != 1 {
		t.Errorf("expected 1 container.started event, got %d", started)
	}
}

func TestExecutor_ResolvesByID(t *testing.T) {
	eng := &fakeEngine{records: []container.Record{
		{ID: "abc123", Name: "web", Status: container.StatusStopped},
	}}
	executor, _ := newTestExecutor(t, eng)

	result, err := executor.Execute(context.Background(), Request{Target: "abc123", Action: ActionStart})
	if err != nil {
		t.Fatalf("Execute by ID failed: %v", err)
	}
	if result.Container != "web" {
		t.Errorf("result should carry the resolved name, got %q", result.Container)
	}
}

func TestExecutor_InvalidActionSkipsEngine(t *testing.T) {
	eng := &fakeEngine{records: []container.Record{
		{ID: "id1", Name: "web", Status: container.StatusStopped},
	}}
	executor, _ := newTestExecutor(t, eng)

	_, err := executor.Execute(context.Background(), Request{Target: "web", Action: ActionStop})

	var invalid *errors.InvalidActionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidActionError, got %v", err)
	}
	if len(eng.callList()) != 0 {
		t.Errorf("engine should not be called on validation failure, got %v", eng.callList())
	}
}

func TestExecutor_UnknownTarget(t *testing.T) {
	eng := &fakeEngine{}
	executor, _ := newTestExecutor(t, eng)

	_, err := executor.Execute(context.Background(), Request{Target: "ghost", Action: ActionStart})
	if !errors.Is(err, errors.ErrContainerNotFound) {
		t.Errorf("expected ErrContainerNotFound, got %v", err)
	}
}

func TestExecutor_PreHookVeto(t *testing.T) {
	eng := &fakeEngine{records: []container.Record{
		{ID: "id1", Name: "web", Status: container.StatusStopped},
	}}
	executor, _ := newTestExecutor(t, eng, WithHooks(vetoHook{}))

	_, err := executor.Execute(context.Background(), Request{Target: "web", Action: ActionStart})
	if !errors.Is(err, errors.ErrActionVetoed) {
		t.Fatalf("expected ErrActionVetoed, got %v", err)
	}
	if len(eng.callList()) != 0 {
		t.Error("vetoed action must abort without side effects")
	}
}

func TestExecutor_HooksRunAroundAction(t *testing.T) {
	eng := &fakeEngine{records: []container.Record{
		{ID: "id1", Name: "web", Status: container.StatusRunning},
	}}
	hook := &recordingHook{}
	executor, _ := newTestExecutor(t, eng, WithHooks(hook))

	if _, err := executor.Execute(context.Background(), Request{Target: "web", Action: ActionStop}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(hook.events) != 2 || hook.events[0] != "before stop" || hook.events[1] != "after stop" {
		t.Errorf("hooks should run before and after the action, got %v", hook.events)
	}
}

func TestExecutor_EngineFailureWrapped(t *testing.T) {
	cmdErr := errors.NewCommandError("docker", "compose up -d web", "image pull failed", 1)
	eng := &fakeEngine{
		records:  []container.Record{{ID: "id1", Name: "web", Status: container.StatusStopped}},
		failWith: cmdErr,
	}
	executor, _ := newTestExecutor(t, eng)

	_, err := executor.Execute(context.Background(), Request{Target: "web", Action: ActionStart})

	var actionErr *errors.ActionError
	if !errors.As(err, &actionErr) {
		t.Fatalf("expected ActionError, got %v", err)
	}
	if actionErr.Container != "web" || actionErr.Action != "start" {
		t.Errorf("ActionError should carry container and action, got %+v", actionErr)
	}

	var wrapped *errors.CommandError
	if !errors.As(err, &wrapped) {
		t.Error("original CommandError should be reachable through the wrap")
	}
}

func TestExecutor_DependentWarningDoesNotBlock(t *testing.T) {
	eng := &fakeEngine{records: []container.Record{
		{ID: "id1", Name: "db", Status: container.StatusRunning},
	}}
	executor, hub := newTestExecutor(t, eng, WithDependentsFunc(func(name string) []string {
		if name == "db" {
			return []string{"web", "worker"}
		}
		return nil
	}))

	if _, err := executor.Execute(context.Background(), Request{Target: "db", Action: ActionStop}); err != nil {
		t.Fatalf("stop with dependents should proceed, got %v", err)
	}

	hub.Close()
	warnings := 0
	hub.Replay(event.TypeContainerWarning, func(ev event.Event) {
		warnings++
		payload := ev.Payload.(event.WarningPayload)
		if len(payload.Dependents) != 2 {
			t.Errorf("warning should list dependents, got %v", payload.Dependents)
		}
	}, time.Time{})
	if warnings != 1 {
		t.Errorf("expected 1 dependency warning, got %d", warnings)
	}
}

func TestExecutor_PortConflictBlocksStart(t *testing.T) {
	eng := &fakeEngine{records: []container.Record{
		{ID: "id1", Name: "web", Status: container.StatusStopped, Ports: []string{"80:8080"}},
		{ID: "id2", Name: "proxy", Status: container.StatusRunning, Ports: []string{"80:9090"}},
	}}
	executor, _ := newTestExecutor(t, eng)

	_, err := executor.Execute(context.Background(), Request{Target: "web", Action: ActionStart})
	if !errors.Is(err, errors.ErrPortConflict) {
		t.Fatalf("expected ErrPortConflict, got %v", err)
	}
	if len(eng.callList()) != 0 {
		t.Error("conflicting start must not reach the engine")
	}
}

func TestExecutor_VolumeConflictWarnsWithoutBlocking(t *testing.T) {
	eng := &fakeEngine{records: []container.Record{
		{ID: "id1", Name: "web", Status: container.StatusStopped},
		{ID: "id2", Name: "data", Status: container.StatusRunning},
	}}
	executor, hub := newTestExecutor(t, eng, WithVolumeSourcesFunc(func(name string) []string {
		if name == "web" {
			return []string{"data"}
		}
		return nil
	}))

	if _, err := executor.Execute(context.Background(), Request{Target: "web", Action: ActionStart}); err != nil {
		t.Fatalf("start with a busy volume source should proceed, got %v", err)
	}
	if calls := eng.callList(); len(calls) == 0 || calls[0] != "start web" {
		t.Errorf("start should reach the engine despite the warning, got %v", calls)
	}

	hub.Close()
	warnings := 0
	hub.Replay(event.TypeContainerWarning, func(ev event.Event) {
		warnings++
		payload := ev.Payload.(event.WarningPayload)
		if payload.Container != "web" {
			t.Errorf("warning should name the starting container, got %q", payload.Container)
		}
		if !strings.Contains(payload.Message, `volume source "data"`) ||
			!strings.Contains(payload.Message, errors.ErrVolumeConflict.Error()) {
			t.Errorf("warning should identify the conflicting source, got %q", payload.Message)
		}
	}, time.Time{})
	if warnings != 1 {
		t.Errorf("expected 1 volume warning, got %d", warnings)
	}
}

func TestExecutor_SerializesSameContainer(t *testing.T) {
	eng := &fakeEngine{
		records: []container.Record{{ID: "id1", Name: "web", Status: container.StatusStopped}},
		delay:   20 * time.Millisecond,
	}
	executor, _ := newTestExecutor(t, eng)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = executor.Execute(context.Background(), Request{Target: "web", Action: ActionStart})
		}()
	}
	wg.Wait()

	eng.mu.Lock()
	max := eng.maxInFlight
	eng.mu.Unlock()
	if max > 1 {
		t.Errorf("overlapping actions on one container must queue, saw %d in flight", max)
	}
}

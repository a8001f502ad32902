package lifecycle

import (
	"context"
	"time"

	"github.com/AthenaLink/dockronos/internal/container"
)

// Action is a user- or system-requested operation against a container.
type Action string

const (
	ActionStart   Action = "start"
	ActionStop    Action = "stop"
	ActionRestart Action = "restart"
	ActionPause   Action = "pause"
	ActionUnpause Action = "unpause"
	ActionRemove  Action = "remove"
	ActionLogs    Action = "logs"
	ActionExec    Action = "exec"
)

// gatedActions are the state-changing actions subject to state validation,
// in the order they are reported in validation error messages.
var gatedActions = []Action{
	ActionStart,
	ActionStop,
	ActionRestart,
	ActionPause,
	ActionUnpause,
	ActionRemove,
}

// Request describes one requested action against a container.
// Requests are transient; one is created per user or automated request.
type Request struct {
	// Target is the container name or ID.
	Target string

	// Action is the operation to perform.
	Action Action
}

// Result describes a completed action, successful or not.
type Result struct {
	// Container is the resolved container name.
	Container string

	// Action is the operation that ran.
	Action Action

	// Duration is the wall-clock time the full action sequence took,
	// including hooks, the engine call, and the record refresh.
	Duration time.Duration
}

// Hook observes and can influence action execution. Before runs ahead of
// any side effect and may veto the action by returning false. After runs
// once the engine call has finished, successful or not.
type Hook interface {
	Before(ctx context.Context, record container.Record, action Action) (bool, error)
	After(ctx context.Context, record container.Record, action Action, actionErr error)
}

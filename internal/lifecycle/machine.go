package lifecycle

import (
	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/errors"
)

// transitions is the explicit state transition table. A container may only
// move from a state to one of its listed successors.
var transitions = map[container.Status][]container.Status{
	container.StatusCreated:    {container.StatusRunning, container.StatusRemoved},
	container.StatusRunning:    {container.StatusStopped, container.StatusPaused, container.StatusRestarting},
	container.StatusStopped:    {container.StatusRunning, container.StatusRemoved},
	container.StatusPaused:     {container.StatusRunning, container.StatusStopped},
	container.StatusRestarting: {container.StatusRunning, container.StatusStopped},
	container.StatusDead:       {container.StatusRemoved},
	container.StatusExited:     {container.StatusRunning, container.StatusRemoved},
}

// actionStates maps each state-gated action to the set of states it is
// valid from. Read-only actions (logs, exec) are not gated here.
var actionStates = map[Action][]container.Status{
	ActionStart:   {container.StatusCreated, container.StatusStopped, container.StatusDead, container.StatusExited},
	ActionStop:    {container.StatusRunning, container.StatusPaused},
	ActionRestart: {container.StatusRunning},
	ActionPause:   {container.StatusRunning},
	ActionUnpause: {container.StatusPaused},
	ActionRemove:  {container.StatusCreated, container.StatusStopped, container.StatusDead, container.StatusExited},
}

// CanTransition reports whether the transition table allows moving from one
// status to another.
func CanTransition(from, to container.Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateAction checks whether the action is permitted from the
// container's current state. Read-only actions (logs, exec against a
// running container) are always permitted except exec, which requires a
// running container. On rejection the returned error enumerates the
// actions that are currently valid; that listing is part of the contract.
func ValidateAction(record container.Record, action Action) error {
	switch action {
	case ActionLogs:
		return nil
	case ActionExec:
		if record.Status == container.StatusRunning {
			return nil
		}
		return invalidAction(record, action)
	}

	states, known := actionStates[action]
	if !known {
		return invalidAction(record, action)
	}
	for _, s := range states {
		if record.Status == s {
			return nil
		}
	}
	return invalidAction(record, action)
}

// ValidActions returns the state-gated actions permitted from the given
// status, in reporting order.
func ValidActions(status container.Status) []Action {
	var valid []Action
	for _, action := range gatedActions {
		for _, s := range actionStates[action] {
			if s == status {
				valid = append(valid, action)
				break
			}
		}
	}
	return valid
}

func invalidAction(record container.Record, action Action) error {
	valid := ValidActions(record.Status)
	names := make([]string, len(valid))
	for i, a := range valid {
		names[i] = string(a)
	}
	return errors.NewInvalidActionError(record.Name, string(action), record.Status.String(), names)
}

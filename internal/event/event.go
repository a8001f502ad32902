package event

import "time"

// Well-known event types published by the engine. Consumers may also define
// their own types; the hub treats types as opaque keys.
// Convention: "category.action".
const (
	// TypeContainerStarted is published after a container start succeeds.
	TypeContainerStarted = "container.started"

	// TypeContainerStopped is published after a container stop succeeds.
	TypeContainerStopped = "container.stopped"

	// TypeContainerAction is published after any lifecycle action completes,
	// successfully or not.
	TypeContainerAction = "container.action"

	// TypeContainerWarning is published for non-blocking warnings, such as
	// stopping a container that others depend on.
	TypeContainerWarning = "container.warning"

	// TypeServiceHealth is published when a service health probe resolves.
	TypeServiceHealth = "service.health"

	// TypeChainCompleted is published when a dependency-ordered start
	// finishes, successfully or not.
	TypeChainCompleted = "chain.completed"

	// TypeEngineDetected is published once engine detection resolves.
	TypeEngineDetected = "engine.detected"

	// TypeMetricsUpdated is published when fresh stats rows are collected.
	TypeMetricsUpdated = "metrics.updated"
)

// Priority levels. Zero is normal; anything above PriorityUrgentThreshold is
// dispatched out of band, ahead of queued normal-priority events.
const (
	PriorityNormal          = 0
	PriorityHigh            = 5
	PriorityUrgentThreshold = 5
)

// Event is a single immutable occurrence distributed by the hub.
// Consumers receive events by value and must not retain pointers into the
// payload.
type Event struct {
	// Type identifies the kind of event, e.g. "container.started".
	Type string

	// Payload carries event-specific data.
	Payload any

	// Timestamp records when the event was emitted.
	Timestamp time.Time

	// Priority orders delivery. 0 is normal; values above the urgent
	// threshold are delivered immediately.
	Priority int

	// seq is the hub-assigned arrival order, used to break priority ties.
	seq uint64
}

// Urgent reports whether the event exceeds the urgent threshold.
func (e Event) Urgent() bool {
	return e.Priority > PriorityUrgentThreshold
}

// ActionPayload describes a completed lifecycle action.
type ActionPayload struct {
	Container string
	Action    string
	Duration  time.Duration
	Err       string // empty on success
}

// WarningPayload describes a non-blocking warning surfaced to consumers.
type WarningPayload struct {
	Container  string
	Message    string
	Dependents []string
}

// HealthPayload describes a resolved service health probe.
type HealthPayload struct {
	Service string
	Status  string
	Message string
}

// ChainPayload describes a finished dependency-ordered start.
type ChainPayload struct {
	Root       string
	Started    int
	FailedNode string // empty on success
}

// EnginePayload describes the outcome of engine detection.
type EnginePayload struct {
	Name    string
	Offline bool
}

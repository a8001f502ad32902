// Package lifecycle owns the per-container state machine.
//
// Every action is validated against an explicit transition table before it
// reaches the engine; a rejected action reports the actions that are valid
// from the container's current state. Execution runs pre-action hooks (which
// may veto), dependency warnings, resource pre-checks, the engine call,
// post-action hooks, a record refresh, and an event emission, measuring the
// wall-clock duration of the whole sequence.
//
// The package also owns the container record set: records are replaced
// wholesale on each refresh cycle, never partially mutated.
package lifecycle

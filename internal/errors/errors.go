// Package errors provides centralized error definitions and error handling
// utilities for the Dockronos codebase. It defines domain-specific errors,
// semantic error types, error constructors with context wrapping, and error
// classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - CommandError: a runtime subprocess exited non-zero
//   - ActionError: a lifecycle action failed against a container
//   - InvalidActionError: an action is not allowed from the current state
//   - CycleError: the dependency graph contains a cycle
//   - HealthTimeoutError: a service never reported healthy within its bound
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewCommandError("docker", "compose up -d", stderr, exitCode)
//	err := errors.NewActionError("web", "start", cause)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrEngineNotFound) { ... }
//
//	var cmdErr *errors.CommandError
//	if errors.As(err, &cmdErr) { ... }
//
//	if errors.IsRetryable(err) { ... }
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns a human-readable name for a severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Engine-related sentinel errors
var (
	// ErrEngineNotFound indicates that no supported container runtime was
	// detected. It is non-fatal: the engine layer falls back to offline mode.
	ErrEngineNotFound = New("no container engine found")
)

// Container-related sentinel errors
var (
	// ErrContainerNotFound indicates that a container could not be found.
	ErrContainerNotFound = New("container not found")
	// ErrActionVetoed indicates that a pre-action hook rejected the action.
	ErrActionVetoed = New("action vetoed by pre-action hook")
	// ErrPortConflict indicates that a host port is already claimed by a
	// running container.
	ErrPortConflict = New("host port already in use")
	// ErrVolumeConflict indicates that a shared volume source is already
	// claimed by a running container.
	ErrVolumeConflict = New("volume source already in use")
)

// Dependency-related sentinel errors
var (
	// ErrServiceNotFound indicates that a service name is not in the graph.
	ErrServiceNotFound = New("service not found")
	// ErrDependencyCycle indicates a circular dependency between services.
	ErrDependencyCycle = New("dependency cycle detected")
	// ErrHealthTimeout indicates that a health wait exceeded its bound.
	ErrHealthTimeout = New("health check timed out")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// DockronosError is the base interface for all Dockronos errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type DockronosError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// CommandError represents a runtime subprocess that exited non-zero.
// It carries the captured error stream so callers can surface the runtime's
// own diagnostic text.
type CommandError struct {
	baseError
	Engine   string
	Command  string
	Stderr   string
	ExitCode int
}

// NewCommandError creates a new CommandError.
func NewCommandError(engine, command, stderr string, exitCode int) *CommandError {
	return &CommandError{
		baseError: baseError{
			message:    fmt.Sprintf("%s command failed", engine),
			severity:   SeverityError,
			retryable:  true,
			userFacing: true,
		},
		Engine:   engine,
		Command:  command,
		Stderr:   stderr,
		ExitCode: exitCode,
	}
}

// Error returns the error message including the command and captured stderr.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s command %q failed with exit code %d", e.Engine, e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

// ActionError wraps a lower-level failure with the container and action that
// triggered it. Engine failures during lifecycle actions are always wrapped
// into an ActionError, never re-surfaced bare.
type ActionError struct {
	baseError
	Container string
	Action    string
}

// NewActionError creates a new ActionError wrapping cause.
func NewActionError(container, action string, cause error) *ActionError {
	return &ActionError{
		baseError: baseError{
			message:    fmt.Sprintf("action %q failed for container %q", action, container),
			cause:      cause,
			severity:   SeverityError,
			retryable:  IsRetryable(cause),
			userFacing: true,
		},
		Container: container,
		Action:    action,
	}
}

// InvalidActionError indicates that an action is not permitted from a
// container's current state. The message enumerates the actions that are
// currently valid; callers rely on that listing.
type InvalidActionError struct {
	baseError
	Container    string
	Action       string
	State        string
	ValidActions []string
}

// NewInvalidActionError creates a new InvalidActionError.
func NewInvalidActionError(container, action, state string, valid []string) *InvalidActionError {
	validList := "none"
	if len(valid) > 0 {
		validList = strings.Join(valid, ", ")
	}
	return &InvalidActionError{
		baseError: baseError{
			message: fmt.Sprintf("cannot %s container %q in state %q; valid actions: %s",
				action, container, state, validList),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		Container:    container,
		Action:       action,
		State:        state,
		ValidActions: valid,
	}
}

// CycleError indicates a circular dependency discovered during graph
// traversal. Node names the service at which the cycle was detected.
type CycleError struct {
	baseError
	Node string
}

// NewCycleError creates a new CycleError for the given node.
func NewCycleError(node string) *CycleError {
	return &CycleError{
		baseError: baseError{
			message:    fmt.Sprintf("circular dependency detected at service %q", node),
			cause:      ErrDependencyCycle,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
		Node: node,
	}
}

// HealthTimeoutError indicates that a service did not report healthy within
// the configured bound. It aborts the surrounding dependency chain.
type HealthTimeoutError struct {
	baseError
	Service string
	Elapsed time.Duration
}

// NewHealthTimeoutError creates a new HealthTimeoutError.
func NewHealthTimeoutError(service string, elapsed time.Duration) *HealthTimeoutError {
	return &HealthTimeoutError{
		baseError: baseError{
			message: fmt.Sprintf("service %q did not become healthy within %s",
				service, elapsed.Round(time.Second)),
			cause:      ErrHealthTimeout,
			severity:   SeverityError,
			retryable:  true,
			userFacing: true,
		},
		Service: service,
		Elapsed: elapsed,
	}
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error is transient and the operation may
// succeed on retry. Errors that do not implement DockronosError are treated
// as non-retryable.
func IsRetryable(err error) bool {
	var de DockronosError
	if errors.As(err, &de) {
		return de.IsRetryable()
	}
	return false
}

// IsUserFacing returns true if the error message is safe to display to end
// users without leaking internal detail.
func IsUserFacing(err error) bool {
	var de DockronosError
	if errors.As(err, &de) {
		return de.IsUserFacing()
	}
	return false
}

// SeverityOf returns the severity of the error, defaulting to SeverityError
// for errors that carry no classification.
func SeverityOf(err error) Severity {
	var de DockronosError
	if errors.As(err, &de) {
		return de.Severity()
	}
	return SeverityError
}

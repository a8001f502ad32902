package errors

import (
	"strings"
	"testing"
	"time"
)

func TestCommandError_Message(t *testing.T) {
	err := NewCommandError("docker", "compose up -d web", "no such service: web\n", 1)

	msg := err.Error()
	if !strings.Contains(msg, "docker") {
		t.Errorf("message should name the engine, got %q", msg)
	}
	if !strings.Contains(msg, "compose up -d web") {
		t.Errorf("message should include the command, got %q", msg)
	}
	if !strings.Contains(msg, "no such service: web") {
		t.Errorf("message should include captured stderr, got %q", msg)
	}
	if !err.IsRetryable() {
		t.Error("command errors should be retryable")
	}
}

func TestActionError_WrapsCause(t *testing.T) {
	cause := NewCommandError("podman", "stop db", "timeout", 125)
	err := NewActionError("db", "stop", cause)

	var cmdErr *CommandError
	if !As(err, &cmdErr) {
		t.Fatal("ActionError should unwrap to the underlying CommandError")
	}
	if cmdErr.ExitCode != 125 {
		t.Errorf("expected exit code 125, got %d", cmdErr.ExitCode)
	}
	if !strings.Contains(err.Error(), "db") {
		t.Errorf("message should name the container, got %q", err.Error())
	}
	if !err.IsRetryable() {
		t.Error("retryability should propagate from the wrapped cause")
	}
}

func TestInvalidActionError_ListsValidActions(t *testing.T) {
	err := NewInvalidActionError("web", "stop", "stopped", []string{"start", "remove"})

	msg := err.Error()
	if !strings.Contains(msg, "start, remove") {
		t.Errorf("message should enumerate valid actions, got %q", msg)
	}
	if err.IsRetryable() {
		t.Error("validation failures should not be retryable")
	}
	if !err.IsUserFacing() {
		t.Error("validation failures should be user facing")
	}
}

func TestInvalidActionError_NoValidActions(t *testing.T) {
	err := NewInvalidActionError("web", "pause", "removed", nil)

	if !strings.Contains(err.Error(), "none") {
		t.Errorf("message should state that no actions are valid, got %q", err.Error())
	}
}

func TestCycleError_MatchesSentinel(t *testing.T) {
	err := NewCycleError("api")

	if !Is(err, ErrDependencyCycle) {
		t.Error("CycleError should match ErrDependencyCycle")
	}
	if !strings.Contains(err.Error(), "api") {
		t.Errorf("message should name the cycle node, got %q", err.Error())
	}
}

func TestHealthTimeoutError(t *testing.T) {
	err := NewHealthTimeoutError("db", 30*time.Second)

	if !Is(err, ErrHealthTimeout) {
		t.Error("HealthTimeoutError should match ErrHealthTimeout")
	}
	if !strings.Contains(err.Error(), "30s") {
		t.Errorf("message should report the elapsed bound, got %q", err.Error())
	}
	if err.Service != "db" {
		t.Errorf("expected service db, got %q", err.Service)
	}
}

func TestClassificationHelpers_PlainError(t *testing.T) {
	plain := New("boom")

	if IsRetryable(plain) {
		t.Error("plain errors should not be retryable")
	}
	if IsUserFacing(plain) {
		t.Error("plain errors should not be user facing")
	}
	if SeverityOf(plain) != SeverityError {
		t.Error("plain errors should default to SeverityError")
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

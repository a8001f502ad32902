package observer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/depgraph"
	"github.com/AthenaLink/dockronos/internal/event"
)

func TestConsole_RendersActionEvents(t *testing.T) {
	hub := event.NewHub()
	var buf bytes.Buffer
	console := NewConsole(&buf)
	console.Attach(hub)

	hub.Emit(event.TypeContainerAction, event.ActionPayload{
		Container: "web",
		Action:    "start",
		Duration:  120 * time.Millisecond,
	}, event.PriorityNormal)
	hub.Emit(event.TypeContainerAction, event.ActionPayload{
		Container: "db",
		Action:    "stop",
		Err:       "exit status 1",
	}, event.PriorityNormal)
	hub.Close()

	out := buf.String()
	if !strings.Contains(out, "start web") {
		t.Errorf("output should describe the successful action, got %q", out)
	}
	if !strings.Contains(out, "stop db") || !strings.Contains(out, "exit status 1") {
		t.Errorf("output should describe the failed action, got %q", out)
	}
}

func TestConsole_RendersWarningWithDependents(t *testing.T) {
	hub := event.NewHub()
	var buf bytes.Buffer
	console := NewConsole(&buf)
	console.Attach(hub)

	hub.Emit(event.TypeContainerWarning, event.WarningPayload{
		Container:  "db",
		Message:    "stopping a container with dependents",
		Dependents: []string{"api", "web"},
	}, event.PriorityHigh)
	hub.Close()

	out := buf.String()
	if !strings.Contains(out, "api") || !strings.Contains(out, "web") {
		t.Errorf("warning should list dependents, got %q", out)
	}
}

func TestConsole_IgnoresMetricsEvents(t *testing.T) {
	hub := event.NewHub()
	var buf bytes.Buffer
	console := NewConsole(&buf)
	console.Attach(hub)

	hub.Emit(event.TypeMetricsUpdated, []container.StatsRow{{Name: "web"}}, event.PriorityNormal)
	hub.Close()

	if buf.Len() != 0 {
		t.Errorf("metrics events should not be rendered, got %q", buf.String())
	}
}

func TestConsole_Detach(t *testing.T) {
	hub := event.NewHub()
	defer hub.Close()

	var buf bytes.Buffer
	console := NewConsole(&buf)
	console.Attach(hub)
	if hub.SubscriptionCount() != 1 {
		t.Fatalf("expected 1 subscription, got %d", hub.SubscriptionCount())
	}

	console.Detach()
	if hub.SubscriptionCount() != 0 {
		t.Errorf("expected 0 subscriptions after detach, got %d", hub.SubscriptionCount())
	}
}

func TestRenderContainerTable(t *testing.T) {
	records := []container.Record{
		{Name: "web", Image: "nginx:latest", Status: container.StatusRunning, Ports: []string{"80:8080"}, Created: "2024-01-01", Health: container.HealthHealthy},
		{Name: "db", Image: "postgres:16", Status: container.StatusStopped},
	}

	out := RenderContainerTable(records)
	for _, want := range []string{"NAME", "web", "nginx:latest", "80:8080", "(healthy)", "db", "stopped"} {
		if !strings.Contains(out, want) {
			t.Errorf("table should contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderStatsTable(t *testing.T) {
	rows := []container.StatsRow{
		{Name: "web", CPU: "1.5%", Memory: "120MiB / 1GiB", NetIO: "1kB / 2kB", BlockIO: "0B / 0B"},
	}

	out := RenderStatsTable(rows)
	for _, want := range []string{"CPU", "web", "1.5%", "120MiB"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats table should contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderHealthReport(t *testing.T) {
	out := RenderHealthReport("db", depgraph.HealthReport{
		Status:  depgraph.HealthUnhealthy,
		Message: "health probe reported unhealthy",
	})

	if !strings.Contains(out, "db") || !strings.Contains(out, "unhealthy") {
		t.Errorf("report should name the service and status, got %q", out)
	}
}

func TestMetrics_CountsAndFailures(t *testing.T) {
	hub := event.NewHub()
	metrics := NewMetrics()
	metrics.Attach(hub)

	hub.Emit(event.TypeContainerAction, event.ActionPayload{Container: "web", Action: "start"}, event.PriorityNormal)
	hub.Emit(event.TypeContainerAction, event.ActionPayload{Container: "db", Action: "stop", Err: "boom"}, event.PriorityNormal)
	hub.Emit(event.TypeContainerStarted, event.ActionPayload{Container: "web"}, event.PriorityNormal)
	hub.Close()

	snap := metrics.Snapshot()
	if snap.EventCounts[event.TypeContainerAction] != 2 {
		t.Errorf("expected 2 action events, got %d", snap.EventCounts[event.TypeContainerAction])
	}
	if snap.EventCounts[event.TypeContainerStarted] != 1 {
		t.Errorf("expected 1 started event, got %d", snap.EventCounts[event.TypeContainerStarted])
	}
	if snap.FailedActions != 1 {
		t.Errorf("expected 1 failed action, got %d", snap.FailedActions)
	}
}

func TestMetrics_CapturesLatestStats(t *testing.T) {
	hub := event.NewHub()
	metrics := NewMetrics()
	metrics.Attach(hub)

	hub.Emit(event.TypeMetricsUpdated, []container.StatsRow{{Name: "old"}}, event.PriorityNormal)
	hub.Emit(event.TypeMetricsUpdated, []container.StatsRow{{Name: "web", CPU: "2%"}}, event.PriorityNormal)
	hub.Close()

	snap := metrics.Snapshot()
	if len(snap.Stats) != 1 || snap.Stats[0].Name != "web" {
		t.Errorf("snapshot should hold the latest stats rows, got %+v", snap.Stats)
	}
	if snap.StatsAt.IsZero() {
		t.Error("snapshot should record the stats timestamp")
	}
}

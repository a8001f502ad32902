package observer

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/depgraph"
	"github.com/AthenaLink/dockronos/internal/event"
	"github.com/AthenaLink/dockronos/internal/util"
)

// Console renders hub events as styled one-line messages for interactive
// use. Attach subscribes it to every event type; Detach removes it again.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	hub   *event.Hub
	subID string
}

// NewConsole creates a console observer writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Attach subscribes the console to all events on the hub.
func (c *Console) Attach(hub *event.Hub) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hub != nil {
		return
	}
	c.hub = hub
	c.subID = hub.SubscribeAll(c.handle)
}

// Detach removes the console's hub subscription.
func (c *Console) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hub == nil {
		return
	}
	c.hub.Unsubscribe(c.subID)
	c.hub = nil
	c.subID = ""
}

func (c *Console) handle(ev event.Event) {
	line := c.render(ev)
	if line == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}

// render formats one event, or returns "" for types the console ignores.
func (c *Console) render(ev event.Event) string {
	switch ev.Type {
	case event.TypeContainerAction:
		payload, ok := ev.Payload.(event.ActionPayload)
		if !ok {
			return ""
		}
		if payload.Err != "" {
			return errorStyle.Render(fmt.Sprintf("✗ %s %s: %s", payload.Action, payload.Container, payload.Err))
		}
		return successStyle.Render(fmt.Sprintf("✓ %s %s (%s)", payload.Action, payload.Container, payload.Duration.Round(time.Millisecond)))

	case event.TypeContainerWarning:
		payload, ok := ev.Payload.(event.WarningPayload)
		if !ok {
			return ""
		}
		msg := fmt.Sprintf("! %s: %s", payload.Container, payload.Message)
		if len(payload.Dependents) > 0 {
			msg += " (dependents: " + strings.Join(payload.Dependents, ", ") + ")"
		}
		return warningStyle.Render(msg)

	case event.TypeServiceHealth:
		payload, ok := ev.Payload.(event.HealthPayload)
		if !ok {
			return ""
		}
		style := successStyle
		if payload.Status != "healthy" {
			style = warningStyle
		}
		return style.Render(fmt.Sprintf("health %s: %s (%s)", payload.Service, payload.Status, payload.Message))

	case event.TypeChainCompleted:
		payload, ok := ev.Payload.(event.ChainPayload)
		if !ok {
			return ""
		}
		if payload.FailedNode != "" {
			return urgentStyle.Render(fmt.Sprintf("chain %s aborted at %s (%d started)", payload.Root, payload.FailedNode, payload.Started))
		}
		return successStyle.Render(fmt.Sprintf("chain %s complete (%d started)", payload.Root, payload.Started))

	case event.TypeEngineDetected:
		payload, ok := ev.Payload.(event.EnginePayload)
		if !ok {
			return ""
		}
		if payload.Offline {
			return warningStyle.Render("no container runtime found, running offline")
		}
		return infoStyle.Render("using " + payload.Name)

	default:
		// container.started/stopped duplicate container.action and
		// metrics.updated belongs to the metrics observer.
		return ""
	}
}

// RenderContainerTable formats container records as an aligned, styled
// table for the list command.
func RenderContainerTable(records []container.Record) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-20s %-22s %-30s %-20s %s",
		"NAME", "STATUS", "IMAGE", "PORTS", "CREATED")))
	sb.WriteString("\n")

	for _, r := range records {
		status := r.Status.String()
		if r.Health == container.HealthHealthy {
			status += " (healthy)"
		} else if r.Health == container.HealthUnhealthy {
			status += " (unhealthy)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %s %-30s %-20s %s\n",
			util.Truncate(r.Name, 20),
			util.PadANSI(statusStyle(r.Status).Render(util.Truncate(status, 22)), 22),
			util.Truncate(r.Image, 30),
			util.Truncate(strings.Join(r.Ports, ","), 20),
			r.Created))
	}
	return sb.String()
}

// RenderStatsTable formats resource usage rows as an aligned table.
func RenderStatsTable(rows []container.StatsRow) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-20s %-8s %-24s %-20s %s",
		"NAME", "CPU", "MEMORY", "NET I/O", "BLOCK I/O")))
	sb.WriteString("\n")

	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-20s %-8s %-24s %-20s %s\n",
			util.Truncate(row.Name, 20), row.CPU, row.Memory, row.NetIO, row.BlockIO))
	}
	return sb.String()
}

// RenderHealthReport formats an on-demand health check result.
func RenderHealthReport(service string, report depgraph.HealthReport) string {
	style := mutedStyle
	switch report.Status {
	case depgraph.HealthHealthy:
		style = successStyle
	case depgraph.HealthUnhealthy:
		style = errorStyle
	case depgraph.HealthError:
		style = errorStyle
	case depgraph.HealthNotFound:
		style = warningStyle
	}
	return fmt.Sprintf("%s: %s", service, style.Render(fmt.Sprintf("%s - %s", report.Status, report.Message)))
}

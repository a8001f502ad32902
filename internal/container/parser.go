package container

import "strings"

// listColumns is the fixed column count of engine listing output:
// id, name, image, status text, ports, created at.
const listColumns = 6

// statsColumns is the fixed column count of engine stats output:
// name, cpu, memory, network io, block io.
const statsColumns = 5

// ParseListOutput converts raw tab-separated listing output into records.
// Malformed lines are skipped rather than failing the whole listing; a
// partial result is preferred to no result.
func ParseListOutput(output string) []Record {
	var records []Record
	for _, line := range strings.Split(output, "\n") {
		if record, ok := ParseLine(line); ok {
			records = append(records, record)
		}
	}
	return records
}

// ParseLine converts one tab-separated listing line into a Record.
// It returns false for blank or malformed lines (wrong column count).
func ParseLine(line string) (Record, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return Record{}, false
	}

	fields := strings.Split(line, "\t")
	if len(fields) != listColumns {
		return Record{}, false
	}

	statusText := strings.TrimSpace(fields[3])
	return Record{
		ID:      strings.TrimSpace(fields[0]),
		Name:    strings.TrimSpace(fields[1]),
		Image:   strings.TrimSpace(fields[2]),
		Status:  normalizeStatus(statusText),
		Ports:   parsePorts(fields[4]),
		Created: strings.TrimSpace(fields[5]),
		Health:  parseHealth(statusText),
	}, true
}

// normalizeStatus maps raw runtime status text onto the Status enum by
// ordered substring matching. Unrecognized text defaults to stopped.
func normalizeStatus(text string) Status {
	text = strings.ToLower(text)
	switch {
	case strings.Contains(text, "up"):
		return StatusRunning
	case strings.Contains(text, "exit"):
		return StatusStopped
	case strings.Contains(text, "paused"):
		return StatusPaused
	case strings.Contains(text, "restarting"):
		return StatusRestarting
	case strings.Contains(text, "dead"):
		return StatusDead
	default:
		return StatusStopped
	}
}

// parseHealth extracts the health probe state embedded in status text,
// e.g. "Up 5 minutes (healthy)".
func parseHealth(text string) Health {
	text = strings.ToLower(text)
	switch {
	case strings.Contains(text, "(healthy"):
		return HealthHealthy
	case strings.Contains(text, "unhealthy"):
		return HealthUnhealthy
	default:
		return HealthUnknown
	}
}

// parsePorts splits a comma-separated port mapping field. An empty or "-"
// field yields no mappings.
func parsePorts(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" || field == "-" {
		return nil
	}

	var ports []string
	for _, part := range strings.Split(field, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ports = append(ports, part)
		}
	}
	return ports
}

// ParseStatsOutput converts raw tab-separated stats output into typed rows.
// Malformed lines are skipped.
func ParseStatsOutput(output string) []StatsRow {
	var rows []StatsRow
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != statsColumns {
			continue
		}
		rows = append(rows, StatsRow{
			Name:    strings.TrimSpace(fields[0]),
			CPU:     strings.TrimSpace(fields[1]),
			Memory:  strings.TrimSpace(fields[2]),
			NetIO:   strings.TrimSpace(fields[3]),
			BlockIO: strings.TrimSpace(fields[4]),
		})
	}
	return rows
}

package container

import (
	"reflect"
	"testing"
)

func TestParseLine_RunningContainer(t *testing.T) {
	line := "id1\tweb\tnginx:latest\tUp 5 minutes\t80:8080\t2024-01-01"

	record, ok := ParseLine(line)
	if !ok {
		t.Fatal("line should parse")
	}

	if record.ID != "id1" {
		t.Errorf("expected id 'id1', got %q", record.ID)
	}
	if record.Name != "web" {
		t.Errorf("expected name 'web', got %q", record.Name)
	}
	if record.Image != "nginx:latest" {
		t.Errorf("expected image 'nginx:latest', got %q", record.Image)
	}
	if record.Status != StatusRunning {
		t.Errorf("expected status running, got %s", record.Status)
	}
	if !reflect.DeepEqual(record.Ports, []string{"80:8080"}) {
		t.Errorf("expected ports [80:8080], got %v", record.Ports)
	}
	if record.Created != "2024-01-01" {
		t.Errorf("expected created '2024-01-01', got %q", record.Created)
	}
}

func TestParseLine_StatusNormalization(t *testing.T) {
	tests := []struct {
		statusText string
		want       Status
	}{
		{"Up 5 minutes", StatusRunning},
		{"Up About an hour", StatusRunning},
		{"Exited (0) 2 hours ago", StatusStopped},
		{"Exit 137", StatusStopped},
		{"Paused", StatusPaused},
		{"Restarting (1) 5 seconds ago", StatusRestarting},
		{"Dead", StatusDead},
		{"Created", StatusStopped},
		{"something unexpected", StatusStopped},
		{"", StatusStopped},
	}

	for _, tt := range tests {
		line := "id\tname\timage\t" + tt.statusText + "\t-\t2024-01-01"
		record, ok := ParseLine(line)
		if !ok {
			t.Fatalf("line with status %q should parse", tt.statusText)
		}
		if record.Status != tt.want {
			t.Errorf("status %q normalized to %s, want %s", tt.statusText, record.Status, tt.want)
		}
	}
}

func TestParseLine_HealthExtraction(t *testing.T) {
	tests := []struct {
		statusText string
		want       Health
	}{
		{"Up 5 minutes (healthy)", HealthHealthy},
		{"Up 2 minutes (unhealthy)", HealthUnhealthy},
		{"Up 5 minutes", HealthUnknown},
		{"Exited (0) 1 hour ago", HealthUnknown},
	}

	for _, tt := range tests {
		line := "id\tname\timage\t" + tt.statusText + "\t-\t2024-01-01"
		record, ok := ParseLine(line)
		if !ok {
			t.Fatalf("line with status %q should parse", tt.statusText)
		}
		if record.Health != tt.want {
			t.Errorf("status %q yielded health %s, want %s", tt.statusText, record.Health, tt.want)
		}
	}
}

func TestParseLine_Ports(t *testing.T) {
	tests := []struct {
		field string
		want  []string
	}{
		{"80:8080", []string{"80:8080"}},
		{"80:8080, 443:8443", []string{"80:8080", "443:8443"}},
		{"-", nil},
		{"", nil},
		{" , ", nil},
	}

	for _, tt := range tests {
		line := "id\tname\timage\tUp 1 minute\t" + tt.field + "\t2024-01-01"
		record, ok := ParseLine(line)
		if !ok {
			t.Fatalf("line with ports %q should parse", tt.field)
		}
		if !reflect.DeepEqual(record.Ports, tt.want) {
			t.Errorf("ports field %q parsed to %v, want %v", tt.field, record.Ports, tt.want)
		}
	}
}

func TestParseLine_MalformedLines(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"id\tname",
		"id\tname\timage\tUp 1 minute\t80:8080",
		"id\tname\timage\tUp 1 minute\t80:8080\t2024-01-01\textra",
	}

	for _, line := range tests {
		if _, ok := ParseLine(line); ok {
			t.Errorf("malformed line %q should be skipped", line)
		}
	}
}

func TestParseListOutput_SkipsMalformed(t *testing.T) {
	output := "id1\tweb\tnginx:latest\tUp 5 minutes\t80:8080\t2024-01-01\n" +
		"garbage line\n" +
		"id2\tdb\tpostgres:16\tExited (0) 1 hour ago\t-\t2024-01-02\n" +
		"\n"

	records := ParseListOutput(output)
	if len(records) != 2 {
		t.Fatalf("expected 2 records from partial output, got %d", len(records))
	}
	if records[0].Name != "web" || records[1].Name != "db" {
		t.Errorf("unexpected record names: %q, %q", records[0].Name, records[1].Name)
	}
	if records[1].Status != StatusStopped {
		t.Errorf("expected db stopped, got %s", records[1].Status)
	}
}

func TestRecord_HostPorts(t *testing.T) {
	record := Record{Ports: []string{"80:8080", "443:8443", "9090"}}

	got := record.HostPorts()
	want := []string{"80", "443"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("HostPorts() = %v, want %v", got, want)
	}
}

func TestParseStatsOutput(t *testing.T) {
	output := "web\t0.15%\t12MiB / 1GiB\t1.2kB / 800B\t0B / 0B\n" +
		"short\trow\n" +
		"db\t2.40%\t200MiB / 1GiB\t5kB / 3kB\t1MB / 0B\n"

	rows := ParseStatsOutput(output)
	if len(rows) != 2 {
		t.Fatalf("expected 2 stats rows, got %d", len(rows))
	}
	if rows[0].Name != "web" || rows[0].CPU != "0.15%" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Memory != "200MiB / 1GiB" {
		t.Errorf("unexpected memory for db: %q", rows[1].Memory)
	}
}

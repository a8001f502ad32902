package ports

import (
	"testing"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/errors"
)

func TestRegistry_ClaimAndRelease(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Claim("web", "80"); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}

	// Idempotent re-claim by the same owner
	if err := reg.Claim("web", "80"); err != nil {
		t.Errorf("re-claim by owner should be a no-op, got %v", err)
	}

	// Conflicting claim by another container
	err := reg.Claim("proxy", "80")
	if !errors.Is(err, errors.ErrPortConflict) {
		t.Fatalf("expected ErrPortConflict, got %v", err)
	}

	reg.Release("web", "80")
	if err := reg.Claim("proxy", "80"); err != nil {
		t.Errorf("claim after release failed: %v", err)
	}
}

func TestRegistry_ReleaseIgnoresNonOwner(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Claim("web", "80"); err != nil {
		t.Fatal(err)
	}

	reg.Release("proxy", "80")

	if owner, ok := reg.Owner("80"); !ok || owner != "web" {
		t.Errorf("non-owner release must not drop the claim, owner = %q", owner)
	}
}

func TestRegistry_ReleaseAll(t *testing.T) {
	reg := NewRegistry()
	for _, port := range []string{"80", "443"} {
		if err := reg.Claim("web", port); err != nil {
			t.Fatal(err)
		}
	}
	if err := reg.Claim("db", "5432"); err != nil {
		t.Fatal(err)
	}

	reg.ReleaseAll("web")

	if !reg.Available("80") || !reg.Available("443") {
		t.Error("all of web's ports should be released")
	}
	if reg.Available("5432") {
		t.Error("other containers' claims must survive ReleaseAll")
	}
}

func TestRegistry_Rebuild(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Claim("stale", "9999"); err != nil {
		t.Fatal(err)
	}

	reg.Rebuild([]container.Record{
		{Name: "web", Status: container.StatusRunning, Ports: []string{"80:8080", "443:8443"}},
		{Name: "db", Status: container.StatusRunning, Ports: []string{"5432:5432"}},
		{Name: "worker", Status: container.StatusRunning, Ports: []string{"internal"}},
	})

	if !reg.Available("9999") {
		t.Error("rebuild should drop stale claims")
	}
	if owner, _ := reg.Owner("80"); owner != "web" {
		t.Errorf("port 80 owner = %q, want web", owner)
	}
	if got := reg.ContainerPorts("web"); len(got) != 2 || got[0] != "443" || got[1] != "80" {
		// sorted lexically: "443" < "80"
		t.Errorf("web ports = %v", got)
	}
	if len(reg.ContainerPorts("worker")) != 0 {
		t.Error("mappings without a host side claim nothing")
	}
}

func TestRegistry_Check(t *testing.T) {
	reg := NewRegistry()
	reg.Rebuild([]container.Record{
		{Name: "proxy", Status: container.StatusRunning, Ports: []string{"80:9090"}},
	})

	err := reg.Check(container.Record{Name: "web", Ports: []string{"80:8080"}})
	if !errors.Is(err, errors.ErrPortConflict) {
		t.Fatalf("expected ErrPortConflict, got %v", err)
	}

	// A container's own claims never conflict with itself
	if err := reg.Check(container.Record{Name: "proxy", Ports: []string{"80:9090"}}); err != nil {
		t.Errorf("self-check should pass, got %v", err)
	}

	if err := reg.Check(container.Record{Name: "web", Ports: []string{"8081:8080"}}); err != nil {
		t.Errorf("free port should pass, got %v", err)
	}
}

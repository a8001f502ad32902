package internal

import (
	"os"
	"os/exec"
	"testing"
)

// TestLintCompliance runs golangci-lint over the module when the binary is
// available. Fix failures with: golangci-lint run
func TestLintCompliance(t *testing.T) {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		t.Skip("golangci-lint not installed")
	}

	cmd := exec.Command("golangci-lint", "run", "--allow-parallel-runners", "./...")
	cmd.Dir = repoRoot(t)
	// A private build cache keeps the run working on read-only runners.
	cmd.Env = append(os.Environ(), "GOCACHE="+t.TempDir())

	if output, err := cmd.CombinedOutput(); err != nil {
		t.Errorf("golangci-lint reported issues:\n%s", output)
	}
}

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%s %v failed: %v\n%s", cmd.Name(), args, err, out.String())
	}
	return out.String()
}

func TestScheduleCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "cli.db"))
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PORT", "8080")

	id := strings.TrimSpace(run(t, ScheduleCmd, "add", "--class", "Math", "--day", "Monday", "--start", "09:00", "--end", "10:00"))
	if id == "" {
		t.Fatal("Expected an id from schedule add")
	}

	yamlPath := filepath.Join(dir, "week.yaml")
	content := "schedule:\n  - {className: Physics, day: Monday, startTime: \"10:30\", endTime: \"11:30\"}\n"
	if err := os.WriteFile(yamlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if out := run(t, ScheduleCmd, "import", yamlPath); !strings.Contains(out, "Imported 1 entries") {
		t.Errorf("Unexpected import output %q", out)
	}

	out := run(t, ScheduleCmd, "list", "--day", "monday")
	mathAt := strings.Index(out, "Math")
	physicsAt := strings.Index(out, "Physics")
	if mathAt < 0 || physicsAt < 0 || mathAt > physicsAt {
		t.Errorf("Expected Math before Physics, got:\n%s", out)
	}

	run(t, ScheduleCmd, "delete", id)
	if out := run(t, ScheduleCmd, "list", "--day", "Monday"); strings.Contains(out, "Math") {
		t.Errorf("Expected Math to be deleted, got:\n%s", out)
	}
}

func TestMetricsCommands(t *testing.T) {
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("PORT", "8080")

	if out := run(t, MetricsCmd, "usage", "--days", "3"); !strings.Contains(out, "DATE") {
		t.Errorf("Expected a usage table header, got %q", out)
	}
	if out := run(t, MetricsCmd, "cleanup", "--days", "1"); !strings.Contains(out, "Removed 0 records") {
		t.Errorf("Unexpected cleanup output %q", out)
	}
}

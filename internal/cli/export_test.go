package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExport_ToFile(t *testing.T) {
	testEnv(t)
	testDB(t)
	path := filepath.Join(t.TempDir(), "primary.css")

	out := mustRun(t, "export", "#2D72D2", "-n", "primary", "-f", "css", "-o", path)
	if !strings.Contains(out, "Wrote "+path) {
		t.Errorf("expected confirmation, got:\n%s", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	css := string(data)
	if !strings.HasPrefix(css, ":root {") {
		t.Errorf("expected :root block, got:\n%s", css)
	}
	if strings.Count(css, "--primary-") != 10 {
		t.Errorf("expected 10 custom properties, got:\n%s", css)
	}
}

func TestExport_DefaultsToJSON(t *testing.T) {
	testEnv(t)
	testDB(t)

	out := mustRun(t, "export", "#2D72D2")
	if !strings.Contains(out, `"hex": "#2D72D2"`) {
		t.Errorf("expected JSON with the anchor, got:\n%s", out)
	}
}

func TestExport_RejectsSwatch(t *testing.T) {
	testEnv(t)
	testDB(t)

	if _, _, err := runCLI(t, "export", "#2D72D2", "-f", "swatch"); err == nil {
		t.Error("expected error for swatch format")
	}
}

package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestVersionCmd tests the version command output.
func TestVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "redfox version") {
		t.Errorf("output lacks version line: %q", out)
	}
	if !strings.Contains(out, "commit:") {
		t.Errorf("output lacks commit line: %q", out)
	}
	if !strings.Contains(out, "built:") {
		t.Errorf("output lacks build date line: %q", out)
	}
}

// TestGetVersion tests the version fallback chain.
func TestGetVersion(t *testing.T) {
	t.Parallel()

	if getVersion() == "" {
		t.Error("expected a non-empty version")
	}
	if getCommit() == "" {
		t.Error("expected a non-empty commit")
	}
	if getDate() == "" {
		t.Error("expected a non-empty date")
	}
}

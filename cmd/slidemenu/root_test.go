package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestDemoCommandPrintsFrames(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"demo", "present", "--data-dir", t.TempDir(), "--no-store"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("demo: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if !strings.HasPrefix(lines[0], "# present:") {
		t.Fatalf("expected header line, got %q", lines[0])
	}
	last := lines[len(lines)-1]
	if !strings.Contains(last, "progress=1.0000") || !strings.Contains(last, "state=presented") {
		t.Fatalf("expected the last frame to be fully presented, got %q", last)
	}
}

func TestDemoCommandRejectsUnknownScenario(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"demo", "cartwheel", "--data-dir", t.TempDir()})
	if err := rootCmd.Execute(); err == nil || !strings.Contains(err.Error(), "unknown demo") {
		t.Fatalf("expected unknown demo error, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "slidemenu version ") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slidemenu/internal/drawer"
	"slidemenu/internal/state"
)

func newTestApp(t *testing.T, mutate func(*Config)) *App {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.UI.MotionLevel = "off"
	if mutate != nil {
		mutate(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func TestNewLoadsBuiltinContent(t *testing.T) {
	a := newTestApp(t, nil)
	c := contentFor(a.doc)
	if len(c.Rows) != 20 || c.Rows[0] != "Row 0" {
		t.Fatalf("expected 20 default rows, got %v", c.Rows)
	}
	if len(c.Menu) == 0 {
		t.Fatalf("expected menu items")
	}
}

func TestNewRejectsMissingContent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.ContentPath = filepath.Join(cfg.DataDir, "missing.yaml")
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected missing content file to fail")
	}
}

func TestTransitionsAreJournaled(t *testing.T) {
	a := newTestApp(t, nil)
	a.view.Present()
	a.view.Dismiss()
	a.view.WithDrawer(func(c *drawer.Controller) {
		c.Present()
		c.ReceivedPassthroughTouch()
	})
	a.Close()

	store, err := state.NewSQLite(filepath.Join(a.cfg.DataDir, "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	summary, err := store.GetSummary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Sessions != 1 || summary.Transitions != 4 {
		t.Fatalf("expected 1 session and 4 transitions, got %+v", summary)
	}
	if summary.Commands != 3 || summary.BackdropTaps != 1 {
		t.Fatalf("unexpected source counts %+v", summary)
	}
}

func TestNoStoreSkipsJournal(t *testing.T) {
	a := newTestApp(t, func(c *Config) { c.Drawer.NoStore = true })
	a.view.Present()
	if got := a.statsMarkdown(context.Background()); !strings.Contains(got, "disabled") {
		t.Fatalf("expected disabled notice, got %q", got)
	}
	a.Close()
	if _, err := os.Stat(filepath.Join(a.cfg.DataDir, "journal.db")); !os.IsNotExist(err) {
		t.Fatalf("expected no journal file, got %v", err)
	}
}

func TestMenuItemShowsInfoAndDismisses(t *testing.T) {
	a := newTestApp(t, nil)
	a.view.Present()
	if !a.view.Drawer().IsPresented() {
		t.Fatalf("expected presented")
	}
	var infoID string
	for _, item := range a.doc.Menu {
		if item.Action == "stats" {
			infoID = item.ID
		}
	}
	if infoID == "" {
		t.Fatalf("expected a stats item in the default content")
	}
	a.OnMenuItem(infoID)
	if a.view.Drawer().IsPresented() {
		t.Fatalf("expected menu to dismiss after activation")
	}
	if got := a.view.Snapshot().State; got != "dismissed" {
		t.Fatalf("expected dismissed snapshot, got %q", got)
	}
}

func TestStatsMarkdownCountsCommands(t *testing.T) {
	a := newTestApp(t, nil)
	a.view.Toggle()
	a.view.Toggle()
	a.Close()

	// Reopen against the same directory to read what the first run wrote.
	b := newTestApp(t, func(c *Config) { c.DataDir = a.cfg.DataDir })
	md := b.statsMarkdown(context.Background())
	if !strings.Contains(md, "| sessions | 2 |") || !strings.Contains(md, "| commands | 2 |") {
		t.Fatalf("unexpected stats table:\n%s", md)
	}
	if !strings.Contains(md, "- toggle 1.00 -> 0") {
		t.Fatalf("expected the latest transition first:\n%s", md)
	}
	if !strings.Contains(md, "| ui.motion_level | off |") {
		t.Fatalf("expected the session settings in the stats pane:\n%s", md)
	}
}

func TestUnknownMenuItemLogsWarning(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "events.jsonl")
	a := newTestApp(t, func(c *Config) { c.LogPath = logPath })
	a.OnMenuItem("no-such-item")
	a.Close()

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, ln := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		if strings.Contains(ln, `"msg":"menu.unknown_item"`) {
			found = true
			if !strings.Contains(ln, `"level":"warn"`) || !strings.Contains(ln, `"id":"no-such-item"`) {
				t.Fatalf("unexpected log line %s", ln)
			}
		}
	}
	if !found {
		t.Fatalf("expected a menu.unknown_item line in:\n%s", b)
	}
}

package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"slidemenu/internal/content"
	"slidemenu/internal/devtools"
	"slidemenu/internal/drawer"
	"slidemenu/internal/state"
	"slidemenu/internal/telemetry"
	"slidemenu/internal/ui"

	"github.com/google/uuid"
)

const journalBuffer = 256

type App struct {
	cfg Config

	logger  *telemetry.JSONLogger
	metrics *telemetry.Metrics
	store   state.Store
	doc     content.Document
	demo    *devtools.Manager
	view    *ui.Root

	sessionID string

	events    chan drawer.TransitionEvent
	journalWG sync.WaitGroup
	closeOnce sync.Once
	sendMu    sync.RWMutex
	closed    bool

	devMu     sync.Mutex
	devServer *http.Server
	demoMu    sync.Mutex
	devState  struct {
		State     string
		Demo      string
		RenderSeq int
		Rendered  bool
		Error     string
	}
}

func New(cfg Config) (*App, error) {
	logger, err := telemetry.NewJSONLogger(cfg.LogPath)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	doc, err := loadContent(cfg.ContentPath)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	var store state.Store
	if !cfg.Drawer.NoStore {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			_ = logger.Close()
			return nil, err
		}
		sqlite, err := state.NewSQLite(filepath.Join(cfg.DataDir, "journal.db"))
		if err != nil {
			_ = logger.Close()
			return nil, err
		}
		if err := sqlite.EnsureSchema(context.Background()); err != nil {
			_ = sqlite.Close()
			_ = logger.Close()
			return nil, err
		}
		store = sqlite
	}

	view := ui.New(ui.Options{
		ASCIIOnly:        cfg.ASCIIOnly,
		Debug:            cfg.Debug,
		StyleVariant:     cfg.UI.StyleVariant,
		MotionLevel:      cfg.UI.MotionLevel,
		MouseScope:       cfg.UI.MouseScope,
		DecelerationRate: cfg.Drawer.DecelerationRate,
		EdgeMargin:       cfg.Drawer.EdgeMargin,
	})

	sessionID := uuid.NewString()
	a := &App{
		cfg:       cfg,
		logger:    logger.With(map[string]any{"session": sessionID}),
		metrics:   telemetry.NewMetrics(),
		store:     store,
		doc:       doc,
		demo:      devtools.NewManager(),
		view:      view,
		sessionID: sessionID,
		events:    make(chan drawer.TransitionEvent, journalBuffer),
	}
	if store != nil {
		err := store.StartSession(context.Background(), state.Session{
			ID:               sessionID,
			StartTS:          time.Now(),
			MotionLevel:      cfg.UI.MotionLevel,
			DecelerationRate: cfg.Drawer.DecelerationRate,
		})
		if err != nil {
			a.logger.Error("store.session_failed", map[string]any{"error": err.Error()})
		}
		err = store.SaveSettings(context.Background(), map[string]string{
			"ui.style_variant":         cfg.UI.StyleVariant,
			"ui.motion_level":          cfg.UI.MotionLevel,
			"ui.mouse_scope":           cfg.UI.MouseScope,
			"drawer.deceleration_rate": strconv.FormatFloat(cfg.Drawer.DecelerationRate, 'f', -1, 64),
		})
		if err != nil {
			a.logger.Error("store.settings_failed", map[string]any{"error": err.Error()})
		}
	}
	view.SetController(a)
	view.SetContent(contentFor(doc))
	view.OnTransition(a.onTransition)
	a.journalWG.Add(1)
	go a.runJournal()
	return a, nil
}

func loadContent(path string) (content.Document, error) {
	if path == "" {
		return content.Default()
	}
	doc, err := content.Load(path)
	if err != nil {
		return content.Document{}, fmt.Errorf("load content %s: %w", path, err)
	}
	return doc, nil
}

func contentFor(doc content.Document) ui.Content {
	c := ui.Content{Title: doc.Title, Rows: doc.RowLabels()}
	for _, item := range doc.Menu {
		c.Menu = append(c.Menu, ui.MenuItem{ID: item.ID, Label: item.Label})
	}
	return c
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app.start", map[string]any{
		"motion":            a.cfg.UI.MotionLevel,
		"mouse":             a.cfg.UI.MouseScope,
		"deceleration_rate": a.cfg.Drawer.DecelerationRate,
		"content":           firstNonEmpty(a.doc.Path, "builtin"),
	})
	if a.cfg.Dev {
		if err := a.startDevHTTP(); err != nil {
			return err
		}
		if a.cfg.DemoScenario != "" {
			if _, err := a.runDemoScenario(ctx, a.cfg.DemoScenario); err != nil {
				a.logger.Error("dev.demo.initial_failed", map[string]any{"demo": a.cfg.DemoScenario, "error": err.Error()})
			}
		} else {
			a.setDevState("dismissed", "")
			a.writeDevState(ctx, "", true)
		}
	}

	return a.view.Run()
}

func (a *App) Close() {
	a.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if a.devServer != nil {
			_ = a.devServer.Shutdown(ctx)
		}
		a.sendMu.Lock()
		a.closed = true
		close(a.events)
		a.sendMu.Unlock()
		a.journalWG.Wait()
		if a.store != nil {
			_ = a.store.Close()
		}
		a.logger.Info("app.stop", nil)
		_ = a.logger.Close()
	})
}

func (a *App) OnMenuItem(id string) {
	item, ok := a.doc.Item(id)
	if !ok {
		a.logger.Warn("menu.unknown_item", map[string]any{"id": id})
		return
	}
	a.logger.Info("menu.activate", map[string]any{"id": id, "action": string(item.Action)})
	switch item.Action {
	case content.ActionQuit:
		a.OnQuit()
		return
	case content.ActionStats:
		a.view.SetInfo(item.Label, a.statsMarkdown(context.Background()))
	case content.ActionAbout:
		a.view.SetInfo(item.Label, firstNonEmpty(a.doc.AboutMD, item.DescriptionMD))
	default:
		a.view.SetInfo(item.Label, item.DescriptionMD)
	}
	a.view.Dismiss()
}

func (a *App) OnQuit() {
	a.view.Stop()
}

func (a *App) OnResize(cols, rows int) {
	a.logger.Info("ui.resize", map[string]any{"cols": cols, "rows": rows})
}

func (a *App) statsMarkdown(ctx context.Context) string {
	if a.store == nil {
		return "The interaction journal is disabled for this run."
	}
	s, err := a.store.GetSummary(ctx)
	if err != nil {
		a.logger.Error("store.summary_failed", map[string]any{"error": err.Error()})
		return "Could not read the interaction journal."
	}
	var b strings.Builder
	b.WriteString("| metric | count |\n|---|---|\n")
	rows := []struct {
		label string
		n     int
	}{
		{"sessions", s.Sessions},
		{"transitions", s.Transitions},
		{"commands", s.Commands},
		{"gestures", s.Gestures},
		{"backdrop taps", s.BackdropTaps},
		{"opens", s.Opens},
		{"closes", s.Closes},
		{"interruptions", s.Interruptions},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %d |\n", r.label, r.n)
	}
	if recent, err := a.store.RecentTransitions(ctx, 5); err == nil && len(recent) > 0 {
		b.WriteString("\nRecent:\n\n")
		for _, tr := range recent {
			label := firstNonEmpty(tr.Command, tr.Source)
			fmt.Fprintf(&b, "- %s %.2f -> %.0f", label, tr.FromProgress, tr.Target)
			if tr.Interrupted {
				b.WriteString(" (interrupted)")
			}
			b.WriteString("\n")
		}
	}
	settings, err := a.store.LoadSettings(ctx)
	if err != nil {
		a.logger.Error("store.settings_failed", map[string]any{"error": err.Error()})
		return b.String()
	}
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteString("\n| setting | value |\n|---|---|\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "| %s | %s |\n", k, settings[k])
	}
	return b.String()
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"slidemenu/internal/devtools"
	"slidemenu/internal/drawer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (a *App) setDevState(state, demo string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState.State = state
	a.devState.Demo = demo
	a.devState.Rendered = true
	a.devState.Error = ""
	a.devState.RenderSeq++
}

func (a *App) setDevError(state, demo, errText string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState.State = state
	a.devState.Demo = demo
	a.devState.Rendered = false
	a.devState.Error = errText
	a.devState.RenderSeq++
}

func (a *App) getDevState() map[string]any {
	snap := a.view.Snapshot()
	a.devMu.Lock()
	defer a.devMu.Unlock()
	return map[string]any{
		"ok":         true,
		"state":      a.devState.State,
		"demo":       a.devState.Demo,
		"render_seq": a.devState.RenderSeq,
		"rendered":   a.devState.Rendered,
		"error":      a.devState.Error,
		"drawer": map[string]any{
			"state":          snap.State,
			"progress":       snap.Progress,
			"menu_x":         snap.MenuX,
			"menu_alpha":     snap.MenuAlpha,
			"backdrop_alpha": snap.BackdropAlpha,
			"generation":     snap.Generation,
		},
	}
}

func (a *App) writeDevState(ctx context.Context, demo string, rendered bool) {
	snap := a.view.Snapshot()
	err := a.demo.SetState(ctx, filepath.Join(a.cfg.DataDir, "dev"), devtools.DevState{
		Demo:     demo,
		State:    snap.State,
		Progress: snap.Progress,
		Rendered: rendered,
	})
	if err != nil {
		a.logger.Error("dev_state.write_failed", map[string]any{"demo": demo, "error": err.Error()})
	}
}

func (a *App) runDemoScenario(ctx context.Context, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if !a.demo.Known(requested) {
		err := fmt.Errorf("unknown demo %q (known: %s)", requested, strings.Join(a.demo.Names(), ", "))
		a.setDevError("", requested, err.Error())
		return "", err
	}
	resolved := a.demo.Resolve(requested).Name
	a.logger.Info("dev.demo.dispatch.begin", map[string]any{"requested": requested, "resolved": resolved})

	a.demoMu.Lock()
	defer a.demoMu.Unlock()

	a.view.WithDrawer(func(c *drawer.Controller) {
		a.demo.Apply(c, resolved)
	})
	a.view.RequestDraw()
	a.logger.Info("dev.demo.dispatch.done", map[string]any{"requested": requested, "resolved": resolved})
	a.setDevState(resolved, resolved)
	a.writeDevState(ctx, resolved, true)
	return resolved, nil
}

func (a *App) runCommand(name string) error {
	switch name {
	case "present":
		a.view.Present()
	case "dismiss":
		a.view.Dismiss()
	case "toggle":
		a.view.Toggle()
	default:
		return fmt.Errorf("unknown command %q", name)
	}
	return nil
}

func (a *App) devRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/__dev/ready", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.getDevState())
	})
	r.Post("/__dev/demo", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Demo string `json:"demo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "invalid json"})
			return
		}
		req.Demo = strings.TrimSpace(req.Demo)
		if req.Demo == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "demo is required"})
			return
		}
		a.logger.Info("dev.demo.request", map[string]any{"demo": req.Demo})

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()
		resolved, err := a.runDemoScenario(ctx, req.Demo)
		if err != nil {
			a.logger.Error("dev.demo.apply_failed", map[string]any{"demo": req.Demo, "error": err.Error()})
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "state": resolved, "requested": req.Demo})
	})
	r.Post("/__dev/command", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Command string `json:"command"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "invalid json"})
			return
		}
		req.Command = strings.TrimSpace(req.Command)
		a.logger.Info("dev.command.request", map[string]any{"command": req.Command})
		if err := a.runCommand(req.Command); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "command": req.Command})
	})
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	return r
}

func (a *App) startDevHTTP() error {
	a.devServer = &http.Server{
		Addr:              a.cfg.DevHTTP,
		Handler:           a.devRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	a.setDevState("dismissed", a.cfg.DemoScenario)
	go func() {
		if err := a.devServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("dev_http.listen_failed", map[string]any{"error": err.Error(), "addr": a.cfg.DevHTTP})
		}
	}()
	a.logger.Info("dev_http.listening", map[string]any{"addr": a.cfg.DevHTTP})
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

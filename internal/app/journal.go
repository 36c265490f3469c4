package app

import (
	"context"
	"time"

	"slidemenu/internal/drawer"
	"slidemenu/internal/state"
)

// onTransition runs on the UI goroutine. Metrics are updated inline; the
// journal write is handed to runJournal.
func (a *App) onTransition(ev drawer.TransitionEvent) {
	switch ev.Source {
	case drawer.SourceCommand:
		a.metrics.Command(ev.Command)
	case drawer.SourceGesture:
		a.metrics.GestureCommit(ev.Target, ev.Velocity)
	case drawer.SourceBackdrop:
		a.metrics.BackdropTap()
	}
	if ev.Interrupted {
		a.metrics.Interruption()
	}
	a.sendMu.RLock()
	defer a.sendMu.RUnlock()
	if a.closed {
		return
	}
	select {
	case a.events <- ev:
	default:
		a.logger.Warn("journal.dropped", map[string]any{"source": string(ev.Source), "target": ev.Target})
	}
}

func (a *App) runJournal() {
	defer a.journalWG.Done()
	for ev := range a.events {
		a.logger.Info("drawer.transition", map[string]any{
			"source":      string(ev.Source),
			"command":     ev.Command,
			"from":        ev.From,
			"target":      ev.Target,
			"velocity":    ev.Velocity,
			"interrupted": ev.Interrupted,
		})
		if a.store == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := a.store.RecordTransition(ctx, state.Transition{
			SessionID:    a.sessionID,
			TS:           time.Now(),
			Source:       string(ev.Source),
			Command:      ev.Command,
			FromProgress: ev.From,
			Target:       ev.Target,
			Velocity:     ev.Velocity,
			Interrupted:  ev.Interrupted,
		})
		cancel()
		if err != nil {
			a.logger.Error("store.write_failed", map[string]any{"error": err.Error()})
		}
	}
}

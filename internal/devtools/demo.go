package devtools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"slidemenu/internal/drawer"
	"slidemenu/internal/motion"
)

// maxSettleTicks bounds a settle step; the controller's own frame cap is lower.
const maxSettleTicks = 10_000

type Manager struct {
	byName map[string]Scenario
}

func NewManager() *Manager {
	m := &Manager{byName: make(map[string]Scenario, len(scenarios))}
	for _, s := range scenarios {
		m.byName[s.Name] = s
	}
	return m
}

// Resolve returns the named scenario, falling back to "present".
func (m *Manager) Resolve(name string) Scenario {
	if s, ok := m.byName[strings.TrimSpace(name)]; ok {
		return s
	}
	return m.byName["present"]
}

func (m *Manager) Known(name string) bool {
	_, ok := m.byName[strings.TrimSpace(name)]
	return ok
}

func (m *Manager) Names() []string {
	names := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	return names
}

// Run replays s against ctrl with a manual clock and returns every frame
// published along the way. The controller's renderer and scheduler are
// restored afterwards.
func (m *Manager) Run(ctrl *drawer.Controller, s Scenario) []drawer.Frame {
	var frames []drawer.Frame
	prevRenderer := ctrl.Renderer()
	prevScheduler := ctrl.Scheduler()
	defer func() {
		ctrl.SetRenderer(prevRenderer)
		ctrl.SetScheduler(prevScheduler)
	}()
	ctrl.SetRenderer(drawer.RendererFunc(func(f drawer.Frame) { frames = append(frames, f) }))
	sched := &manualScheduler{}
	ctrl.SetScheduler(sched)
	m.replay(ctrl, s, sched)
	return frames
}

// Apply replays the named scenario against a live controller. Tick steps run
// synchronously; an animation still in flight at the end is handed back to
// the host's scheduler.
func (m *Manager) Apply(ctrl *drawer.Controller, name string) Scenario {
	s := m.Resolve(name)
	host := ctrl.Scheduler()
	sched := &manualScheduler{}
	ctrl.SetScheduler(sched)
	live := make([]Step, 0, len(s.Steps))
	for _, step := range s.Steps {
		if step.Action != ActionSettle {
			live = append(live, step)
		}
	}
	m.replay(ctrl, Scenario{Name: s.Name, Steps: live}, sched)
	ctrl.SetScheduler(host)
	if ctrl.State() == drawer.StateAnimating {
		ctrl.SetProgress(ctrl.Target(), true)
	}
	return s
}

func (m *Manager) replay(ctrl *drawer.Controller, s Scenario, sched *manualScheduler) {
	for _, step := range s.Steps {
		switch step.Action {
		case ActionPresent:
			ctrl.Present()
		case ActionDismiss:
			ctrl.Dismiss()
		case ActionToggle:
			ctrl.Toggle()
		case ActionBackdrop:
			ctrl.ReceivedPassthroughTouch()
		case ActionSnap:
			ctrl.SetProgress(step.Value, false)
		case ActionPan:
			w := drawer.MenuWidth(ctrl.Size())
			ctrl.HandleGesture(drawer.GestureSample{
				Phase:       step.Phase,
				Translation: motion.Vec2{X: step.DX * w},
				Velocity:    motion.Vec2{X: step.VX * w},
			})
		case ActionTick:
			sched.drain(ctrl, int(step.Value))
		case ActionSettle:
			sched.drain(ctrl, maxSettleTicks)
		}
	}
}

type manualScheduler struct {
	pending []uint64
}

func (s *manualScheduler) ScheduleTick(gen uint64) {
	s.pending = append(s.pending, gen)
}

func (s *manualScheduler) drain(ctrl *drawer.Controller, n int) {
	for i := 0; i < n && len(s.pending) > 0; i++ {
		gen := s.pending[0]
		s.pending = s.pending[1:]
		ctrl.Tick(gen)
	}
}

// FormatFrame renders one frame as a single log line.
func FormatFrame(i int, f drawer.Frame) string {
	return fmt.Sprintf("%04d progress=%.4f state=%s menu_x=%.2f menu_alpha=%.3f backdrop_alpha=%.3f gen=%d",
		i, f.Progress, f.State, f.MenuFrame.X, f.MenuAlpha, f.BackdropAlpha, f.Generation)
}

func (m *Manager) SetState(ctx context.Context, dir string, state DevState) error {
	_ = ctx
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".cache", "slidemenu")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "dev_state.json"), b, 0o644)
}

var _ Demo = (*Manager)(nil)

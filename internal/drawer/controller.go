package drawer

import "slidemenu/internal/motion"

type State int

const (
	StateDismissed State = iota
	StatePresented
	StateAnimating
	StateDragging
	// StatePartial is at rest strictly between the edges, reached only by an
	// unanimated SetProgress.
	StatePartial
)

func (s State) String() string {
	switch s {
	case StateDismissed:
		return "dismissed"
	case StatePresented:
		return "presented"
	case StateAnimating:
		return "animating"
	case StateDragging:
		return "dragging"
	case StatePartial:
		return "partial"
	default:
		return "unknown"
	}
}

// Source names what asked for a transition.
type Source string

const (
	SourceCommand  Source = "command"
	SourceGesture  Source = "gesture"
	SourceBackdrop Source = "backdrop"
)

// Frame is one atomic visual update.
type Frame struct {
	Visuals
	State      State
	Animated   bool
	Generation uint64
}

type Renderer interface {
	Render(Frame)
}

type RendererFunc func(Frame)

func (f RendererFunc) Render(frame Frame) { f(frame) }

// Scheduler is asked for one more animation tick. The host answers by
// calling Controller.Tick with the same generation on its event loop.
type Scheduler interface {
	ScheduleTick(gen uint64)
}

type SchedulerFunc func(gen uint64)

func (f SchedulerFunc) ScheduleTick(gen uint64) { f(gen) }

// TransitionEvent describes a committed move toward Target.
type TransitionEvent struct {
	Source      Source
	Command     string
	From        float64
	Target      float64
	Velocity    float64
	Interrupted bool
}

// driver is whoever currently owns progress.
type driver interface {
	state(progress float64) State
}

type restDriver struct{}

func (restDriver) state(progress float64) State {
	switch {
	case progress >= 1:
		return StatePresented
	case progress <= 0:
		return StateDismissed
	default:
		return StatePartial
	}
}

type animationDriver struct {
	gen      uint64
	target   float64
	velocity float64
	frames   int
}

func (*animationDriver) state(float64) State { return StateAnimating }

type gestureDriver struct {
	interrupted bool
}

func (*gestureDriver) state(float64) State { return StateDragging }

type Options struct {
	Size             Size
	Spring           motion.SpringConfig
	DecelerationRate float64
	// Immediate makes animated transitions snap, for hosts with motion turned off.
	Immediate bool
	Renderer  Renderer
	Scheduler Scheduler
}

// Controller arbitrates between commands, a live pan and the spring so that
// exactly one of them drives progress at a time. It is not safe for
// concurrent use; call it from the host's event loop.
type Controller struct {
	size      Size
	progress  float64
	drive     driver
	gen       uint64
	spring    motion.Spring
	maxFrames int
	immediate bool
	gesture   *GestureInterpreter

	renderer  Renderer
	scheduler Scheduler

	progressObservers   []func(float64)
	transitionObservers []func(TransitionEvent)
}

func New(opts Options) *Controller {
	cfg := opts.Spring
	if cfg.FPS <= 0 || cfg.Duration <= 0 || cfg.Damping <= 0 {
		cfg = motion.DefaultSpringConfig()
	}
	rate := opts.DecelerationRate
	if rate == 0 {
		rate = motion.DecelerationRateNormal
	}
	c := &Controller{
		size:      opts.Size,
		drive:     restDriver{},
		spring:    motion.NewSpring(cfg),
		maxFrames: cfg.FPS * 10,
		immediate: opts.Immediate,
		gesture:   NewGestureInterpreter(rate),
		renderer:  opts.Renderer,
		scheduler: opts.Scheduler,
	}
	c.publish(false)
	return c
}

func (c *Controller) SetRenderer(r Renderer) { c.renderer = r }

func (c *Controller) SetScheduler(s Scheduler) { c.scheduler = s }

func (c *Controller) Renderer() Renderer { return c.renderer }

func (c *Controller) Scheduler() Scheduler { return c.scheduler }

// OnProgress registers fn to be called after every progress change.
func (c *Controller) OnProgress(fn func(progress float64)) {
	if fn != nil {
		c.progressObservers = append(c.progressObservers, fn)
	}
}

// OnTransition registers fn to be called whenever a target is committed.
func (c *Controller) OnTransition(fn func(TransitionEvent)) {
	if fn != nil {
		c.transitionObservers = append(c.transitionObservers, fn)
	}
}

func (c *Controller) Progress() float64 { return c.progress }

func (c *Controller) State() State { return c.drive.state(c.progress) }

func (c *Controller) Size() Size { return c.size }

func (c *Controller) Visuals() Visuals { return VisualsFor(c.progress, c.size) }

// Generation identifies the current animation; ticks for older ones are dropped.
func (c *Controller) Generation() uint64 { return c.gen }

// Target is where progress is heading: the animation target while animating,
// otherwise the current value.
func (c *Controller) Target() float64 {
	if d, ok := c.drive.(*animationDriver); ok {
		return d.target
	}
	return c.progress
}

func (c *Controller) IsPresented() bool { return c.progress > 0 }

func (c *Controller) IsFullyPresented() bool { return c.progress >= 1 }

func (c *Controller) DecelerationRate() float64 { return c.gesture.DecelerationRate() }

// SetSize updates the container geometry and re-renders at the current progress.
func (c *Controller) SetSize(size Size) {
	c.size = size
	c.publish(false)
}

func (c *Controller) Present() { c.command("present", 1, SourceCommand) }

func (c *Controller) Dismiss() { c.command("dismiss", 0, SourceCommand) }

// Toggle reverses a running animation, otherwise it dismisses a menu that is
// at least partly visible and presents a hidden one.
func (c *Controller) Toggle() {
	if d, ok := c.drive.(*animationDriver); ok {
		c.command("toggle", 1-d.target, SourceCommand)
		return
	}
	if c.IsPresented() {
		c.command("toggle", 0, SourceCommand)
		return
	}
	c.command("toggle", 1, SourceCommand)
}

// ReceivedPassthroughTouch handles a tap on the backdrop.
func (c *Controller) ReceivedPassthroughTouch() {
	if _, dragging := c.drive.(*gestureDriver); dragging {
		return
	}
	if c.IsPresented() {
		c.command("dismiss", 0, SourceBackdrop)
	}
}

// command ignores requests that would leave a resting drawer where it is, so
// observers only see transitions that move something.
func (c *Controller) command(name string, target float64, source Source) {
	_, interrupted := c.drive.(*animationDriver)
	_, dragging := c.drive.(*gestureDriver)
	if dragging {
		c.gesture.Reset()
		c.drive = restDriver{}
	}
	if _, resting := c.drive.(restDriver); resting && c.progress == target {
		if dragging {
			c.publish(false)
		}
		return
	}
	c.emit(TransitionEvent{
		Source:      source,
		Command:     name,
		From:        c.progress,
		Target:      target,
		Interrupted: interrupted,
	})
	c.SetProgress(target, true)
}

// SetProgress moves the model to value. Unanimated updates render
// synchronously; animated ones start a spring from the current value with
// zero velocity, superseding any running animation.
func (c *Controller) SetProgress(value float64, animated bool) {
	if animated && !c.immediate {
		c.animateTo(value)
		return
	}
	c.cancelAnimation()
	if _, dragging := c.drive.(*gestureDriver); !dragging {
		c.drive = restDriver{}
		value = motion.Clip(value, 0, 1)
	}
	c.progress = value
	c.publish(false)
}

func (c *Controller) animateTo(value float64) {
	target := motion.Clip(value, 0, 1)
	_, resting := c.drive.(restDriver)
	if resting && c.progress == target {
		return
	}
	c.gen++
	c.drive = &animationDriver{gen: c.gen, target: target}
	c.publish(true)
	if c.scheduler != nil {
		c.scheduler.ScheduleTick(c.gen)
	}
}

func (c *Controller) cancelAnimation() {
	if _, ok := c.drive.(*animationDriver); ok {
		c.gen++
		c.drive = restDriver{}
	}
}

// Tick advances the running animation by one frame. It reports whether
// another tick was scheduled.
func (c *Controller) Tick(gen uint64) bool {
	d, ok := c.drive.(*animationDriver)
	if !ok || d.gen != gen {
		return false
	}
	pos, vel := c.spring.Step(c.progress, d.velocity, d.target)
	d.frames++
	if c.spring.Settled(pos, vel, d.target) || d.frames >= c.maxFrames {
		c.progress = d.target
		c.drive = restDriver{}
		c.publish(true)
		return false
	}
	c.progress = pos
	d.velocity = vel
	c.publish(true)
	if c.scheduler != nil {
		c.scheduler.ScheduleTick(gen)
	}
	return true
}

// HandleGesture feeds one pan sample through the interpreter. Samples that
// arrive out of phase order are ignored.
func (c *Controller) HandleGesture(s GestureSample) {
	switch s.Phase {
	case PhaseBegan:
		_, interrupted := c.drive.(*animationDriver)
		c.cancelAnimation()
		c.drive = &gestureDriver{interrupted: interrupted}
		c.gesture.Begin(c.progress)
		c.publish(false)
	case PhaseChanged:
		if _, dragging := c.drive.(*gestureDriver); !dragging {
			return
		}
		p, ok := c.gesture.Track(s, MenuWidth(c.size))
		if !ok {
			return
		}
		c.SetProgress(p, false)
	case PhaseEnded, PhaseCancelled:
		g, dragging := c.drive.(*gestureDriver)
		if !dragging {
			return
		}
		intent, ok := c.gesture.Release(s, MenuWidth(c.size))
		if !ok {
			c.drive = restDriver{}
			c.progress = motion.Clip(c.progress, 0, 1)
			c.publish(false)
			return
		}
		velocity := s.Velocity.X
		if s.Phase == PhaseCancelled {
			velocity = 0
		}
		c.emit(TransitionEvent{
			Source:      SourceGesture,
			From:        c.progress,
			Target:      intent.Target,
			Velocity:    velocity,
			Interrupted: g.interrupted,
		})
		c.drive = restDriver{}
		if c.progress == intent.Target {
			c.publish(false)
			return
		}
		c.SetProgress(intent.Target, intent.Animated)
	}
}

func (c *Controller) publish(animated bool) {
	if c.renderer != nil {
		c.renderer.Render(Frame{
			Visuals:    VisualsFor(c.progress, c.size),
			State:      c.State(),
			Animated:   animated,
			Generation: c.gen,
		})
	}
	for _, fn := range c.progressObservers {
		fn(c.progress)
	}
}

func (c *Controller) emit(ev TransitionEvent) {
	for _, fn := range c.transitionObservers {
		fn(ev)
	}
}

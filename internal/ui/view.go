package ui

import (
	"fmt"
	"math"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"slidemenu/internal/drawer"
	"slidemenu/internal/motion"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
	zone "github.com/lrstanley/bubblezone/v2"
)

// DefaultEdgeMargin is the grab margin, in cells, left of the menu's leading edge.
const DefaultEdgeMargin = 2.0

const toggleButtonWidth = 4

var zoneOnce sync.Once

type applyMsg struct {
	fn func(*Root)
}

type drawMsg struct{}

type animateMsg struct {
	gen uint64
}

type drawerKeyMap struct {
	Toggle   key.Binding
	Present  key.Binding
	Dismiss  key.Binding
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k drawerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Present, k.Dismiss, k.Activate, k.Help, k.Quit}
}

func (k drawerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Toggle, k.Present, k.Dismiss}, {k.Up, k.Down, k.Activate}, {k.Help, k.Quit}}
}

// line is one background row: styled is shown as is, plain is re-coloured
// when the backdrop dims it.
type line struct {
	styled string
	plain  string
	fg     colorful.Color
	bg     colorful.Color
}

type panelRow struct {
	text   string
	fg     colorful.Color
	bold   bool
	zoneID string
}

type Root struct {
	theme        Theme
	ascii        bool
	ctrl         Controller
	styleVariant string
	motionLevel  string
	mouseScope   string

	mu      sync.Mutex
	program *tea.Program
	running bool

	layout Layout
	cols   int
	rows   int

	drawer   *drawer.Controller
	backdrop *drawer.Backdrop
	pan      *PanRecognizer
	grabbed  bool
	frame    drawer.Frame
	snapshot atomic.Pointer[Snapshot]
	interval time.Duration
	pending  []tea.Cmd

	content      Content
	selected     int
	rowCursor    int
	infoTitle    string
	infoMarkdown string
	detailLines  []string
	statusFlash  string

	help     help.Model
	keymap   drawerKeyMap
	bar      progress.Model
	spin     spinner.Model
	spinStep int
	markdown *glamour.TermRenderer
	mdWidth  int
	logger   *clog.Logger

	drawPending atomic.Bool

	lastInputEvent string
}

type Options struct {
	ASCIIOnly        bool
	Debug            bool
	StyleVariant     string
	MotionLevel      string
	MouseScope       string
	DecelerationRate float64
	EdgeMargin       float64
	Clock            func() time.Time
}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "slidemenu-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}
	zoneOnce.Do(zone.NewGlobal)

	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	motionLevel := normalizeMotionLevel(opts.MotionLevel)
	mouseScope := normalizeMouseScope(opts.MouseScope)
	styleVariant := normalizeStyleVariant(opts.StyleVariant)
	theme := ThemeForVariant(styleVariant)

	spring := motion.DefaultSpringConfig()
	if motionLevel == "reduced" {
		spring = motion.ReducedSpringConfig()
	}
	bar := progress.New(
		progress.WithWidth(20),
		progress.WithColors(theme.Palette.PanelBg, theme.Palette.Accent),
		progress.WithScaled(true),
	)

	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	if opts.ASCIIOnly {
		spin.Spinner = spinner.Line
	}

	r := &Root{
		theme:        theme,
		ascii:        opts.ASCIIOnly,
		styleVariant: styleVariant,
		motionLevel:  motionLevel,
		mouseScope:   mouseScope,
		cols:         80,
		rows:         24,
		pan:          NewPanRecognizer(opts.Clock),
		interval:     spring.Interval(),
		help:         h,
		bar:          bar,
		spin:         spin,
		logger:       logger,
	}
	r.keymap = drawerKeyMap{
		Toggle:   key.NewBinding(key.WithKeys("space", "m"), key.WithHelp("space", "menu")),
		Present:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Dismiss:  key.NewBinding(key.WithKeys("esc", "d"), key.WithHelp("esc", "close")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	r.drawer = drawer.New(drawer.Options{
		Size:             drawer.Size{Width: float64(r.cols), Height: float64(r.rows)},
		Spring:           spring,
		DecelerationRate: opts.DecelerationRate,
		Immediate:        motionLevel == "off",
		Renderer:         drawer.RendererFunc(r.onFrame),
		Scheduler:        drawer.SchedulerFunc(r.scheduleTick),
	})
	r.backdrop = drawer.NewBackdrop(opts.EdgeMargin)
	r.backdrop.SetHandler(r.drawer.ReceivedPassthroughTouch)
	r.layout = DetermineLayout(r.cols, r.rows, false)
	return r
}

func (r *Root) Init() tea.Cmd {
	return r.flush()
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.resize(msg.Width, msg.Height)
		r.dispatchController(func(c Controller) { c.OnResize(msg.Width, msg.Height) })
		return r, r.flush()
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, r.flush()
	case drawMsg:
		r.drawPending.Store(false)
		return r, nil
	case animateMsg:
		r.drawer.Tick(msg.gen)
		return r, r.flush()
	case tea.MouseClickMsg:
		r.handleMousePress(msg)
		return r, r.flush()
	case tea.MouseMotionMsg:
		r.handleMouseMotion(msg)
		return r, r.flush()
	case tea.MouseReleaseMsg:
		r.handleMouseRelease(msg)
		return r, r.flush()
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			width := max(1, r.cols)
			view = tea.NewView(r.theme.Fail.Width(width).Render(trimForWidth("UI recovered from a rendering panic. Check logs.", max(1, width-1))))
		}
	}()

	v := tea.NewView(zone.Scan(r.render()))
	v.AltScreen = true
	v.MouseMode = r.currentMouseMode()
	return v
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

// Drawer exposes the controller. Use it before Run or from inside apply.
func (r *Root) Drawer() *drawer.Controller {
	return r.drawer
}

// OnTransition registers an observer for committed transitions. It runs on
// the UI goroutine and must not block.
func (r *Root) OnTransition(fn func(drawer.TransitionEvent)) {
	r.drawer.OnTransition(fn)
}

func (r *Root) SetContent(c Content) {
	r.apply(func(m *Root) {
		m.content = Content{
			Title: c.Title,
			Rows:  append([]string(nil), c.Rows...),
			Menu:  append([]MenuItem(nil), c.Menu...),
		}
		m.selected = clampIndex(m.selected, len(m.content.Menu))
		m.rowCursor = clampIndex(m.rowCursor, len(m.content.Rows))
	})
}

func (r *Root) SetInfo(title, markdown string) {
	r.apply(func(m *Root) {
		m.infoTitle = title
		m.infoMarkdown = markdown
		m.layout = DetermineLayout(m.cols, m.rows, markdown != "")
		m.renderDetail()
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
	})
}

func (r *Root) Present() {
	r.apply(func(m *Root) { m.drawer.Present() })
}

func (r *Root) Dismiss() {
	r.apply(func(m *Root) { m.drawer.Dismiss() })
}

func (r *Root) Toggle() {
	r.apply(func(m *Root) { m.drawer.Toggle() })
}

// WithDrawer runs fn against the drawer on the UI goroutine.
func (r *Root) WithDrawer(fn func(*drawer.Controller)) {
	if fn == nil {
		return
	}
	r.apply(func(m *Root) { fn(m.drawer) })
}

func (r *Root) Snapshot() Snapshot {
	if s := r.snapshot.Load(); s != nil {
		return *s
	}
	return Snapshot{}
}

func (r *Root) RequestDraw() {
	r.mu.Lock()
	p := r.program
	running := r.running
	r.mu.Unlock()
	if !running || p == nil {
		return
	}
	if !r.drawPending.CompareAndSwap(false, true) {
		return
	}
	time.AfterFunc(16*time.Millisecond, func() {
		r.mu.Lock()
		p := r.program
		running := r.running
		r.mu.Unlock()
		if !running || p == nil {
			r.drawPending.Store(false)
			return
		}
		p.Send(drawMsg{})
	})
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func (r *Root) dispatchController(fn func(Controller)) {
	if fn == nil || r.ctrl == nil {
		return
	}
	ctrl := r.ctrl
	go fn(ctrl)
}

func (r *Root) onFrame(f drawer.Frame) {
	r.frame = f
	if f.Animated {
		r.spinStep++
	}
	s := snapshotOf(f, r.cols, r.rows)
	r.snapshot.Store(&s)
}

func (r *Root) scheduleTick(gen uint64) {
	r.pending = append(r.pending, animateTickCmd(r.interval, gen))
}

func (r *Root) flush() tea.Cmd {
	cmds := r.pending
	r.pending = nil
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func (r *Root) resize(cols, rows int) {
	if cols < 1 || rows < 1 {
		return
	}
	if samples := r.pan.Cancel(); len(samples) > 0 {
		for _, s := range samples {
			r.drawer.HandleGesture(s)
		}
	}
	r.grabbed = false
	r.cols = cols
	r.rows = rows
	r.layout = DetermineLayout(cols, rows, r.infoMarkdown != "")
	r.renderDetail()
	r.drawer.SetSize(drawer.Size{Width: float64(cols), Height: float64(rows)})
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	r.recordInputEvent(fmt.Sprintf("key:%v mod:%v text:%q", msg.Code, msg.Mod, msg.Text))

	switch {
	case key.Matches(msg, r.keymap.Quit):
		if r.ctrl == nil {
			return r, tea.Quit
		}
		r.dispatchController(func(c Controller) { c.OnQuit() })
	case key.Matches(msg, r.keymap.Toggle):
		r.drawer.Toggle()
	case key.Matches(msg, r.keymap.Present):
		r.drawer.Present()
	case key.Matches(msg, r.keymap.Dismiss):
		if r.drawer.IsPresented() {
			r.drawer.Dismiss()
		} else if r.infoMarkdown != "" {
			r.infoTitle = ""
			r.infoMarkdown = ""
			r.layout = DetermineLayout(r.cols, r.rows, false)
			r.renderDetail()
		}
	case key.Matches(msg, r.keymap.Up):
		r.moveSelection(-1)
	case key.Matches(msg, r.keymap.Down):
		r.moveSelection(1)
	case key.Matches(msg, r.keymap.Activate):
		if r.drawer.IsPresented() {
			r.activate(r.selected)
		}
	case key.Matches(msg, r.keymap.Help):
		r.help.ShowAll = !r.help.ShowAll
	}
	return r, r.flush()
}

func (r *Root) moveSelection(delta int) {
	if r.drawer.IsPresented() {
		r.selected = wrapIndex(r.selected+delta, len(r.content.Menu))
		return
	}
	r.rowCursor = clampIndex(r.rowCursor+delta, len(r.content.Rows))
}

func (r *Root) activate(i int) {
	if i < 0 || i >= len(r.content.Menu) {
		return
	}
	item := r.content.Menu[i]
	r.selected = i
	r.statusFlash = item.Label
	r.dispatchController(func(c Controller) { c.OnMenuItem(item.ID) })
}

func (r *Root) handleMousePress(msg tea.MouseClickMsg) {
	m := msg.Mouse()
	r.recordInputEvent(fmt.Sprintf("mouse_click:%d,%d button:%v", m.X, m.Y, m.Button))
	if r.mouseScope == "off" || m.Button != tea.MouseLeft {
		return
	}
	pt := drawer.Point{X: float64(m.X), Y: float64(m.Y)}
	wasPresented := r.drawer.IsPresented()
	if r.backdrop.HitTest(pt, r.frame.MenuFrame) {
		r.grabbed = true
		r.pan.Press(pt)
		return
	}
	r.handleBackgroundTap(m.X, m.Y, wasPresented)
}

func (r *Root) handleMouseMotion(msg tea.MouseMotionMsg) {
	if !r.grabbed {
		return
	}
	m := msg.Mouse()
	for _, s := range r.pan.Move(drawer.Point{X: float64(m.X), Y: float64(m.Y)}) {
		r.drawer.HandleGesture(s)
	}
}

func (r *Root) handleMouseRelease(msg tea.MouseReleaseMsg) {
	if !r.grabbed {
		return
	}
	r.grabbed = false
	m := msg.Mouse()
	samples, tap := r.pan.Release(drawer.Point{X: float64(m.X), Y: float64(m.Y)})
	for _, s := range samples {
		r.drawer.HandleGesture(s)
	}
	if tap {
		r.handleDrawerTap(msg)
	}
}

func (r *Root) handleDrawerTap(msg tea.MouseMsg) {
	if !r.drawer.IsPresented() {
		return
	}
	for i, item := range r.content.Menu {
		if zi := zone.Get(menuZoneID(item.ID)); zi != nil && zi.InBounds(msg) {
			r.activate(i)
			return
		}
	}
}

// handleBackgroundTap receives touches the backdrop passed through.
func (r *Root) handleBackgroundTap(x, y int, wasPresented bool) {
	if y == 0 && x < toggleButtonWidth {
		if !wasPresented {
			r.drawer.Toggle()
		}
		return
	}
	if r.mouseScope != "full" {
		return
	}
	if y >= r.layout.RowsY && y < r.layout.RowsY+r.layout.RowsH {
		idx := r.rowOffset() + y - r.layout.RowsY
		if idx < len(r.content.Rows) {
			r.rowCursor = idx
			r.statusFlash = r.content.Rows[idx]
		}
	}
}

func (r *Root) render() string {
	if r.cols < 1 {
		r.cols = 80
	}
	if r.rows < 1 {
		r.rows = 24
	}
	if r.layout.Mode == LayoutTooSmall {
		return r.theme.Fail.Render(trimForWidth(fmt.Sprintf("Terminal too small (%dx%d)", r.cols, r.rows), r.cols))
	}
	return r.compose(r.backgroundLines())
}

func (r *Root) backgroundLines() []line {
	p := r.theme.Palette
	lines := make([]line, 0, r.rows)

	button := "[+]"
	if r.drawer.IsPresented() {
		button = "[-]"
	}
	title := firstNonEmptyStr(r.content.Title, "slidemenu")
	rest := padRune(" "+title, r.cols-toggleButtonWidth)
	lines = append(lines, line{
		styled: paint(p.Accent, p.HeaderBg, " "+button) + paint(p.HeaderFg, p.HeaderBg, rest),
		plain:  " " + button + rest,
		fg:     p.HeaderFg,
		bg:     p.HeaderBg,
	})

	offset := r.rowOffset()
	for i := 0; i < r.layout.RowsH; i++ {
		idx := offset + i
		text := ""
		if idx < len(r.content.Rows) {
			marker := "  "
			if idx == r.rowCursor {
				marker = "› "
				if r.ascii {
					marker = "> "
				}
			}
			text = marker + r.content.Rows[idx]
		}
		bg := p.Background
		if idx%2 == 1 {
			bg = p.RowAlt
		}
		text = padRune(text, r.cols)
		lines = append(lines, line{styled: paint(p.Foreground, bg, text), plain: text, fg: p.Foreground, bg: bg})
	}

	for i := 0; i < r.layout.DetailH; i++ {
		if i == 0 {
			text := padRune(" "+r.infoTitle, r.cols)
			lines = append(lines, line{styled: r.theme.Accent.Background(p.RowAlt).Render(text), plain: text, fg: p.Accent, bg: p.RowAlt})
			continue
		}
		raw := ""
		if i-1 < len(r.detailLines) {
			raw = r.detailLines[i-1]
		}
		lines = append(lines, line{styled: padStyled(raw, r.cols), plain: padRune(ansi.Strip(raw), r.cols), fg: p.Foreground, bg: p.Background})
	}

	helpView := r.help.View(r.keymap)
	if r.help.ShowAll {
		helpView = strings.ReplaceAll(helpView, "\n", "  ")
	}
	lines = append(lines, line{styled: padStyled(" "+helpView, r.cols), plain: padRune(" "+ansi.Strip(helpView), r.cols), fg: p.Muted, bg: p.Background})

	status := firstNonEmptyStr(r.statusFlash, r.frame.State.String())
	left := fmt.Sprintf(" %s %s  %.2f ", r.activityGlyph(), status, r.frame.Progress)
	bar := r.progressBar(max(8, min(30, r.cols/4)))
	leftW := max(0, r.cols-ansi.StringWidth(bar))
	lines = append(lines, line{
		styled: paint(p.StatusFg, p.StatusBg, padRune(left, leftW)) + bar,
		plain:  padRune(padRune(left, leftW)+ansi.Strip(bar), r.cols),
		fg:     p.StatusFg,
		bg:     p.StatusBg,
	})
	return lines
}

func (r *Root) activityGlyph() string {
	switch r.frame.State {
	case drawer.StateAnimating, drawer.StateDragging:
		frames := r.spin.Spinner.Frames
		return frames[r.spinStep%len(frames)]
	}
	return " "
}

func (r *Root) progressBar(width int) string {
	b := r.bar
	b.SetWidth(width)
	return b.ViewAs(motion.Clip(r.frame.Progress, 0, 1))
}

func (r *Root) compose(lines []line) string {
	f := r.frame
	origin := int(math.Round(f.MenuFrame.X))
	origin = max(0, min(r.cols, origin))
	visible := r.cols - origin
	var panel []panelRow
	if visible > 0 {
		panel = r.panelRows(max(visible, int(math.Round(f.MenuFrame.Width))))
	}

	out := make([]string, 0, r.rows)
	for y := 0; y < r.rows; y++ {
		ln := line{fg: r.theme.Palette.Foreground, bg: r.theme.Palette.Background, plain: strings.Repeat(" ", r.cols)}
		ln.styled = paint(ln.fg, ln.bg, ln.plain)
		if y < len(lines) {
			ln = lines[y]
		}
		var sb strings.Builder
		if f.BackdropAlpha > 0 {
			left := string([]rune(padRune(ln.plain, r.cols))[:origin])
			sb.WriteString(paint(dim(ln.fg, f.BackdropAlpha), dim(ln.bg, f.BackdropAlpha), left))
		} else {
			sb.WriteString(ansi.Truncate(ln.styled, origin, ""))
		}
		if visible > 0 && y < len(panel) {
			sb.WriteString(r.renderPanelRow(panel[y], visible, dim(ln.bg, f.BackdropAlpha)))
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func (r *Root) panelRows(width int) []panelRow {
	p := r.theme.Palette
	rows := make([]panelRow, r.rows)
	for i := range rows {
		rows[i] = panelRow{fg: p.PanelFg}
	}
	if r.rows < 4 {
		return rows
	}
	rule := "─"
	pointer := "› "
	if r.ascii {
		rule = "-"
		pointer = "> "
	}
	rows[0] = panelRow{text: " Menu", fg: p.PanelFg, bold: true}
	rows[1] = panelRow{text: " " + strings.Repeat(rule, max(0, width-3)), fg: p.PanelFg}
	for i, item := range r.content.Menu {
		y := 2 + i
		if y >= r.rows-1 {
			break
		}
		row := panelRow{text: "  " + item.Label, fg: p.PanelFg, zoneID: menuZoneID(item.ID)}
		if i == r.selected {
			row.text = pointer + item.Label
			row.bold = true
		}
		rows[y] = row
	}
	rows[r.rows-1] = panelRow{text: fmt.Sprintf(" %3.0f%%", motion.Clip(r.frame.Progress, 0, 1)*100), fg: p.PanelFg}
	return rows
}

// renderPanelRow draws the visible part of a panel row, composited onto
// under with the menu's alpha.
func (r *Root) renderPanelRow(row panelRow, visible int, under colorful.Color) string {
	alpha := r.frame.MenuAlpha
	edge := "│"
	if r.ascii {
		edge = "|"
	}
	text := edge + padRune(row.text, max(0, visible-1))
	text = string([]rune(text)[:visible])
	style := lipgloss.NewStyle().
		Foreground(over(row.fg, under, alpha)).
		Background(over(r.theme.Palette.PanelBg, under, alpha)).
		Bold(row.bold)
	s := style.Render(text)
	if row.zoneID != "" {
		s = zone.Mark(row.zoneID, s)
	}
	return s
}

func (r *Root) renderDetail() {
	r.detailLines = nil
	if r.infoMarkdown == "" {
		return
	}
	width := max(20, r.cols-4)
	if r.markdown == nil || r.mdWidth != width {
		style := "dark"
		if r.ascii {
			style = "ascii"
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			r.logger.Debug("markdown renderer unavailable", "err", err)
			renderer = nil
		}
		r.markdown = renderer
		r.mdWidth = width
	}
	text := r.infoMarkdown
	if r.markdown != nil {
		if out, err := r.markdown.Render(r.infoMarkdown); err == nil {
			text = out
		}
	}
	r.detailLines = strings.Split(strings.Trim(text, "\n"), "\n")
}

func (r *Root) rowOffset() int {
	if r.layout.RowsH <= 0 || r.rowCursor < r.layout.RowsH {
		return 0
	}
	return r.rowCursor - r.layout.RowsH + 1
}

func (r *Root) currentMouseMode() tea.MouseMode {
	if r.mouseScope == "off" {
		return tea.MouseModeNone
	}
	return tea.MouseModeCellMotion
}

func animateTickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return animateMsg{gen: gen} })
}

func menuZoneID(id string) string {
	return "menu:" + id
}

func firstNonEmptyStr(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		i = n - 1
	}
	if i >= n {
		i = 0
	}
	return i
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func padRune(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(s, "\t", "    "))
	if len(r) > width {
		r = r[:width]
	}
	if len(r) < width {
		r = append(r, []rune(strings.Repeat(" ", width-len(r)))...)
	}
	return string(r)
}

// padStyled pads or truncates an ANSI-styled string to width cells.
func padStyled(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "cozy_clean", "retro_terminal", "modern_arcade":
		return strings.TrimSpace(v)
	default:
		return "modern_arcade"
	}
}

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "reduced", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

func normalizeMouseScope(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "scoped", "full":
		return strings.TrimSpace(v)
	default:
		return "scoped"
	}
}

func (r *Root) recordInputEvent(event string) {
	r.lastInputEvent = trimForWidth(strings.TrimSpace(event), 160)
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}
	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", fmt.Sprintf("%v", recovered),
		"messageType", msgType,
		"state", r.frame.State.String(),
		"progress", r.frame.Progress,
		"cols", r.cols,
		"rows", r.rows,
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)

// Package ui is the interactive plotter: an input line, the function list,
// the points panel, transient messages and a scrolling event log.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"grapher/hal"
	"grapher/plot/axis"
	"grapher/plot/expr"
	"grapher/plot/numeric"
	"grapher/plot/points"
	"grapher/plot/registry"
	"grapher/plot/render"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyterm"
)

const maxInput = 256

// Message lifetimes in HAL ticks (milliseconds).
const (
	successTTL = 3000
	errorTTL   = 5000
)

// User-facing messages.
const (
	msgEnterFunction = "enter a function"
	msgInvalid       = "invalid format, e.g. y = 2 * (x + 1) or y = x^2"
	msgDomain        = "axis minimums must be less than maximums"
	msgPlotted       = "graphs plotted"
	msgNoPoints      = "no significant points found"
)

// Config lays out the screen.
type Config struct {
	Margin      int
	PanelHeight int
	Viewport    axis.Viewport
}

type message struct {
	text    string
	err     bool
	expires uint64
}

// Task owns the registry and everything drawn around it.
type Task struct {
	fb    hal.Framebuffer
	d     *render.Display
	keys  <-chan hal.KeyEvent
	ticks <-chan uint64
	log   *logrus.Entry

	font    render.Font
	plotter render.Plotter
	panelY  int16

	reg    *registry.Registry
	view   axis.Viewport
	result *registry.Result

	input  []rune
	cursor int

	selected int
	msg      message
	now      uint64

	term       *tinyterm.Terminal
	termRegion *render.Region

	plotDirty  bool
	panelDirty bool
}

// New builds a task drawing into h's framebuffer. A nil log discards entries.
func New(h hal.HAL, reg *registry.Registry, cfg Config, log *logrus.Entry) *Task {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	t := &Task{
		reg:        reg,
		view:       cfg.Viewport,
		log:        log,
		font:       render.DefaultFont(),
		plotDirty:  true,
		panelDirty: true,
	}
	if in := h.Input(); in != nil && in.Keyboard() != nil {
		t.keys = in.Keyboard().Events()
	}
	if tm := h.Time(); tm != nil {
		t.ticks = tm.Ticks()
	}
	if disp := h.Display(); disp != nil {
		t.fb = disp.Framebuffer()
	}
	if t.fb == nil {
		return t
	}

	w, fh := t.fb.Width(), t.fb.Height()
	plotH := fh - cfg.PanelHeight
	t.panelY = int16(plotH)
	t.d = render.NewDisplay(t.fb)
	t.plotter = render.Plotter{
		Frame: axis.Frame{Width: w, Height: plotH, Margin: cfg.Margin},
		Font:  t.font,
	}
	t.initTerm(w, cfg.PanelHeight)
	return t
}

func (t *Task) initTerm(w, panelH int) {
	rows := int16(4)
	h := rows * t.font.Height
	if int(h) > panelH {
		return
	}
	x := int16(w / 2)
	y := t.panelY + int16(panelH) - h
	t.termRegion = render.NewRegion(t.d, x, y, int16(w)-x, h)
	face, ok := t.font.Face.(*tinyfont.Font)
	if !ok {
		return
	}
	t.term = tinyterm.NewTerminal(t.termRegion)
	t.term.Configure(&tinyterm.Config{
		Font:       face,
		FontHeight: t.font.Height,
		FontOffset: t.font.Offset,
	})
}

// logf appends one line to the on-screen event log.
func (t *Task) logf(format string, args ...any) {
	if t.term == nil {
		return
	}
	fmt.Fprintf(t.term, format+"\r\n", args...)
}

// Step drains pending ticks and key events and redraws what changed.
func (t *Task) Step() error {
	t.drainTicks()
	for drained := false; !drained; {
		select {
		case ev := <-t.keys:
			t.HandleKey(ev)
		default:
			drained = true
		}
	}
	if t.msg.text != "" && t.now >= t.msg.expires {
		t.msg = message{}
		t.plotDirty = true
	}
	t.render()
	return nil
}

func (t *Task) drainTicks() {
	for {
		select {
		case seq := <-t.ticks:
			if seq > t.now {
				t.now = seq
			}
		default:
			return
		}
	}
}

// Registry returns the function list.
func (t *Task) Registry() *registry.Registry { return t.reg }

// Viewport returns the viewport used by the next plot pass.
func (t *Task) Viewport() axis.Viewport { return t.view }

// Result returns the last successful plot pass, or nil.
func (t *Task) Result() *registry.Result { return t.result }

// Selected is the index of the highlighted function.
func (t *Task) Selected() int { return t.selected }

// Message returns the visible message, if any.
func (t *Task) Message() (text string, isErr bool) { return t.msg.text, t.msg.err }

// Input returns the current input line.
func (t *Task) Input() string { return string(t.input) }

func (t *Task) showError(s string) {
	t.msg = message{text: s, err: true, expires: t.now + errorTTL}
	t.plotDirty = true
}

func (t *Task) showSuccess(s string) {
	t.msg = message{text: s, expires: t.now + successTTL}
	t.plotDirty = true
}

// AddFunction registers text. It does not replot.
func (t *Task) AddFunction(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		t.showError(msgEnterFunction)
		return expr.ErrEmptyExpression
	}
	views, err := t.reg.Add(text)
	if err != nil {
		t.showError(msgInvalid)
		t.log.WithError(err).WithField("expression", text).Warn("function rejected")
		return err
	}
	t.selected = len(views) - 1
	t.panelDirty = true
	t.log.WithFields(logrus.Fields{"expression": text, "index": t.selected}).Info("function added")
	t.logf("+ %s", text)
	return nil
}

// RemoveFunction deletes entry i and replots.
func (t *Task) RemoveFunction(i int) error {
	e, err := t.reg.Entry(i)
	if err != nil {
		return err
	}
	views, err := t.reg.Remove(i)
	if err != nil {
		return err
	}
	if t.selected >= len(views) {
		t.selected = len(views) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
	t.panelDirty = true
	t.log.WithFields(logrus.Fields{"expression": e.Expression, "index": i}).Info("function removed")
	t.logf("- %s", e.Expression)
	_ = t.Plot(false)
	return nil
}

// ToggleFunction enables or disables entry i and replots.
func (t *Task) ToggleFunction(i int, enabled bool) error {
	if _, err := t.reg.Toggle(i, enabled); err != nil {
		return err
	}
	t.panelDirty = true
	t.log.WithFields(logrus.Fields{"index": i, "enabled": enabled}).Info("function toggled")
	_ = t.Plot(false)
	return nil
}

// SetViewport replaces the viewport; it is checked by the next plot pass.
func (t *Task) SetViewport(v axis.Viewport) { t.view = v }

// Plot runs a full pass over the registry. explicit marks a user request,
// which reports success.
func (t *Task) Plot(explicit bool) error {
	start := time.Now()
	res, err := t.reg.Plot(t.view)
	if err != nil {
		t.showError(msgDomain)
		t.log.WithError(err).Warn("plot rejected")
		return err
	}
	t.result = res
	t.plotDirty = true
	t.panelDirty = true
	t.log.WithFields(logrus.Fields{
		"curves":  len(res.Curves),
		"elapsed": time.Since(start),
	}).Debug("plot pass")
	if explicit {
		t.showSuccess(msgPlotted)
		t.logf("plot: %d curve(s)", len(res.Curves))
	}
	return nil
}

// PointsInfo is the text of the points panel: one line per curve that has
// significant points, or a single "none found" line.
func (t *Task) PointsInfo() []string {
	if t.result == nil {
		return nil
	}
	var lines []string
	for _, a := range t.result.SignificantPoints() {
		if len(a.Points) == 0 {
			continue
		}
		lines = append(lines, a.Expression+": "+points.Format(a.Points))
	}
	if len(lines) == 0 {
		return []string{msgNoPoints}
	}
	return lines
}

var errUsage = errors.New("usage")

// command runs a ":" line.
func (t *Task) command(line string) error {
	fields := strings.Fields(strings.TrimPrefix(line, ":"))
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "view":
		if len(fields) != 5 {
			t.showError("usage: :view xmin xmax ymin ymax")
			return errUsage
		}
		var b [4]float64
		for i, f := range fields[1:] {
			b[i] = numeric.ParseFloat(f)
			if !numeric.IsNotNanOrInf(b[i]) {
				t.showError("invalid number: " + f)
				return fmt.Errorf("%w: %s", errUsage, f)
			}
		}
		t.SetViewport(axis.Viewport{XMin: b[0], XMax: b[1], YMin: b[2], YMax: b[3]})
		return t.Plot(true)
	case "plot":
		return t.Plot(true)
	default:
		t.showError("unknown command: " + fields[0])
		return fmt.Errorf("%w: %s", errUsage, fields[0])
	}
}

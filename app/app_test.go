package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grapher/hal"
	"grapher/internal/config"
	"grapher/internal/logging"
	"grapher/plot/axis"
	"grapher/plot/registry"
)

type lineLogger struct{ lines []string }

func (l *lineLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

// panickyFB panics on its first Present.
type panickyFB struct {
	hal.Framebuffer
	presents int
}

func (f *panickyFB) Present() error {
	f.presents++
	if f.presents == 1 {
		panic("present failed")
	}
	return nil
}

type testHAL struct {
	log *lineLogger
	fb  hal.Framebuffer
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) Display() hal.Display { return h }
func (h *testHAL) Input() hal.Input     { return nil }
func (h *testHAL) Time() hal.Time       { return nil }

func (h *testHAL) Framebuffer() hal.Framebuffer { return h.fb }

func testConfig(functions ...string) *config.Config {
	return &config.Config{
		Display:   config.Display{Width: 320, Height: 240, Scale: 1},
		Plot:      config.Plot{Margin: 20, PanelHeight: 80},
		Viewport:  axis.Default,
		Palette:   registry.DefaultPalette,
		Functions: functions,
		Log:       config.Log{Level: "debug", Format: "text"},
	}
}

func TestNew_AddsConfiguredFunctions(t *testing.T) {
	h := &testHAL{log: &lineLogger{}, fb: hal.NewFramebuffer(320, 240)}
	a := New(h, testConfig("x", "2 *", "x^2"), logging.Discard())

	task := a.Task()
	require.Equal(t, 2, task.Registry().Len())
	require.NotNil(t, task.Result())
	assert.Len(t, task.Result().Curves, 2)
	require.NoError(t, a.Step())
}

func TestNew_NoFunctionsDoesNotPlot(t *testing.T) {
	h := &testHAL{log: &lineLogger{}, fb: hal.NewFramebuffer(320, 240)}
	a := New(h, testConfig(), logging.Discard())
	assert.Nil(t, a.Task().Result())
	require.NoError(t, a.Step())
}

func TestNew_LogsThroughHAL(t *testing.T) {
	h := &testHAL{log: &lineLogger{}, fb: hal.NewFramebuffer(320, 240)}
	_ = New(h, testConfig("x"), nil)

	joined := strings.Join(h.log.lines, "\n")
	assert.Contains(t, joined, "grapher started")
	assert.Contains(t, joined, "version=")
}

func TestStep_PanicPaintsScreen(t *testing.T) {
	fb := &panickyFB{Framebuffer: hal.NewFramebuffer(320, 240)}
	h := &testHAL{log: &lineLogger{}, fb: fb}
	a := New(h, testConfig("x"), logging.Discard())

	err := a.Step()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "present failed")
	assert.Equal(t, err, a.Step())

	require.NotEmpty(t, h.log.lines)
	assert.Equal(t, "Grapher Panic:", h.log.lines[0])

	// The panic screen is black text on white.
	img := hal.ToRGBA(fb.Framebuffer)
	dark := 0
	for y := 0; y < 12; y++ {
		for x := 0; x < 120; x++ {
			if img.RGBAAt(x, y).R < 0x80 {
				dark++
			}
		}
	}
	assert.Positive(t, dark)
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("héllo", 2)
	assert.Equal(t, "hé", p)
	assert.Equal(t, "llo", r)

	p, r = takeRunes("ab", 5)
	assert.Equal(t, "ab", p)
	assert.Empty(t, r)
}

func TestFactory(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(logging.Config{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	h := &testHAL{log: &lineLogger{}, fb: hal.NewFramebuffer(320, 240)}
	step := Factory(testConfig("x"), l)(h)
	require.NoError(t, step())
	assert.Contains(t, buf.String(), `"msg":"grapher started"`)
}

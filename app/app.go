// Package app wires configuration, logging and the plotter UI onto a HAL.
package app

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"grapher/hal"
	"grapher/internal/config"
	"grapher/internal/logging"
	"grapher/plot/registry"
	"grapher/plot/ui"
)

// App is a running plotter bound to one HAL.
type App struct {
	h    hal.HAL
	task *ui.Task
	log  *logrus.Entry

	panicked error
}

// New builds the plotter, registers cfg.Functions and plots them once if any
// were accepted. A nil log writes through the HAL logger.
func New(h hal.HAL, cfg *config.Config, log *logrus.Logger) *App {
	if log == nil {
		log = halLogger(h, cfg.Log)
	}
	entry := logging.Entry(log)

	reg := registry.New(cfg.Palette)
	task := ui.New(h, reg, ui.Config{
		Margin:      cfg.Plot.Margin,
		PanelHeight: cfg.Plot.PanelHeight,
		Viewport:    cfg.Viewport,
	}, entry.WithField("component", "ui"))

	added := 0
	for _, f := range cfg.Functions {
		if err := task.AddFunction(f); err != nil {
			entry.WithError(err).WithField("expression", f).Warn("configured function skipped")
			continue
		}
		added++
	}
	if added > 0 {
		if err := task.Plot(false); err != nil {
			entry.WithError(err).Warn("initial plot failed")
		}
	}
	entry.WithField("functions", added).Info("grapher started")

	return &App{h: h, task: task, log: entry}
}

// Task exposes the UI for one-shot tools and tests.
func (a *App) Task() *ui.Task { return a.task }

// Step runs one UI step. A panic paints the panic screen and turns into an
// error returned from every later call.
func (a *App) Step() (err error) {
	if a.panicked != nil {
		return a.panicked
	}
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			a.log.WithField("panic", r).Error("ui step panicked")
			showPanic(a.h, r, stack)
			a.panicked = fmt.Errorf("grapher panic: %v", r)
			err = a.panicked
		}
	}()
	return a.task.Step()
}

// Factory adapts New to the HAL runners.
func Factory(cfg *config.Config, log *logrus.Logger) func(hal.HAL) func() error {
	return func(h hal.HAL) func() error {
		return New(h, cfg, log).Step
	}
}

func halLogger(h hal.HAL, c config.Log) *logrus.Logger {
	hl := h.Logger()
	if hl == nil {
		return logging.Discard()
	}
	l, err := logging.New(logging.Config{Level: c.Level, Format: c.Format}, &hal.LogWriter{L: hl})
	if err != nil {
		return logging.Discard()
	}
	return l
}

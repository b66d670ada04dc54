//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz         int
	Ticks      uint64
	StepBudget int
	// Log receives HAL log lines; nil discards them.
	Log io.Writer
	// Done, when set, is called with the HAL after the last step.
	Done func(HAL) error
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, opts Options, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}
	if cfg.Log == nil {
		cfg.Log = io.Discard
	}

	h := newHost(opts, cfg.Log)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	finish := func() error {
		if cfg.Done != nil {
			return cfg.Done(h)
		}
		return nil
	}

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			if err := finish(); err != nil {
				return err
			}
			return ctx.Err()
		case <-t.C:
			h.t.advance()
			for i := 0; i < cfg.StepBudget && step != nil; i++ {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return finish()
			}
		}
	}
}

// NewFramebuffer returns an in-memory RGB565 framebuffer.
func NewFramebuffer(width, height int) Framebuffer {
	return newHostFramebuffer(width, height)
}

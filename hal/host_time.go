//go:build !tinygo

package hal

import "time"

// tickDur is one HAL tick; message lifetimes are counted in these.
const tickDur = time.Millisecond

// hostTime turns wall-clock time between frames into millisecond ticks.
type hostTime struct {
	ch  chan uint64
	seq uint64

	now  func() time.Time
	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// advance publishes one tick per elapsed millisecond since the previous call.
// The first call publishes a single tick.
func (t *hostTime) advance() {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.publish(1)
		return
	}
	t.acc += now.Sub(t.last)
	t.last = now

	n := uint64(t.acc / tickDur)
	if n == 0 {
		return
	}
	t.acc %= tickDur
	t.publish(n)
}

// publish emits n ticks. Ticks that do not fit are dropped; the sequence
// still advances.
func (t *hostTime) publish(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}

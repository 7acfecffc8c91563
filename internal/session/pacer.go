package session

import (
	"context"
	"time"

	"github.com/san-kum/sortviz/internal/trace"
)

// pacer is the emitter handed to one session's algorithm. It publishes each
// Step and then suspends for the configured delay. It stays live only while
// its epoch is the controller's current one.
type pacer struct {
	ctrl      *Controller
	ctx       context.Context
	cancel    context.CancelFunc
	epoch     uint64
	session   string
	algorithm string
	delay     time.Duration
	record    bool

	index    int
	steps    []trace.Step
	declined bool
}

func (p *pacer) emit(step trace.Step) bool {
	if !p.live() {
		return p.decline()
	}

	ev := trace.Event{
		Session:   p.session,
		Algorithm: p.algorithm,
		Index:     p.index,
		Step:      step,
	}
	if !p.ctrl.publishStep(p.epoch, ev) {
		return p.decline()
	}
	p.index++
	if p.record {
		p.steps = append(p.steps, step)
	}

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		select {
		case <-p.ctx.Done():
			timer.Stop()
			return p.decline()
		case <-timer.C:
		}
	}

	if !p.live() {
		return p.decline()
	}
	return true
}

func (p *pacer) live() bool {
	return p.ctx.Err() == nil && p.ctrl.isCurrent(p.epoch)
}

func (p *pacer) decline() bool {
	p.declined = true
	return false
}

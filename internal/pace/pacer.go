// Package pace spaces repeated requests at a fixed rate.
package pace

import (
	"context"
	"sync"
	"time"
)

// Pacer schedules iterations at a fixed rate with a leaky bucket: a virtual
// drip time advances by 1/rate per iteration and callers wait for it. An
// iteration that is behind schedule starts immediately, but idle time is
// not saved up for bursts.
//
// A Pacer is safe for concurrent use.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
	now      func() time.Time
}

// New returns a Pacer allowing perSecond iterations per second. The first
// iteration starts immediately. Non-positive rates disable pacing.
func New(perSecond float64) *Pacer {
	p := &Pacer{now: time.Now}
	if perSecond > 0 {
		p.interval = time.Duration(float64(time.Second) / perSecond)
	}
	return p
}

// Interval returns the spacing between iterations, or 0 when unpaced.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Next reserves the next slot and returns when it starts. The time may be
// in the past.
func (p *Pacer) Next() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if p.interval == 0 {
		return now
	}

	slot := p.next
	if slot.Before(now) {
		slot = now
	}
	p.next = slot.Add(p.interval)
	return slot
}

// Wait blocks until the next slot or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	wait := time.Until(p.Next())
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

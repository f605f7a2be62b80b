package router

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Call is the handle of one request.
type Call struct {
	id     uuid.UUID
	gate   *gate
	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}
}

func newCall(ctx context.Context) (*Call, context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	return &Call{
		id:     uuid.New(),
		gate:   newGate(),
		cancel: cancel,
		done:   make(chan struct{}),
	}, ctx
}

// ID identifies the call in logs and events.
func (c *Call) ID() uuid.UUID {
	return c.id
}

// Wait suspends the call at its next checkpoint: before the request is
// sent, or after the response has arrived.
func (c *Call) Wait() {
	c.gate.shut()
}

// Resume lets a suspended call continue.
func (c *Call) Resume() {
	c.gate.open()
}

// Cancel aborts the call. The failure continuation still runs once, with a
// ConnectionFailed error, unless the call already completed.
func (c *Call) Cancel() {
	c.cancel()
}

// Done is closed after the continuation has run.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// gate is open while ch is closed.
type gate struct {
	mu sync.Mutex
	ch chan struct{}
}

func newGate() *gate {
	ch := make(chan struct{})
	close(ch)
	return &gate{ch: ch}
}

func (g *gate) shut() {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case <-g.ch:
		g.ch = make(chan struct{})
	default:
	}
}

func (g *gate) open() {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case <-g.ch:
	default:
		close(g.ch)
	}
}

// pass blocks while the gate is shut.
func (g *gate) pass(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	ch := g.ch
	g.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

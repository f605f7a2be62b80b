package router

import (
	"time"

	"github.com/google/uuid"

	"github.com/brkyvrkn/network-kit/neterr"
	"github.com/brkyvrkn/network-kit/status"
	"github.com/brkyvrkn/network-kit/transport"
)

// Event describes one finished round trip. StatusCode is zero when no
// response was received.
type Event struct {
	CallID     uuid.UUID
	Method     string
	URL        string
	StatusCode int
	Outcome    status.Outcome
	Duration   time.Duration
	Timing     transport.TimingInfo
	Err        *neterr.Error
}

// Observer is notified after every round trip. Observe must be safe for
// concurrent use.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f.
func (f ObserverFunc) Observe(e Event) {
	f(e)
}

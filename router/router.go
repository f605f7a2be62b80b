package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brkyvrkn/network-kit/endpoint"
	"github.com/brkyvrkn/network-kit/neterr"
	"github.com/brkyvrkn/network-kit/pkg/jsonpath"
	"github.com/brkyvrkn/network-kit/status"
	"github.com/brkyvrkn/network-kit/transport"
)

// Router sends endpoints and decodes successful responses into T.
// A Router is safe for concurrent use.
type Router[T any] struct {
	settings

	mu      sync.Mutex
	calls   map[uuid.UUID]*Call
	waiting bool
}

// New creates a Router.
func New[T any](opts ...Option) *Router[T] {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if s.dispatcher == nil {
		s.dispatcher = MainQueue()
	}

	return &Router[T]{
		settings: s,
		calls:    make(map[uuid.UUID]*Call),
	}
}

// Do sends ep and waits for the result. The returned error is always a
// *neterr.Error.
func (r *Router[T]) Do(ctx context.Context, ep endpoint.Endpoint) (T, error) {
	var zero T

	req, err := Build(ep)
	if err != nil {
		return zero, neterr.From(err)
	}

	call, ctx := newCall(ctx)
	r.register(call)
	defer func() {
		r.release(call)
		call.once.Do(func() {
			call.cancel()
			close(call.done)
		})
	}()

	value, nerr := r.execute(ctx, call, req)
	if nerr != nil {
		return zero, nerr
	}
	return value, nil
}

// Send sends ep in the background. Exactly one of onSuccess and onFailure
// runs, once, through the router's Dispatcher. A request that cannot be
// built fails without touching the network.
func (r *Router[T]) Send(ctx context.Context, ep endpoint.Endpoint, onSuccess func(T), onFailure func(*neterr.Error)) *Call {
	call, ctx := newCall(ctx)

	req, err := Build(ep)
	if err != nil {
		nerr := neterr.From(err)
		r.logger.Warn("request could not be built", zap.Stringer("call_id", call.id), zap.Error(nerr))
		r.deliver(call, func() {
			if onFailure != nil {
				onFailure(nerr)
			}
		})
		return call
	}

	r.register(call)

	go func() {
		value, nerr := r.execute(ctx, call, req)
		r.release(call)
		r.deliver(call, func() {
			if nerr != nil {
				if onFailure != nil {
					onFailure(nerr)
				}
				return
			}
			if onSuccess != nil {
				onSuccess(value)
			}
		})
	}()

	return call
}

// Wait suspends every in-flight call, and calls started later, until Resume.
func (r *Router[T]) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.waiting = true
	for _, call := range r.calls {
		call.Wait()
	}
}

// Resume releases calls suspended by Wait.
func (r *Router[T]) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.waiting = false
	for _, call := range r.calls {
		call.Resume()
	}
}

// Cancel aborts every in-flight call.
func (r *Router[T]) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, call := range r.calls {
		call.Cancel()
	}
}

// InFlight returns the number of calls that have not finished their round trip.
func (r *Router[T]) InFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *Router[T]) register(call *Call) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.waiting {
		call.Wait()
	}
	r.calls[call.id] = call
}

func (r *Router[T]) release(call *Call) {
	r.mu.Lock()
	delete(r.calls, call.id)
	r.mu.Unlock()
}

// deliver runs fn once through the dispatcher, then marks the call done.
func (r *Router[T]) deliver(call *Call, fn func()) {
	call.once.Do(func() {
		call.cancel()
		r.dispatcher.Dispatch(func() {
			defer close(call.done)
			fn()
		})
	})
}

// execute performs the round trip of a built request.
func (r *Router[T]) execute(ctx context.Context, call *Call, req *http.Request) (T, *neterr.Error) {
	var zero T

	start := time.Now()
	event := Event{CallID: call.id, Method: req.Method, URL: req.URL.String()}
	logger := r.logger.With(
		zap.Stringer("call_id", call.id),
		zap.String("method", req.Method),
		zap.String("url", event.URL),
	)

	finish := func(value T, nerr *neterr.Error) (T, *neterr.Error) {
		event.Duration = time.Since(start)
		event.Err = nerr
		if nerr != nil {
			logger.Warn("request failed",
				zap.Int("status", event.StatusCode),
				zap.Duration("duration", event.Duration),
				zap.Error(nerr),
			)
		} else {
			logger.Debug("request completed",
				zap.Int("status", event.StatusCode),
				zap.Duration("duration", event.Duration),
			)
		}
		for _, o := range r.observers {
			o.Observe(event)
		}
		return value, nerr
	}

	if err := call.gate.pass(ctx); err != nil {
		return finish(zero, neterr.ConnectionFailedError(err))
	}

	logger.Debug("dispatching request")
	resp, err := r.roundTrip(ctx, req)
	if err != nil {
		return finish(zero, transportError(err))
	}
	if resp == nil {
		return finish(zero, neterr.NoResponseError(errors.New("transport returned no response")))
	}

	event.StatusCode = resp.StatusCode
	event.Timing = resp.Timing
	event.Outcome = status.Classify(resp.StatusCode)

	if err := call.gate.pass(ctx); err != nil {
		return finish(zero, neterr.ConnectionFailedError(err))
	}

	return finish(r.handle(resp, event.Outcome))
}

func (r *Router[T]) roundTrip(ctx context.Context, req *http.Request) (*transport.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.transport.Do(ctx, req)
}

func transportError(err error) *neterr.Error {
	if errors.Is(err, transport.ErrUnreadableBody) {
		return neterr.NoResponseError(err)
	}
	return neterr.ConnectionFailedError(err)
}

// handle turns a classified response into a value or an error.
func (r *Router[T]) handle(resp *transport.Response, outcome status.Outcome) (T, *neterr.Error) {
	var value T

	if !outcome.IsSuccess() {
		return value, neterr.StatusError(resp.StatusCode, outcome)
	}

	body := resp.Body
	if r.resultPath != "" {
		selected, err := jsonpath.Select(body, r.resultPath)
		if err != nil {
			return value, neterr.CodingError(fmt.Errorf("selecting %s: %w", r.resultPath, err))
		}
		body = selected
	}

	if r.schema != nil {
		if err := r.schema.Validate(body); err != nil {
			return value, neterr.CodingError(fmt.Errorf("response does not match schema: %w", err))
		}
	}

	if err := r.decoder.Decode(body, &value); err != nil {
		var zero T
		return zero, neterr.CodingError(err)
	}
	return value, nil
}

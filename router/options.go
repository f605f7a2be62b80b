package router

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/brkyvrkn/network-kit/pkg/jsonschema"
	"github.com/brkyvrkn/network-kit/transport"
)

// DefaultTimeout bounds each transport round trip.
const DefaultTimeout = 25 * time.Second

// Transport sends a built request.
type Transport interface {
	Do(ctx context.Context, req *http.Request) (*transport.Response, error)
}

type settings struct {
	timeout    time.Duration
	transport  Transport
	decoder    Decoder
	dispatcher Dispatcher
	logger     *zap.Logger
	observers  []Observer
	resultPath string
	schema     *jsonschema.Schema
}

func defaultSettings() settings {
	return settings{
		timeout:   DefaultTimeout,
		transport: transport.NewClient(),
		decoder:   JSONDecoder{},
		logger:    zap.NewNop(),
	}
}

// Option configures a Router.
type Option func(*settings)

// WithTimeout sets the deadline applied to each round trip. Non-positive
// values keep the default.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithTransport replaces the default transport.Client.
func WithTransport(t Transport) Option {
	return func(s *settings) {
		if t != nil {
			s.transport = t
		}
	}
}

// WithDecoder replaces the JSON decoder.
func WithDecoder(d Decoder) Option {
	return func(s *settings) {
		if d != nil {
			s.decoder = d
		}
	}
}

// WithDispatcher sets where continuations run. Defaults to MainQueue().
func WithDispatcher(d Dispatcher) Option {
	return func(s *settings) {
		s.dispatcher = d
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithResultPath decodes only the part of a successful body found at path
// (JSONPath such as "$.data.items", or gjson syntax).
func WithResultPath(path string) Option {
	return func(s *settings) {
		s.resultPath = path
	}
}

// WithResponseSchema validates successful bodies, after the result path is
// applied, before decoding.
func WithResponseSchema(schema *jsonschema.Schema) Option {
	return func(s *settings) {
		s.schema = schema
	}
}

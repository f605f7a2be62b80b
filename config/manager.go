package config

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/brkyvrkn/network-kit/endpoint"
	"github.com/brkyvrkn/network-kit/header"
	"github.com/brkyvrkn/network-kit/neterr"
	"github.com/brkyvrkn/network-kit/router"
)

// Manager holds the settings shared by every endpoint of a process. It is
// safe for concurrent use, though it is meant to be set once at startup.
type Manager struct {
	mu          sync.RWMutex
	environment Environment
	token       string
	timeout     time.Duration
	baseURLs    map[Environment]*url.URL
}

// NewManager returns a Manager for the development environment with no
// token and no base URLs.
func NewManager() *Manager {
	return &Manager{
		environment: Development,
		timeout:     router.DefaultTimeout,
		baseURLs:    make(map[Environment]*url.URL),
	}
}

var shared = sync.OnceValue(NewManager)

// Shared returns the process-wide Manager.
func Shared() *Manager {
	return shared()
}

// Environment returns the active environment.
func (m *Manager) Environment() Environment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.environment
}

// SetEnvironment switches the active environment.
func (m *Manager) SetEnvironment(env Environment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.environment = env
}

// Token returns the authorization token, or "" when none was set.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// SetToken stores the authorization token.
func (m *Manager) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// AuthHeader returns a bearer Authorization header, or nil without a token.
func (m *Manager) AuthHeader() endpoint.Header {
	token := m.Token()
	if token == "" {
		return nil
	}
	return endpoint.Header{header.Authorization: "Bearer " + token}
}

// SetBaseURL registers the base URL of env. The URL must be absolute.
func (m *Manager) SetBaseURL(env Environment, raw string) error {
	u, err := parseBaseURL(raw)
	if err != nil {
		return neterr.EnvironmentError(fmt.Errorf("%s: %w", env, err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseURLs[env] = u
	return nil
}

// BaseURL resolves the base URL of the active environment. The returned
// URL is a copy.
func (m *Manager) BaseURL() (*url.URL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.baseURLs[m.environment]
	if !ok {
		return nil, neterr.EnvironmentError(fmt.Errorf("no base URL for environment %q", m.environment))
	}
	clone := *u
	return &clone, nil
}

// Timeout returns the round trip timeout routers should use.
func (m *Manager) Timeout() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.timeout
}

// Options returns the router options derived from the manager.
func (m *Manager) Options() []router.Option {
	return []router.Option{router.WithTimeout(m.Timeout())}
}

// Apply replaces the manager state with cfg. Nothing is changed when cfg
// is invalid.
func (m *Manager) Apply(cfg *Config) error {
	env, err := ParseEnvironment(cfg.Environment)
	if err != nil {
		return neterr.EnvironmentError(err)
	}

	baseURLs := make(map[Environment]*url.URL, len(cfg.BaseURLs))
	for name, raw := range cfg.BaseURLs {
		target, err := ParseEnvironment(name)
		if err != nil {
			return neterr.EnvironmentError(err)
		}
		u, err := parseBaseURL(raw)
		if err != nil {
			return neterr.EnvironmentError(fmt.Errorf("%s: %w", target, err))
		}
		baseURLs[target] = u
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.environment = env
	m.token = cfg.Token
	m.baseURLs = baseURLs
	if cfg.Timeout > 0 {
		m.timeout = cfg.Timeout
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", raw)
	}
	return u, nil
}

package config

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brkyvrkn/network-kit/header"
	"github.com/brkyvrkn/network-kit/neterr"
)

func TestParseEnvironment(t *testing.T) {
	for _, input := range []string{"local", "Development", " TEST ", "production"} {
		env, err := ParseEnvironment(input)
		require.NoError(t, err, input)
		assert.True(t, env.Valid())
	}

	_, err := ParseEnvironment("staging")
	assert.Error(t, err)
}

func TestManager_Defaults(t *testing.T) {
	m := NewManager()

	assert.Equal(t, Development, m.Environment())
	assert.Equal(t, "", m.Token())
	assert.Nil(t, m.AuthHeader())
	assert.Equal(t, 25*time.Second, m.Timeout())

	_, err := m.BaseURL()
	assert.ErrorIs(t, err, neterr.ErrEnvironment)
}

func TestManager_BaseURL(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.SetBaseURL(Development, "https://dev.api.example.com/v2"))
	require.NoError(t, m.SetBaseURL(Production, "https://api.example.com"))

	u, err := m.BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "https://dev.api.example.com/v2", u.String())

	u.Path = "/changed"
	again, _ := m.BaseURL()
	assert.Equal(t, "/v2", again.Path)

	m.SetEnvironment(Production)
	u, err = m.BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "api.example.com", u.Host)

	m.SetEnvironment(Local)
	_, err = m.BaseURL()
	assert.ErrorIs(t, err, neterr.ErrEnvironment)

	err = m.SetBaseURL(Test, "not a url")
	assert.ErrorIs(t, err, neterr.ErrEnvironment)
}

func TestManager_Token(t *testing.T) {
	m := NewManager()
	m.SetToken("abc")

	assert.Equal(t, "abc", m.Token())
	assert.Equal(t, "Bearer abc", m.AuthHeader()[header.Authorization])
}

func TestManager_Apply(t *testing.T) {
	m := NewManager()
	cfg := validConfig()
	cfg.Environment = "production"
	cfg.Token = "secret"
	cfg.Timeout = 3 * time.Second

	require.NoError(t, m.Apply(cfg))
	assert.Equal(t, Production, m.Environment())
	assert.Equal(t, "secret", m.Token())
	assert.Equal(t, 3*time.Second, m.Timeout())
	assert.Len(t, m.Options(), 1)

	u, err := m.BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", u.String())

	bad := validConfig()
	bad.BaseURLs["test"] = "relative/path"
	err = m.Apply(bad)
	var nerr *neterr.Error
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, neterr.Environment, nerr.Kind)
	assert.Equal(t, Production, m.Environment(), "failed Apply must not change state")
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.SetBaseURL(Development, "https://dev.api.example.com"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.SetToken("token")
		}()
		go func() {
			defer wg.Done()
			_, _ = m.BaseURL()
			_ = m.Token()
		}()
	}
	wg.Wait()
	assert.Equal(t, "token", m.Token())
}

func TestShared(t *testing.T) {
	assert.Same(t, Shared(), Shared())
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"proposal-desk/internal/common/config"
	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/common/observability"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/exporters/prometheus"
)

func testConfig(useMock bool, baseURL string) *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL:    baseURL,
			UseMockAPI: useMock,
			Timeout:    2000,
			LoginPath:  config.DefaultLoginPath,
		},
	}
}

func TestNewBackend_SimulatedNeverTouchesNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	backend := NewBackend(testConfig(true, srv.URL), Dependencies{Logger: logger.NewTestLogger(t)})
	require.Equal(t, BackendSimulated, backend.Name())

	resp, err := backend.Get(context.Background(), "/templates")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(resp.Data))

	_, ok := SimulatorOf(backend)
	assert.True(t, ok)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestNewBackend_HTTPCallsServer(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/api/templates", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"templates":[]}`))
	}))
	defer srv.Close()

	backend := NewBackend(testConfig(false, srv.URL+"/api"), Dependencies{})
	require.Equal(t, BackendHTTP, backend.Name())

	resp, err := backend.Get(context.Background(), "/templates")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))

	_, ok := SimulatorOf(backend)
	assert.False(t, ok)
}

func TestSimulatedBackend_UnknownRoute(t *testing.T) {
	backend := NewBackend(testConfig(true, ""), Dependencies{})

	_, err := backend.Delete(context.Background(), "/proposals/proposal_1")

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotImplemented))
}

func TestInstrument(t *testing.T) {
	obs := observability.New("proposal-desk-test", logger.NewTestLogger(t),
		prometheus.WithRegisterer(promclient.NewRegistry()))
	require.True(t, obs.Enabled())
	defer obs.Shutdown()

	backend := NewBackend(testConfig(true, ""), Dependencies{Observability: obs})
	_, isWrapped := backend.(*instrumented)
	assert.True(t, isWrapped)
	assert.Equal(t, BackendSimulated, backend.Name())

	_, err := backend.Post(context.Background(), "/templates", map[string]string{"title": "T", "content": "C"})
	require.NoError(t, err)

	sim, ok := SimulatorOf(backend)
	require.True(t, ok)
	assert.Len(t, sim.ListTemplates(), 1)
}

func TestInstrument_DisabledReturnsBackend(t *testing.T) {
	inner := NewSimulatedBackend(nil)
	assert.Same(t, inner, Instrument(inner, nil))
	assert.Same(t, inner, Instrument(inner, observability.Noop()))
}

func TestSimulatedBackend_EncodesBody(t *testing.T) {
	backend := NewBackend(testConfig(true, ""), Dependencies{})

	resp, err := backend.Post(context.Background(), "/auth/register", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "pw",
	})
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.Contains(t, body, "token")
	assert.Contains(t, body, "user")
}

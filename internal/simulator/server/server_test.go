package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proposal-desk/internal/common/config"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/models"
	"proposal-desk/internal/simulator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	backend := simulator.New(simulator.Options{Logger: logger.NewTestLogger(t)})
	return New(backend, nil, config.ServerConfig{}, logger.NewTestLogger(t))
}

func do(t *testing.T, s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func register(t *testing.T, s *Server) models.AuthResponse {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "pw"})
	require.Equal(t, http.StatusOK, w.Code)
	var auth models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	return auth
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/proposals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, http.MethodGet, "/api/proposals", "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	auth := register(t, s)
	w = do(t, s, http.MethodGet, "/api/proposals", auth.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRegisterConflictBody(t *testing.T) {
	s := newTestServer(t)
	register(t, s)

	w := do(t, s, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Email: "jane@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Email already registered", body["message"])
	assert.Equal(t, "CONFLICT", body["code"])
}

func TestCreateAndFetchProposal(t *testing.T) {
	s := newTestServer(t)
	auth := register(t, s)

	w := do(t, s, http.MethodPost, "/api/proposals", auth.Token, map[string]string{"clientName": "Acme", "projectTitle": "Site"})
	require.Equal(t, http.StatusOK, w.Code)
	var created models.Proposal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(t, s, http.MethodGet, "/api/proposals/"+created.ID, auth.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, "/api/proposals/proposal_nope", auth.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownRoutesAreNotImplemented(t *testing.T) {
	s := newTestServer(t)
	auth := register(t, s)

	for _, tc := range []struct{ method, path string }{
		{http.MethodDelete, "/api/proposals/proposal_1"},
		{http.MethodPatch, "/api/me"},
		{http.MethodGet, "/api/billing"},
	} {
		w := do(t, s, tc.method, tc.path, auth.Token, nil)
		assert.Equal(t, http.StatusNotImplemented, w.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, w.Body.String(), "not implemented")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/proposals", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUpdateProfile_UsesTokenOwner(t *testing.T) {
	backend := simulator.New(simulator.Options{Logger: logger.NewTestLogger(t)})
	s := New(backend, nil, config.ServerConfig{}, logger.NewTestLogger(t))

	signup := func(name, email string) models.AuthResponse {
		w := do(t, s, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Name: name, Email: email, Password: "pw"})
		require.Equal(t, http.StatusOK, w.Code)
		var auth models.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
		return auth
	}
	alice := signup("Alice", "a@x.io")
	bob := signup("Bob", "b@x.io")

	w := do(t, s, http.MethodPut, "/api/me", alice.Token, models.ProfileUpdate{Name: "Alicia"})
	require.Equal(t, http.StatusOK, w.Code)
	var renamed models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &renamed))
	assert.Equal(t, alice.User.ID, renamed.ID)
	assert.Equal(t, "Alicia", renamed.Name)

	var bobName string
	for _, u := range backend.Snapshot().Users {
		if u.ID == bob.User.ID {
			bobName = u.Name
		}
	}
	assert.Equal(t, "Bob", bobName)

	// a valid token whose user no longer exists
	backend.Seed(simulator.State{})
	w = do(t, s, http.MethodPut, "/api/me", alice.Token, models.ProfileUpdate{Name: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proposal-desk/internal/api"
	"proposal-desk/internal/common/config"
	commonerrors "proposal-desk/internal/common/errors"
	commonhttp "proposal-desk/internal/common/http"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/common/session"
	"proposal-desk/internal/models"
	"proposal-desk/internal/simulator"
	"proposal-desk/internal/simulator/server"
	"proposal-desk/internal/views/action"
	"proposal-desk/internal/views/auth/login"
	"proposal-desk/internal/views/auth/logout"
	"proposal-desk/internal/views/auth/register"
	"proposal-desk/internal/views/dashboard"
	"proposal-desk/internal/views/profile"
	"proposal-desk/internal/views/proposals/compose"
	"proposal-desk/internal/views/proposals/detail"
	"proposal-desk/internal/views/templates"
)

// recordingNavigator captures the redirects the transport asks for.
type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingNavigator) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recordingNavigator) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

type desk struct {
	session   *session.Context
	navigator *recordingNavigator
	login     *login.Handler
	register  *register.Handler
	logout    *logout.Handler
	dashboard *dashboard.Handler
	profile   *profile.Handler
	compose   *compose.Handler
	detail    *detail.Handler
	templates *templates.Handler
}

func newDesk(t *testing.T, cfg *config.Config) *desk {
	t.Helper()
	log := logger.NewTestLogger(t)
	sess := session.New(session.NewMemoryStore(), log)
	nav := &recordingNavigator{}

	backend := api.NewBackend(cfg, api.Dependencies{Session: sess, Navigator: nav, Logger: log})
	client := api.NewClient(backend, log)

	d := &desk{session: sess, navigator: nav}
	var err error
	d.login, err = login.NewHandler(login.HandlerOptions{API: client, Session: sess, Logger: log})
	require.NoError(t, err)
	d.register, err = register.NewHandler(register.HandlerOptions{API: client, Session: sess, Logger: log})
	require.NoError(t, err)
	d.logout, err = logout.NewHandler(logout.HandlerOptions{Session: sess, Logger: log})
	require.NoError(t, err)
	d.dashboard, err = dashboard.NewHandler(dashboard.HandlerOptions{API: client, Logger: log})
	require.NoError(t, err)
	d.profile, err = profile.NewHandler(profile.HandlerOptions{API: client, Session: sess, Logger: log})
	require.NoError(t, err)
	d.compose, err = compose.NewHandler(compose.HandlerOptions{API: client, Logger: log})
	require.NoError(t, err)
	d.detail, err = detail.NewHandler(detail.HandlerOptions{API: client, Logger: log})
	require.NoError(t, err)
	d.templates, err = templates.NewHandler(templates.HandlerOptions{API: client, Logger: log})
	require.NoError(t, err)
	return d
}

func simulatedConfig() *config.Config {
	return &config.Config{API: config.APIConfig{UseMockAPI: true, LoginPath: config.DefaultLoginPath}}
}

// remoteConfig starts the gin facade over a fresh simulator and points the HTTP transport at it.
func remoteConfig(t *testing.T) *config.Config {
	t.Helper()
	sim := simulator.New(simulator.Options{Logger: logger.NewTestLogger(t)})
	srv := httptest.NewServer(server.New(sim, nil, config.ServerConfig{}, logger.NewNoOpLogger()).Handler())
	t.Cleanup(srv.Close)

	return &config.Config{API: config.APIConfig{
		BaseURL:   srv.URL + server.APIPrefix,
		Timeout:   5000,
		LoginPath: config.DefaultLoginPath,
	}}
}

func TestProposalLifecycle(t *testing.T) {
	backends := []struct {
		name string
		cfg  func(t *testing.T) *config.Config
	}{
		{"simulated", func(*testing.T) *config.Config { return simulatedConfig() }},
		{"http", remoteConfig},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			d := newDesk(t, b.cfg(t))

			reg, err := d.register.Handle(ctx, register.Input{Name: "Ada", Email: "ada@example.com", Password: "secret"})
			require.NoError(t, err)
			assert.Equal(t, register.RedirectAfterRegister, reg.Redirect)
			assert.True(t, d.session.Snapshot().IsAuthenticated())

			_, err = d.register.Handle(ctx, register.Input{Name: "Ada", Email: "ada@example.com", Password: "other"})
			require.Error(t, err)
			assert.Equal(t, "Email already registered", action.Message(err))
			assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeConflict))

			board, err := d.dashboard.Handle(ctx)
			require.NoError(t, err)
			assert.Empty(t, board.Proposals)

			draft, err := d.compose.Generate(ctx, compose.Form{
				ClientName:         "Grace",
				ClientCompany:      "Acme",
				ProjectTitle:       "Website",
				ProjectDescription: "A marketing site",
				Services:           []string{"design", "build"},
			})
			require.NoError(t, err)
			assert.Empty(t, draft.Missing)

			saved, err := d.compose.Save(ctx, draft)
			require.NoError(t, err)
			assert.Equal(t, "/proposals/"+saved.Proposal.ID, saved.Redirect)

			loaded, err := d.detail.Load(ctx, saved.Proposal.ID)
			require.NoError(t, err)
			assert.Equal(t, "Website", loaded.ProjectTitle)
			assert.Contains(t, d.detail.Markdown(*loaded), "# Website")

			dup, err := d.detail.Duplicate(ctx, *loaded)
			require.NoError(t, err)
			assert.Equal(t, "Website (Copy)", dup.Proposal.ProjectTitle)
			assert.Equal(t, models.StatusDraft, dup.Proposal.Status)

			board, err = d.dashboard.Handle(ctx)
			require.NoError(t, err)
			assert.Len(t, board.Proposals, 2)
			assert.Equal(t, 2, board.Drafts)

			created, err := d.templates.Create(ctx, templates.CreateInput{Title: "Retainer", Content: "Monthly support"})
			require.NoError(t, err)
			require.Len(t, created.Templates, 1)
			form := d.templates.Apply(created.Template)
			assert.Equal(t, "Monthly support", form.ProjectDescription)

			updated, err := d.profile.Handle(ctx, profile.Input{Name: "Ada Lovelace"})
			require.NoError(t, err)
			assert.Equal(t, profile.MessageUpdated, updated.Message)
			user, ok := d.session.User()
			require.True(t, ok)
			assert.Equal(t, "Ada Lovelace", user.Name)

			out, err := d.logout.Handle(ctx)
			require.NoError(t, err)
			assert.Equal(t, logout.RedirectAfterLogout, out.Redirect)
			assert.False(t, d.session.Snapshot().IsAuthenticated())

			in, err := d.login.Handle(ctx, login.Input{Email: "ada@example.com", Password: "secret"})
			require.NoError(t, err)
			assert.Equal(t, login.RedirectAfterLogin, in.Redirect)
		})
	}
}

func TestRemoteUnauthorized_ClearsSessionAndNavigates(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t, remoteConfig(t))

	require.NoError(t, d.session.Set(ctx, "not-a-token", models.User{ID: "user_1", Email: "ada@example.com"}))

	board, err := d.dashboard.Handle(ctx)

	require.Error(t, err)
	assert.Equal(t, dashboard.MessageFailed, action.Message(err))
	assert.Empty(t, board.Proposals)
	assert.False(t, d.session.Snapshot().IsAuthenticated())
	assert.Equal(t, []string{config.DefaultLoginPath}, d.navigator.Paths())
}

func TestRemoteLoginFailure_ShowsServerMessage(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t, remoteConfig(t))

	_, err := d.login.Handle(ctx, login.Input{Email: "nobody@example.com", Password: "secret"})

	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", action.Message(err))
	assert.False(t, d.session.Snapshot().IsAuthenticated())
}

var _ commonhttp.Navigator = (*recordingNavigator)(nil)

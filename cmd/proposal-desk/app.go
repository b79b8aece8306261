package main

import (
	"context"
	"fmt"
	"io"

	"proposal-desk/internal/api"
	"proposal-desk/internal/common/config"
	commonhttp "proposal-desk/internal/common/http"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/common/observability"
	"proposal-desk/internal/common/session"
	"proposal-desk/internal/render"
	"proposal-desk/internal/views/auth/login"
	"proposal-desk/internal/views/auth/logout"
	"proposal-desk/internal/views/auth/register"
	"proposal-desk/internal/views/dashboard"
	"proposal-desk/internal/views/profile"
	"proposal-desk/internal/views/proposals/compose"
	"proposal-desk/internal/views/proposals/detail"
	"proposal-desk/internal/views/templates"
)

// App wires one backend, one session and every view handler.
type App struct {
	cfg      *config.Config
	log      logger.Logger
	out      io.Writer
	store    session.Store
	session  *session.Context
	obs      *observability.Observability
	backend  api.Backend
	client   *api.Client
	renderer *render.Renderer

	// lastDraft is the most recent generated, unsaved proposal.
	lastDraft *compose.Draft

	login     *login.Handler
	register  *register.Handler
	logout    *logout.Handler
	dashboard *dashboard.Handler
	profile   *profile.Handler
	compose   *compose.Handler
	detail    *detail.Handler
	templates *templates.Handler
}

type AppOptions struct {
	Config   *config.Config
	Logger   logger.Logger
	Out      io.Writer
	Store    session.Store
	Renderer *render.Renderer
}

func NewApp(ctx context.Context, opts AppOptions) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	store := opts.Store
	if store == nil {
		var err error
		store, err = session.NewStore(ctx, opts.Config.Session)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
	}

	sess := session.New(store, log.WithFields(map[string]interface{}{"component": "session"}))
	if err := sess.Load(ctx); err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}

	a := &App{
		cfg:      opts.Config,
		log:      log,
		out:      opts.Out,
		store:    store,
		session:  sess,
		obs:      observability.New(opts.Config.App.Name, log),
		renderer: opts.Renderer,
	}
	if a.renderer == nil {
		a.renderer = render.New(false, 0)
	}

	a.backend = api.NewBackend(opts.Config, api.Dependencies{
		Session:       sess,
		Navigator:     commonhttp.NavigatorFunc(a.navigate),
		Logger:        log,
		Observability: a.obs,
	})
	a.client = api.NewClient(a.backend, log)

	if err := a.buildHandlers(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) buildHandlers() error {
	var err error
	if a.login, err = login.NewHandler(login.HandlerOptions{API: a.client, Session: a.session, Logger: a.log}); err != nil {
		return err
	}
	if a.register, err = register.NewHandler(register.HandlerOptions{API: a.client, Session: a.session, Logger: a.log}); err != nil {
		return err
	}
	if a.logout, err = logout.NewHandler(logout.HandlerOptions{Session: a.session, Logger: a.log}); err != nil {
		return err
	}
	if a.dashboard, err = dashboard.NewHandler(dashboard.HandlerOptions{API: a.client, Logger: a.log}); err != nil {
		return err
	}
	if a.profile, err = profile.NewHandler(profile.HandlerOptions{API: a.client, Session: a.session, Logger: a.log}); err != nil {
		return err
	}
	if a.compose, err = compose.NewHandler(compose.HandlerOptions{API: a.client, Logger: a.log}); err != nil {
		return err
	}
	if a.detail, err = detail.NewHandler(detail.HandlerOptions{API: a.client, Logger: a.log}); err != nil {
		return err
	}
	if a.templates, err = templates.NewHandler(templates.HandlerOptions{API: a.client, Logger: a.log}); err != nil {
		return err
	}
	return nil
}

// navigate is called by the transport after a 401 cleared the session.
func (a *App) navigate(path string) {
	fmt.Fprintf(a.out, "Session expired. Redirecting to %s\n", path)
}

// Close releases the session store and metric exporter.
func (a *App) Close() error {
	a.obs.Shutdown()
	return a.store.Close()
}

// Package simulator is an in-memory stand-in for the remote proposal API. State lives for the life of
// the process.
package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"proposal-desk/internal/common/config"
	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/common/metrics"
	"proposal-desk/internal/models"
	"proposal-desk/pkg/registry"
)

type Options struct {
	ReadLatency     time.Duration
	WriteLatency    time.Duration
	GenerateLatency time.Duration
	TokenSecret     string
	TokenTTL        time.Duration
	Registry        *registry.RouteRegistry
	Logger          logger.Logger
	Now             func() time.Time
}

// OptionsFromConfig maps the simulator section of the configuration.
func OptionsFromConfig(cfg config.SimulatorConfig) Options {
	return Options{
		ReadLatency:     config.GetDuration(cfg.ReadLatency),
		WriteLatency:    config.GetDuration(cfg.WriteLatency),
		GenerateLatency: config.GetDuration(cfg.GenerateLatency),
		TokenSecret:     cfg.TokenSecret,
		TokenTTL:        time.Duration(cfg.TokenTTL) * time.Minute,
	}
}

// Result is a successful simulated reply.
type Result struct {
	Status int
	Data   json.RawMessage
}

// Backend holds the simulated users, proposals and templates. Collections are guarded by mu because
// the HTTP facade serves requests concurrently.
type Backend struct {
	mu        sync.Mutex
	users     []models.User
	proposals []models.Proposal
	templates []models.Template
	current   *models.User

	latency  map[registry.LatencyClass]time.Duration
	tokens   *tokenIssuer
	registry *registry.RouteRegistry
	logger   logger.Logger
	now      func() time.Time
}

func New(opts Options) *Backend {
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Backend{
		latency: map[registry.LatencyClass]time.Duration{
			registry.LatencyRead:     opts.ReadLatency,
			registry.LatencyWrite:    opts.WriteLatency,
			registry.LatencyGenerate: opts.GenerateLatency,
		},
		tokens:   newTokenIssuer(opts.TokenSecret, opts.TokenTTL, now),
		registry: reg,
		logger:   log,
		now:      now,
	}
}

func (b *Backend) Get(ctx context.Context, path string) (*Result, error) {
	return b.Do(ctx, http.MethodGet, path, nil)
}

func (b *Backend) Post(ctx context.Context, path string, body []byte) (*Result, error) {
	return b.Do(ctx, http.MethodPost, path, body)
}

func (b *Backend) Put(ctx context.Context, path string, body []byte) (*Result, error) {
	return b.Do(ctx, http.MethodPut, path, body)
}

func (b *Backend) Delete(ctx context.Context, path string) (*Result, error) {
	return b.Do(ctx, http.MethodDelete, path, nil)
}

// Do serves one request. Routes outside the registry fail with NOT_IMPLEMENTED before any delay.
func (b *Backend) Do(ctx context.Context, method, path string, body []byte) (*Result, error) {
	route, params, ok := b.registry.Match(method, path)
	if !ok {
		metrics.SimulatorRequests.WithLabelValues("unknown", "not_implemented").Inc()
		b.logger.Warn("Simulated route not implemented", map[string]interface{}{
			"method": method,
			"path":   path,
		})
		return nil, errors.NewNotImplementedError(method, path)
	}

	if err := b.delay(ctx, route.Latency); err != nil {
		return nil, err
	}

	value, err := b.dispatch(ctx, route.Operation, params, body)
	if err != nil {
		metrics.SimulatorRequests.WithLabelValues(route.Operation, "error").Inc()
		return nil, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, errors.NewStatusError(http.StatusInternalServerError, "", err.Error())
	}
	metrics.SimulatorRequests.WithLabelValues(route.Operation, "ok").Inc()
	b.logger.Debug("Simulated request served", map[string]interface{}{
		"operation": route.Operation,
		"method":    method,
		"path":      path,
	})
	return &Result{Status: http.StatusOK, Data: data}, nil
}

func (b *Backend) dispatch(ctx context.Context, op string, params registry.Params, body []byte) (interface{}, error) {
	switch op {
	case registry.OpRegister:
		var req models.RegisterRequest
		if err := decodeBody(body, &req); err != nil {
			return nil, err
		}
		return b.Register(req)
	case registry.OpLogin:
		var req models.LoginRequest
		if err := decodeBody(body, &req); err != nil {
			return nil, err
		}
		return b.Login(req)
	case registry.OpListProposals:
		return b.ListProposals(), nil
	case registry.OpGetProposal:
		return b.GetProposal(params["id"])
	case registry.OpCreateProposal:
		var p models.Proposal
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		return b.CreateProposal(p), nil
	case registry.OpGenerateProposal:
		var req models.GenerateRequest
		if err := decodeBody(body, &req); err != nil {
			return nil, err
		}
		return Generate(req), nil
	case registry.OpListTemplates:
		return b.ListTemplates(), nil
	case registry.OpCreateTemplate:
		var req models.TemplateCreate
		if err := decodeBody(body, &req); err != nil {
			return nil, err
		}
		return b.CreateTemplate(req), nil
	case registry.OpUpdateProfile:
		var req models.ProfileUpdate
		if err := decodeBody(body, &req); err != nil {
			return nil, err
		}
		if userID, ok := SubjectFrom(ctx); ok {
			return b.UpdateProfileFor(userID, req.Name)
		}
		return b.UpdateProfile(req.Name)
	}
	return nil, errors.NewNotImplementedError("operation", op)
}

type subjectKey struct{}

// WithSubject marks ctx as acting for the user a verified bearer token belongs to.
func WithSubject(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, subjectKey{}, userID)
}

// SubjectFrom returns the user id set by WithSubject.
func SubjectFrom(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(subjectKey{}).(string)
	return userID, ok && userID != ""
}

// delay waits for the latency of class, giving up when ctx ends.
func (b *Backend) delay(ctx context.Context, class registry.LatencyClass) error {
	d := b.latency[class]
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return errors.NewNetworkError(ctx.Err())
	case <-timer.C:
		return nil
	}
}

func decodeBody(body []byte, into interface{}) error {
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, into); err != nil {
		return errors.NewStatusError(http.StatusBadRequest, "Invalid request body", fmt.Sprintf("decode: %v", err))
	}
	return nil
}

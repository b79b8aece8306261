// Package api presents the remote proposal API through one four-verb Backend chosen at startup, and a
// typed Client over it.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"proposal-desk/internal/common/config"
	"proposal-desk/internal/common/errors"
	commonhttp "proposal-desk/internal/common/http"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/common/observability"
	"proposal-desk/internal/simulator"
)

// Response is a successful reply with its undecoded JSON body.
type Response struct {
	Status int
	Data   json.RawMessage
}

// Backend is the capability both the live transport and the simulator provide.
type Backend interface {
	Get(ctx context.Context, path string) (*Response, error)
	Post(ctx context.Context, path string, body interface{}) (*Response, error)
	Put(ctx context.Context, path string, body interface{}) (*Response, error)
	Delete(ctx context.Context, path string) (*Response, error)
	Name() string
}

const (
	BackendHTTP      = "http"
	BackendSimulated = "simulated"
)

// HTTPBackend adapts the transport client.
type HTTPBackend struct {
	client *commonhttp.Client
}

func NewHTTPBackend(client *commonhttp.Client) *HTTPBackend {
	return &HTTPBackend{client: client}
}

func (h *HTTPBackend) Name() string { return BackendHTTP }

func (h *HTTPBackend) Get(ctx context.Context, path string) (*Response, error) {
	return fromHTTP(h.client.Get(ctx, path))
}

func (h *HTTPBackend) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return fromHTTP(h.client.Post(ctx, path, body))
}

func (h *HTTPBackend) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return fromHTTP(h.client.Put(ctx, path, body))
}

func (h *HTTPBackend) Delete(ctx context.Context, path string) (*Response, error) {
	return fromHTTP(h.client.Delete(ctx, path))
}

func fromHTTP(resp *commonhttp.Response, err error) (*Response, error) {
	if err != nil {
		return nil, err
	}
	return &Response{Status: resp.Status, Data: resp.Body}, nil
}

// SimulatedBackend adapts the in-memory simulator.
type SimulatedBackend struct {
	sim *simulator.Backend
}

func NewSimulatedBackend(sim *simulator.Backend) *SimulatedBackend {
	return &SimulatedBackend{sim: sim}
}

func (s *SimulatedBackend) Name() string { return BackendSimulated }

// Simulator exposes the wrapped simulator.
func (s *SimulatedBackend) Simulator() *simulator.Backend { return s.sim }

func (s *SimulatedBackend) Get(ctx context.Context, path string) (*Response, error) {
	return fromSim(s.sim.Get(ctx, path))
}

func (s *SimulatedBackend) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	data, err := marshal(body)
	if err != nil {
		return nil, err
	}
	return fromSim(s.sim.Post(ctx, path, data))
}

func (s *SimulatedBackend) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	data, err := marshal(body)
	if err != nil {
		return nil, err
	}
	return fromSim(s.sim.Put(ctx, path, data))
}

func (s *SimulatedBackend) Delete(ctx context.Context, path string) (*Response, error) {
	return fromSim(s.sim.Delete(ctx, path))
}

func fromSim(res *simulator.Result, err error) (*Response, error) {
	if err != nil {
		return nil, err
	}
	return &Response{Status: res.Status, Data: res.Data}, nil
}

func marshal(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("cannot encode request body: %v", err), nil)
	}
	return data, nil
}

// Dependencies are the collaborators the selector wires into whichever backend it builds.
type Dependencies struct {
	Session       commonhttp.Session
	Navigator     commonhttp.Navigator
	Logger        logger.Logger
	Observability *observability.Observability
}

// NewBackend chooses the backend once from cfg.API.UseMockAPI. The choice is never re-evaluated.
func NewBackend(cfg *config.Config, deps Dependencies) Backend {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	var backend Backend
	if cfg.API.UseMockAPI {
		opts := simulator.OptionsFromConfig(cfg.Simulator)
		opts.Logger = log.WithFields(map[string]interface{}{"component": "simulator"})
		backend = NewSimulatedBackend(simulator.New(opts))
		log.Info("Using simulated API, backend not required", map[string]interface{}{
			"backend": BackendSimulated,
		})
	} else {
		client := commonhttp.NewClient(commonhttp.Options{
			BaseURL:   cfg.API.BaseURL,
			Timeout:   config.GetDuration(cfg.API.Timeout),
			LoginPath: cfg.API.LoginPath,
			Session:   deps.Session,
			Navigator: deps.Navigator,
			Logger:    log.WithFields(map[string]interface{}{"component": "transport"}),
		})
		backend = NewHTTPBackend(client)
		log.Info("Using remote API", map[string]interface{}{
			"backend": BackendHTTP,
			"baseUrl": cfg.API.BaseURL,
		})
	}

	return Instrument(backend, deps.Observability)
}

// Instrument records every call of backend through obs.
func Instrument(backend Backend, obs *observability.Observability) Backend {
	if obs == nil || !obs.Enabled() {
		return backend
	}
	return &instrumented{next: backend, obs: obs}
}

type instrumented struct {
	next Backend
	obs  *observability.Observability
}

func (i *instrumented) Name() string { return i.next.Name() }

// Unwrap returns the instrumented backend.
func (i *instrumented) Unwrap() Backend { return i.next }

func (i *instrumented) Get(ctx context.Context, path string) (*Response, error) {
	return i.record(ctx, "GET", func() (*Response, error) { return i.next.Get(ctx, path) })
}

func (i *instrumented) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return i.record(ctx, "POST", func() (*Response, error) { return i.next.Post(ctx, path, body) })
}

func (i *instrumented) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return i.record(ctx, "PUT", func() (*Response, error) { return i.next.Put(ctx, path, body) })
}

func (i *instrumented) Delete(ctx context.Context, path string) (*Response, error) {
	return i.record(ctx, "DELETE", func() (*Response, error) { return i.next.Delete(ctx, path) })
}

func (i *instrumented) record(ctx context.Context, method string, call func() (*Response, error)) (*Response, error) {
	start := time.Now()
	resp, err := call()
	outcome := "ok"
	if err != nil {
		outcome = string(errors.Normalize(err).Code)
	}
	i.obs.RecordCall(ctx, i.next.Name(), method, outcome)
	i.obs.RecordDuration(ctx, time.Since(start), i.next.Name(), method)
	return resp, err
}

// SimulatorOf returns the simulator behind backend, if it is the simulated one.
func SimulatorOf(backend Backend) (*simulator.Backend, bool) {
	for {
		switch b := backend.(type) {
		case *SimulatedBackend:
			return b.sim, true
		case interface{ Unwrap() Backend }:
			backend = b.Unwrap()
		default:
			return nil, false
		}
	}
}

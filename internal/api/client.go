package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/models"
	"proposal-desk/internal/normalize"
)

// Client offers the typed operations of the proposal API over a Backend.
type Client struct {
	backend    Backend
	normalizer *normalize.Normalizer
	logger     logger.Logger
}

func NewClient(backend Backend, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Client{backend: backend, normalizer: normalize.New(log), logger: log}
}

// Backend returns the backend chosen at startup.
func (c *Client) Backend() Backend { return c.backend }

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	return out, c.call(ctx, "POST", "/auth/register", req, &out)
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	return out, c.call(ctx, "POST", "/auth/login", req, &out)
}

// ListProposals accepts a bare array or one wrapped under proposals, data or items. warned reports an
// unrecognized shape, which yields an empty list.
func (c *Client) ListProposals(ctx context.Context) (proposals []models.Proposal, warned bool, err error) {
	resp, err := c.backend.Get(ctx, "/proposals")
	if err != nil {
		return nil, false, err
	}
	proposals, warned = normalize.DecodeCollection[models.Proposal](c.normalizer, resp.Data, "proposals")
	return proposals, warned, nil
}

func (c *Client) GetProposal(ctx context.Context, id string) (models.Proposal, error) {
	var out models.Proposal
	return out, c.call(ctx, "GET", "/proposals/"+url.PathEscape(id), nil, &out)
}

func (c *Client) CreateProposal(ctx context.Context, p models.Proposal) (models.Proposal, error) {
	var out models.Proposal
	return out, c.call(ctx, "POST", "/proposals", p, &out)
}

// DuplicateSuffix is appended to the title of a duplicated proposal.
const DuplicateSuffix = " (Copy)"

// DuplicateProposal resends source as a new proposal with the title suffixed and status reset to draft.
func (c *Client) DuplicateProposal(ctx context.Context, source models.Proposal) (models.Proposal, error) {
	dup := source
	dup.ProjectTitle = source.ProjectTitle + DuplicateSuffix
	dup.Status = models.StatusDraft
	return c.CreateProposal(ctx, dup)
}

// GenerateProposal returns the generated sections, unwrapped from data or sections when nested.
// missing lists absent sections; they are not an error.
func (c *Client) GenerateProposal(ctx context.Context, req models.GenerateRequest) (set models.SectionSet, missing []string, err error) {
	resp, err := c.backend.Post(ctx, "/ai/generate-proposal", req)
	if err != nil {
		return models.SectionSet{}, nil, err
	}
	return c.normalizer.UnwrapSectionSet(resp.Data)
}

func (c *Client) ListTemplates(ctx context.Context) (templates []models.Template, warned bool, err error) {
	resp, err := c.backend.Get(ctx, "/templates")
	if err != nil {
		return nil, false, err
	}
	templates, warned = normalize.DecodeCollection[models.Template](c.normalizer, resp.Data, "templates")
	return templates, warned, nil
}

func (c *Client) CreateTemplate(ctx context.Context, req models.TemplateCreate) (models.Template, error) {
	var out models.Template
	return out, c.call(ctx, "POST", "/templates", req, &out)
}

func (c *Client) UpdateProfile(ctx context.Context, name string) (models.User, error) {
	var out models.User
	return out, c.call(ctx, "PUT", "/me", models.ProfileUpdate{Name: name}, &out)
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	var (
		resp *Response
		err  error
	)
	switch method {
	case "GET":
		resp, err = c.backend.Get(ctx, path)
	case "POST":
		resp, err = c.backend.Post(ctx, path, body)
	case "PUT":
		resp, err = c.backend.Put(ctx, path, body)
	case "DELETE":
		resp, err = c.backend.Delete(ctx, path)
	default:
		return errors.NewNotImplementedError(method, path)
	}
	if err != nil {
		return err
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return errors.NewInvalidResponseError(fmt.Sprintf("%s %s: %v", method, path, err))
	}
	return nil
}

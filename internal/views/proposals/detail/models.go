package detail

import (
	"context"

	"proposal-desk/internal/models"
)

type DuplicateOutput struct {
	Proposal models.Proposal `json:"proposal"`
	Redirect string          `json:"redirect"`
}

type API interface {
	GetProposal(ctx context.Context, id string) (models.Proposal, error)
	DuplicateProposal(ctx context.Context, source models.Proposal) (models.Proposal, error)
}

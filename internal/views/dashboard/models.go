package dashboard

import (
	"context"

	"proposal-desk/internal/models"
)

// Output is what the dashboard lists. Proposals is never nil.
type Output struct {
	Proposals []models.Proposal `json:"proposals"`
	Drafts    int               `json:"drafts"`
	Sent      int               `json:"sent"`
}

type API interface {
	ListProposals(ctx context.Context) ([]models.Proposal, bool, error)
}

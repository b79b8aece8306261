package compose

import (
	"context"

	"proposal-desk/internal/models"
)

// Form is the new-proposal form as entered.
type Form struct {
	ClientName         string      `json:"clientName"`
	ClientCompany      string      `json:"clientCompany"`
	ProjectTitle       string      `json:"projectTitle"`
	ProjectDescription string      `json:"projectDescription"`
	BudgetRange        string      `json:"budgetRange"`
	Timeline           string      `json:"timeline"`
	Services           []string    `json:"services"`
	Tone               models.Tone `json:"tone"`
}

// Draft is a generated, not yet saved, proposal.
type Draft struct {
	Form     Form              `json:"form"`
	Sections models.SectionSet `json:"sections"`
	Missing  []string          `json:"missing,omitempty"`
}

type SaveOutput struct {
	Proposal models.Proposal `json:"proposal"`
	Redirect string          `json:"redirect"`
}

type API interface {
	GenerateProposal(ctx context.Context, req models.GenerateRequest) (models.SectionSet, []string, error)
	CreateProposal(ctx context.Context, p models.Proposal) (models.Proposal, error)
}

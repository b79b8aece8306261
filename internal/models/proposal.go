package models

import "time"

// ProposalStatus is draft until the proposal is sent to the client.
type ProposalStatus string

const (
	StatusDraft ProposalStatus = "draft"
	StatusSent  ProposalStatus = "sent"
)

// IDPrefixProposal namespaces proposal identifiers.
const IDPrefixProposal = "proposal_"

type Proposal struct {
	ID            string         `json:"id,omitempty"`
	ClientName    string         `json:"clientName"`
	ClientCompany string         `json:"clientCompany,omitempty"`
	ProjectTitle  string         `json:"projectTitle"`
	Status        ProposalStatus `json:"status,omitempty"`
	CreatedAt     string         `json:"createdAt,omitempty"`

	ScopeOfWork  SectionValue `json:"scopeOfWork,omitempty"`
	Deliverables SectionValue `json:"deliverables,omitempty"`
	Timeline     SectionValue `json:"timeline,omitempty"`
	Pricing      SectionValue `json:"pricing,omitempty"`
	Terms        SectionValue `json:"terms,omitempty"`

	// Compose inputs sent along when a generated proposal is saved.
	ProjectDescription string   `json:"projectDescription,omitempty"`
	BudgetRange        string   `json:"budgetRange,omitempty"`
	Services           []string `json:"services,omitempty"`
	Tone               Tone     `json:"tone,omitempty"`
}

// Sections returns the five content sections.
func (p Proposal) Sections() SectionSet {
	return SectionSet{
		ScopeOfWork:  p.ScopeOfWork,
		Deliverables: p.Deliverables,
		Timeline:     p.Timeline,
		Pricing:      p.Pricing,
		Terms:        p.Terms,
	}
}

// WithSections replaces the five content sections.
func (p Proposal) WithSections(s SectionSet) Proposal {
	p.ScopeOfWork = s.ScopeOfWork
	p.Deliverables = s.Deliverables
	p.Timeline = s.Timeline
	p.Pricing = s.Pricing
	p.Terms = s.Terms
	return p
}

// Created parses CreatedAt. Servers are not required to send RFC 3339.
func (p Proposal) Created() (time.Time, bool) {
	return parseTimestamp(p.CreatedAt)
}

// ClientLabel is the client name followed by the company in parentheses, when known.
func (p Proposal) ClientLabel() string {
	if p.ClientCompany == "" {
		return p.ClientName
	}
	return p.ClientName + " (" + p.ClientCompany + ")"
}

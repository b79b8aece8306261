package models

// Tone steers the wording of a generated proposal.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneBold         Tone = "bold"
	ToneMinimal      Tone = "minimal"
)

// Tones lists the accepted tones.
var Tones = []Tone{ToneProfessional, ToneFriendly, ToneBold, ToneMinimal}

// GenerateRequest is the body of the AI generation call. Optional fields are omitted when empty.
type GenerateRequest struct {
	ClientName         string   `json:"clientName"`
	ProjectTitle       string   `json:"projectTitle"`
	ProjectDescription string   `json:"projectDescription"`
	Tone               Tone     `json:"tone"`
	ClientCompany      string   `json:"clientCompany,omitempty"`
	BudgetRange        string   `json:"budgetRange,omitempty"`
	Timeline           string   `json:"timeline,omitempty"`
	Services           []string `json:"services,omitempty"`
}

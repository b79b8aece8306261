package models

// IDPrefixTemplate namespaces template identifiers.
const IDPrefixTemplate = "template_"

// Template is reusable free text that can seed a new proposal.
type Template struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

type TemplateCreate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

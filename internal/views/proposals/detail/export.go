package detail

import (
	"strings"

	"proposal-desk/internal/models"
	"proposal-desk/internal/normalize"
)

// Markdown renders the whole proposal as a markdown document.
func Markdown(p models.Proposal) string {
	var b strings.Builder
	b.WriteString("# " + p.ProjectTitle + "\n\n")
	b.WriteString("**Client:** " + p.ClientLabel() + "  \n")
	b.WriteString("**Status:** " + p.Status.Label() + "  \n")
	b.WriteString("**Created:** " + models.NumericDate(p.CreatedAt) + "\n\n")
	b.WriteString("---\n")

	sections := p.Sections()
	for _, sec := range models.SectionOrder {
		b.WriteString("\n## " + sec.Title + "\n\n")
		b.WriteString(normalize.Canonicalize(sections.Get(sec.Key)))
		b.WriteString("\n")
	}
	return b.String()
}

// PlainText renders the proposal for the clipboard, headings upper-cased.
func PlainText(p models.Proposal) string {
	var b strings.Builder
	b.WriteString("PROPOSAL: " + p.ProjectTitle + "\n")
	b.WriteString("Client: " + p.ClientLabel() + "\n")

	sections := p.Sections()
	for _, sec := range models.SectionOrder {
		b.WriteString("\n" + strings.ToUpper(sec.Title) + "\n")
		b.WriteString(normalize.Canonicalize(sections.Get(sec.Key)))
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

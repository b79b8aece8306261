// Package render prints exported proposals in the terminal.
package render

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const DefaultWordWrap = 80

// Renderer styles markdown with glamour. Without a renderer it passes text through unchanged.
type Renderer struct {
	tr *glamour.TermRenderer
}

// New builds a styled renderer. styled false yields a pass-through renderer.
func New(styled bool, width int) *Renderer {
	if !styled {
		return &Renderer{}
	}
	if width <= 0 {
		width = DefaultWordWrap
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &Renderer{}
	}
	return &Renderer{tr: tr}
}

// ForStdout styles output only when stdout is a terminal, so piped exports stay plain markdown.
func ForStdout() *Renderer {
	return New(IsStdoutTTY(), DefaultWordWrap)
}

func (r *Renderer) Styled() bool { return r != nil && r.tr != nil }

// Render returns md styled for the terminal, or md itself when styling is off or fails.
func (r *Renderer) Render(md string) string {
	if !r.Styled() {
		return md
	}
	out, err := r.tr.Render(md)
	if err != nil {
		return md
	}
	return out
}

func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_PassThrough(t *testing.T) {
	r := New(false, 0)

	assert.False(t, r.Styled())
	assert.Equal(t, "# Title\n", r.Render("# Title\n"))
}

func TestRender_Styled(t *testing.T) {
	r := New(true, 60)

	if !r.Styled() {
		t.Skip("glamour renderer unavailable")
	}
	out := r.Render("# Website Redesign\n\n**Client:** Jane\n")
	assert.Contains(t, out, "Website Redesign")
	assert.Contains(t, out, "Jane")
}

func TestRender_NilRenderer(t *testing.T) {
	var r *Renderer
	assert.Equal(t, "text", r.Render("text"))
}

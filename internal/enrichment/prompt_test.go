package enrichment

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPromptEmbedsTask(t *testing.T) {
	t.Parallel()

	p, err := LoadPrompt("")
	require.NoError(t, err)

	out, err := p.Render("Buy milk", "2% from the corner store")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "2% from the corner store")
	assert.Contains(t, out, "separated by commas")
}

func TestLoadPromptFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("tags for [{{.Title}}|{{.Description}}]"), 0o600))

	p, err := LoadPrompt(path)
	require.NoError(t, err)

	out, err := p.Render("a", "b")
	require.NoError(t, err)
	assert.Equal(t, "tags for [a|b]", out)
}

func TestLoadPromptErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadPrompt(filepath.Join(t.TempDir(), "missing.tmpl"))
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = ParsePrompt("broken", "{{.Title")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestPromptDoesNotEscapeHTML(t *testing.T) {
	t.Parallel()

	p, err := ParsePrompt("plain", "{{.Title}}")
	require.NoError(t, err)

	out, err := p.Render("<b>R&D</b>", "")
	require.NoError(t, err)
	assert.Equal(t, "<b>R&D</b>", out)
}

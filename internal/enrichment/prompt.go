package enrichment

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

// Prompt renders the instruction sent to the language model.
type Prompt struct {
	tmpl *template.Template
}

type promptData struct {
	Title       string
	Description string
}

// LoadPrompt parses the template at path, or the built-in template when path
// is empty. The template sees the fields .Title and .Description.
func LoadPrompt(path string) (*Prompt, error) {
	text := defaultPromptTemplate
	name := "default"
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				ErrInvalidConfig, path, err)
		}
		text = string(content)
		name = path
	}

	return ParsePrompt(name, text)
}

// ParsePrompt parses text as a prompt template.
func ParsePrompt(name, text string) (*Prompt, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}
	return &Prompt{tmpl: tmpl}, nil
}

// Render executes the template for one task.
func (p *Prompt) Render(title, description string) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, promptData{Title: title, Description: description}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

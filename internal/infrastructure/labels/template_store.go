// Package labels renders shipping labels as ZPL documents. The template
// ships embedded with the binary and can be overridden with an external
// file for per-warehouse layout tweaks.
package labels

import (
	"embed"
	"fmt"
	"os"
)

//go:embed templates/*.zpl
var templateFS embed.FS

const embeddedTemplatePath = "templates/etiqueta.zpl"

// TemplateStoreConfig configures the template store
type TemplateStoreConfig struct {
	// ExternalPath is a file to load the label template from.
	// If empty or the file doesn't exist, the embedded template is used.
	ExternalPath string
}

// TemplateStore holds the label template content.
type TemplateStore struct {
	content string
}

// NewTemplateStore loads the label template, preferring the external file
// when configured and present.
func NewTemplateStore(config *TemplateStoreConfig) (*TemplateStore, error) {
	if config != nil && config.ExternalPath != "" {
		content, err := os.ReadFile(config.ExternalPath)
		if err == nil {
			return &TemplateStore{content: string(content)}, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("labels: reading external template: %w", err)
		}
	}

	content, err := templateFS.ReadFile(embeddedTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("labels: reading embedded template: %w", err)
	}
	return &TemplateStore{content: string(content)}, nil
}

// Content returns the raw template text.
func (s *TemplateStore) Content() string {
	return s.content
}

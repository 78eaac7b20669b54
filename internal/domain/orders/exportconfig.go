package orders

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// ExportConfig describes one export definition of the legacy ERP service:
// which report to request, how its source columns map to canonical names and
// which label tags the resulting records carry. Configs are validated once at
// load time so the pipeline can rely on their shape.
type ExportConfig struct {
	// ExportID selects the report definition on the ERP side.
	ExportID int `validate:"required,gt=0"`
	// ColumnMapping renames source columns to canonical names. Source
	// columns without a mapping are dropped during extraction.
	ColumnMapping map[string]string `validate:"required,min=1"`
	// FinalColumns is the ordered canonical column list of the export.
	FinalColumns []string `validate:"required,min=1"`
	// SourceName tags every grouped order produced from this export.
	SourceName string `validate:"required"`
}

var exportConfigValidate = validator.New()

// requiredCanonicalColumns must be reachable through the column mapping for
// grouping and enrichment to work.
var requiredCanonicalColumns = []string{ColOrderID, ColQuantity}

// Validate checks structural completeness of the configuration.
func (c ExportConfig) Validate() error {
	if err := exportConfigValidate.Struct(c); err != nil {
		return fmt.Errorf("export config %d: %w", c.ExportID, err)
	}

	mapped := make(map[string]bool, len(c.ColumnMapping))
	for _, canonical := range c.ColumnMapping {
		mapped[canonical] = true
	}
	for _, col := range requiredCanonicalColumns {
		if !mapped[col] {
			return fmt.Errorf("export config %d: column mapping does not produce required column %q", c.ExportID, col)
		}
	}
	for _, col := range c.FinalColumns {
		if col == "" {
			return fmt.Errorf("export config %d: final column list contains an empty name", c.ExportID)
		}
	}
	return nil
}

// ExportRegistry holds the validated export configurations keyed by export id.
type ExportRegistry struct {
	configs map[int]ExportConfig
}

// NewExportRegistry validates every configuration and builds the registry.
func NewExportRegistry(configs []ExportConfig) (*ExportRegistry, error) {
	r := &ExportRegistry{configs: make(map[int]ExportConfig, len(configs))}
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.configs[cfg.ExportID]; exists {
			return nil, fmt.Errorf("export config %d: duplicate export id", cfg.ExportID)
		}
		r.configs[cfg.ExportID] = cfg
	}
	return r, nil
}

// Get returns the configuration for an export id.
func (r *ExportRegistry) Get(exportID int) (ExportConfig, error) {
	cfg, ok := r.configs[exportID]
	if !ok {
		return ExportConfig{}, fmt.Errorf("%w: %d", ErrExportNotConfigured, exportID)
	}
	return cfg, nil
}

// IDs returns the configured export ids in ascending order.
func (r *ExportRegistry) IDs() []int {
	ids := make([]int, 0, len(r.configs))
	for id := range r.configs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

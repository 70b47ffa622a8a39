// Package gpufamily provides the GPU architecture family catalog
// (Ada Lovelace, RDNA 3 and so on).
package gpufamily

import (
	"context"

	"gpustock/internal/core/entity"
)

// GpuFamily represents a GPU architecture family.
type GpuFamily struct {
	entity.Catalog

	// Notes is optional free-form vendor/architecture notes
	Notes *string `db:"notes" json:"notes,omitempty"`
}

// New creates a GpuFamily with required fields.
func New(name string) *GpuFamily {
	return &GpuFamily{
		Catalog: entity.NewCatalog(name),
	}
}

// Validate implements entity.Validatable interface.
func (f *GpuFamily) Validate(ctx context.Context) error {
	return f.Catalog.Validate(ctx)
}

// Package memorytype provides the video memory type catalog
// (GDDR6, GDDR6X, HBM2e and so on).
package memorytype

import (
	"context"

	"gpustock/internal/core/entity"
)

// MemoryType represents a kind of video memory.
type MemoryType struct {
	entity.Catalog

	// Description is optional free-form text
	Description *string `db:"description" json:"description,omitempty"`
}

// New creates a MemoryType with required fields.
func New(name string) *MemoryType {
	return &MemoryType{
		Catalog: entity.NewCatalog(name),
	}
}

// Validate implements entity.Validatable interface.
func (m *MemoryType) Validate(ctx context.Context) error {
	return m.Catalog.Validate(ctx)
}

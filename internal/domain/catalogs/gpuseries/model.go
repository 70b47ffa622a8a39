// Package gpuseries provides the GPU series catalog
// (GeForce RTX 40, Radeon RX 7000 and so on).
package gpuseries

import (
	"context"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/entity"
	"gpustock/internal/core/id"
)

// GpuSeries represents a product series within an architecture family.
type GpuSeries struct {
	entity.Catalog

	// GpuFamilyID references the parent architecture family
	GpuFamilyID id.ID `db:"gpu_family_id" json:"gpuFamilyId"`
}

// New creates a GpuSeries with required fields.
func New(name string, familyID id.ID) *GpuSeries {
	return &GpuSeries{
		Catalog:     entity.NewCatalog(name),
		GpuFamilyID: familyID,
	}
}

// Validate implements entity.Validatable interface.
func (s *GpuSeries) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(s.GpuFamilyID) {
		return apperror.NewValidation("gpu family is required").
			WithDetail("field", "gpuFamilyId")
	}

	return nil
}

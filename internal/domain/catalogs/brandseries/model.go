// Package brandseries provides the manufacturer product-line catalog
// (ROG Strix, Gaming X Trio and so on).
package brandseries

import (
	"context"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/entity"
	"gpustock/internal/core/id"
)

// BrandSeries represents a manufacturer's product line.
type BrandSeries struct {
	entity.Catalog

	// ManufacturerID references the owning manufacturer
	ManufacturerID id.ID `db:"manufacturer_id" json:"manufacturerId"`
}

// New creates a BrandSeries with required fields.
func New(name string, manufacturerID id.ID) *BrandSeries {
	return &BrandSeries{
		Catalog:        entity.NewCatalog(name),
		ManufacturerID: manufacturerID,
	}
}

// Validate implements entity.Validatable interface.
func (b *BrandSeries) Validate(ctx context.Context) error {
	if err := b.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(b.ManufacturerID) {
		return apperror.NewValidation("manufacturer is required").
			WithDetail("field", "manufacturerId")
	}

	return nil
}

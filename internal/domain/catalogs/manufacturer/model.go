// Package manufacturer provides the board-partner manufacturer catalog
// (ASUS, MSI, Gigabyte and so on).
package manufacturer

import (
	"context"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/entity"
)

// Manufacturer represents a videocard vendor.
type Manufacturer struct {
	entity.Catalog

	// Country of origin (display string, e.g. "Taiwan")
	Country string `db:"country" json:"country"`

	// Website is the vendor's official site URL
	Website *string `db:"website" json:"website,omitempty"`
}

// New creates a Manufacturer with required fields.
func New(name, country string) *Manufacturer {
	return &Manufacturer{
		Catalog: entity.NewCatalog(name),
		Country: country,
	}
}

// Validate implements entity.Validatable interface.
func (m *Manufacturer) Validate(ctx context.Context) error {
	if err := m.Catalog.Validate(ctx); err != nil {
		return err
	}

	if m.Country == "" {
		return apperror.NewValidation("country is required").
			WithDetail("field", "country")
	}

	return nil
}

// Package videocard provides the videocard product record, the unit the
// warehouse actually stocks. The quantity column on the card is a
// denormalized counter reconciled by the stock ledger.
package videocard

import (
	"context"

	"github.com/shopspring/decimal"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/entity"
	"gpustock/internal/core/id"
)

// Videocard represents a stocked videocard model.
type Videocard struct {
	entity.BaseEntity

	// Sku is the unique stock keeping unit
	Sku string `db:"sku" json:"sku"`

	// BrandSeriesID references the manufacturer product line
	BrandSeriesID id.ID `db:"brand_series_id" json:"brandSeriesId"`

	// GpuID references the chip
	GpuID id.ID `db:"gpu_id" json:"gpuId"`

	// MemoryTypeID references the memory type
	MemoryTypeID id.ID `db:"memory_type_id" json:"memoryTypeId"`

	// MemorySize in gigabytes
	MemorySize int `db:"memory_size" json:"memorySize"`

	// Card dimensions in millimeters
	Width  int `db:"width" json:"width"`
	Height int `db:"height" json:"height"`
	Length int `db:"length" json:"length"`

	// RecommendedPsu is the recommended power supply wattage
	RecommendedPsu int `db:"recommended_psu" json:"recommendedPsu"`

	// Illumination indicates RGB lighting
	Illumination bool `db:"illumination" json:"illumination"`

	// Maximum supported output resolution
	MaxResolutionX int `db:"max_resolution_x" json:"maxResolutionX"`
	MaxResolutionY int `db:"max_resolution_y" json:"maxResolutionY"`

	// Color of the card/backplate
	Color string `db:"color" json:"color"`

	// Price is the retail price
	Price decimal.Decimal `db:"price" json:"price"`

	// Quantity is the denormalized stock counter. Once ledger entries
	// exist for the card, the reconciliation engine owns this value.
	Quantity int64 `db:"quantity" json:"quantity"`
}

// New creates a Videocard with required references.
func New(sku string, brandSeriesID, gpuID, memoryTypeID id.ID) *Videocard {
	return &Videocard{
		BaseEntity:    entity.NewBaseEntity(),
		Sku:           sku,
		BrandSeriesID: brandSeriesID,
		GpuID:         gpuID,
		MemoryTypeID:  memoryTypeID,
		Price:         decimal.Zero,
	}
}

// InStock reports whether at least one unit is on hand.
func (v *Videocard) InStock() bool {
	return v.Quantity > 0
}

// StockValue returns price multiplied by units on hand.
func (v *Videocard) StockValue() decimal.Decimal {
	return v.Price.Mul(decimal.NewFromInt(v.Quantity))
}

// Validate implements entity.Validatable interface.
func (v *Videocard) Validate(ctx context.Context) error {
	if v.Sku == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}

	if id.IsNil(v.BrandSeriesID) {
		return apperror.NewValidation("brand series is required").
			WithDetail("field", "brandSeriesId")
	}

	if id.IsNil(v.GpuID) {
		return apperror.NewValidation("gpu is required").
			WithDetail("field", "gpuId")
	}

	if id.IsNil(v.MemoryTypeID) {
		return apperror.NewValidation("memory type is required").
			WithDetail("field", "memoryTypeId")
	}

	if v.MemorySize <= 0 {
		return apperror.NewValidation("memory size must be positive").
			WithDetail("field", "memorySize")
	}

	if v.Width <= 0 || v.Height <= 0 || v.Length <= 0 {
		return apperror.NewValidation("dimensions must be positive").
			WithDetail("width", v.Width).
			WithDetail("height", v.Height).
			WithDetail("length", v.Length)
	}

	if v.RecommendedPsu <= 0 {
		return apperror.NewValidation("recommended PSU wattage must be positive").
			WithDetail("field", "recommendedPsu")
	}

	if v.MaxResolutionX <= 0 || v.MaxResolutionY <= 0 {
		return apperror.NewValidation("max resolution must be positive").
			WithDetail("field", "maxResolution")
	}

	if v.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	if v.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}

	return nil
}

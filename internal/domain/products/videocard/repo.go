package videocard

import (
	"context"

	"github.com/shopspring/decimal"

	"gpustock/internal/core/id"
	"gpustock/internal/domain"
)

// CardFilter is the product-listing filter. It mirrors the admin catalog
// page: every criterion is optional and they combine with AND.
type CardFilter struct {
	// Search matches SKU (ILIKE)
	Search string

	// Reference filters
	GpuID          *id.ID
	BrandSeriesID  *id.ID
	ManufacturerID *id.ID
	GpuFamilyID    *id.ID
	MemoryTypeID   *id.ID

	// Range filters
	PriceFrom      *decimal.Decimal
	PriceTo        *decimal.Decimal
	MemorySizeFrom *int
	MemorySizeTo   *int
	PsuFrom        *int
	PsuTo          *int
	LengthTo       *int

	// Feature filters
	Illumination *bool
	InStock      *bool

	// OrderBy specifies sorting (e.g., "price", "-quantity")
	OrderBy string

	Limit  int
	Offset int
}

// Repository defines the interface for Videocard persistence.
type Repository interface {
	// Create inserts a new card
	Create(ctx context.Context, card *Videocard) error

	// GetByID retrieves card by ID
	GetByID(ctx context.Context, cardID id.ID) (*Videocard, error)

	// GetBySku retrieves card by SKU
	GetBySku(ctx context.Context, sku string) (*Videocard, error)

	// GetForUpdate retrieves card by ID with a row lock. Must be called
	// inside a transaction.
	GetForUpdate(ctx context.Context, cardID id.ID) (*Videocard, error)

	// Update modifies an existing card (optimistic locking)
	Update(ctx context.Context, card *Videocard) error

	// Delete removes the card physically
	Delete(ctx context.Context, cardID id.ID) error

	// List retrieves cards matching the filter
	List(ctx context.Context, f CardFilter) (domain.ListResult[*Videocard], error)

	// Exists checks if card exists
	Exists(ctx context.Context, cardID id.ID) (bool, error)

	// AdjustQuantity applies delta to the stock counter with a
	// non-negativity guard: the UPDATE only matches when
	// quantity + delta >= 0. Returns the number of rows affected;
	// 0 means the guard rejected the adjustment (or the card is gone).
	AdjustQuantity(ctx context.Context, cardID id.ID, delta int64) (int64, error)
}

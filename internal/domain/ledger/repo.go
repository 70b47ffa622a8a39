package ledger

import (
	"context"
	"time"

	"gpustock/internal/core/id"
	"gpustock/internal/domain"
)

// EntryFilter selects ledger entries for listing.
type EntryFilter struct {
	UserID      *id.ID
	VideocardID *id.ID
	Kind        *Kind
	DateFrom    *time.Time
	DateTo      *time.Time

	// OrderBy specifies sorting (e.g., "-date")
	OrderBy string

	Limit  int
	Offset int
}

// Repository defines the interface for ledger entry persistence.
type Repository interface {
	// Insert stores a new entry
	Insert(ctx context.Context, entry *Entry) error

	// GetByID retrieves entry by ID
	GetByID(ctx context.Context, entryID id.ID) (*Entry, error)

	// Update replaces all mutable fields of an entry
	Update(ctx context.Context, entry *Entry) error

	// Delete removes the entry physically
	Delete(ctx context.Context, entryID id.ID) error

	// SumQuantity totals entry quantities for a (user, videocard, kind)
	// triple. Entries with excludeID are left out, so an in-flight edit
	// does not count against itself.
	SumQuantity(ctx context.Context, userID, videocardID id.ID, kind Kind, excludeID id.ID) (int64, error)

	// List retrieves entries matching the filter
	List(ctx context.Context, f EntryFilter) (domain.ListResult[*Entry], error)
}

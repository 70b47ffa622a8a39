// Package ledger provides the stock ledger reconciliation engine. Every
// stock movement is an Entry; the denormalized quantity counter on the
// videocard equals the sum of its entries' signed effects at all times.
package ledger

import (
	"context"
	"time"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/id"
)

// Kind identifies the type of a stock operation.
type Kind string

const (
	// KindSupply is an incoming delivery from a supplier.
	KindSupply Kind = "supply"

	// KindReturn is a customer bringing a purchased card back.
	KindReturn Kind = "return"

	// KindSale is a customer purchase.
	KindSale Kind = "sale"

	// KindWriteoff removes damaged or lost stock.
	KindWriteoff Kind = "writeoff"
)

// Entry is a single stock operation. Entries keep a stable ID and are
// editable in place; the engine reconciles the card counter on every
// create, update and delete.
type Entry struct {
	ID id.ID `db:"id" json:"id"`

	// UserID is the actor: the customer for sales/returns, the acting
	// admin for supplies and writeoffs.
	UserID id.ID `db:"user_id" json:"userId"`

	// VideocardID is the affected product
	VideocardID id.ID `db:"videocard_id" json:"videocardId"`

	Kind Kind `db:"kind" json:"kind"`

	// Quantity is the magnitude of the movement, always positive;
	// the sign comes from the kind.
	Quantity int64 `db:"quantity" json:"quantity"`

	// Date is assigned when the entry is first committed
	Date time.Time `db:"date" json:"date"`
}

// NewEntry creates an uncommitted entry. The ID and date are assigned by
// the engine on create.
func NewEntry(userID, videocardID id.ID, kind Kind, quantity int64) *Entry {
	return &Entry{
		UserID:      userID,
		VideocardID: videocardID,
		Kind:        kind,
		Quantity:    quantity,
	}
}

// SignedEffect returns the entry's effect on the card counter:
// +Quantity for increases, -Quantity for decreases.
func (e *Entry) SignedEffect() int64 {
	return int64(Direction(e.Kind)) * e.Quantity
}

// Validate implements entity.Validatable interface.
func (e *Entry) Validate(ctx context.Context) error {
	if e.Quantity <= 0 {
		return apperror.NewInvalidQuantity(e.Quantity)
	}

	if !ValidKind(e.Kind) {
		return apperror.NewInvalidOperationKind(string(e.Kind))
	}

	if id.IsNil(e.UserID) {
		return apperror.NewValidation("user is required").
			WithDetail("field", "userId")
	}

	if id.IsNil(e.VideocardID) {
		return apperror.NewValidation("videocard is required").
			WithDetail("field", "videocardId")
	}

	return nil
}

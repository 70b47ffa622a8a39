package videocard

import (
	"context"
	"fmt"

	"gpustock/internal/core/apperror"
	appctx "gpustock/internal/core/context"
	"gpustock/internal/core/id"
	"gpustock/internal/core/tx"
	"gpustock/internal/domain"
	"gpustock/pkg/logger"
)

// StockRecorder documents a quantity change in the stock ledger. Implemented
// by the ledger engine; the entry it records also applies the quantity
// adjustment, so callers hand over cards with the counter untouched.
type StockRecorder interface {
	// RecordSupply credits qty units to the card as a supply entry.
	RecordSupply(ctx context.Context, userID, cardID id.ID, qty int64) error

	// RecordWriteoff debits qty units from the card as a writeoff entry.
	RecordWriteoff(ctx context.Context, userID, cardID id.ID, qty int64) error
}

// Service provides business logic for the videocard product record.
//
// Quantity is never written directly: a card is inserted with zero stock and
// any requested quantity (on create or edit) goes through the ledger as a
// supply or writeoff entry attributed to the acting admin, so the counter
// and the ledger stay reconciled.
type Service struct {
	repo      Repository
	recorder  StockRecorder
	txManager tx.Manager
}

// NewService creates a new Videocard service.
func NewService(repo Repository, recorder StockRecorder, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		recorder:  recorder,
		txManager: txManager,
	}
}

// Create inserts a new card. A positive initial quantity is recorded as a
// supply entry by the acting user.
func (s *Service) Create(ctx context.Context, card *Videocard) error {
	if err := card.Validate(ctx); err != nil {
		return err
	}

	if existing, err := s.repo.GetBySku(ctx, card.Sku); err == nil && existing.ID != card.ID {
		return apperror.NewDuplicate("videocard", "sku", card.Sku)
	}

	initial := card.Quantity
	card.Quantity = 0

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, card); err != nil {
			return fmt.Errorf("create videocard: %w", err)
		}

		if initial > 0 {
			actorID, err := s.actor(ctx)
			if err != nil {
				return err
			}
			if err := s.recorder.RecordSupply(ctx, actorID, card.ID, initial); err != nil {
				return fmt.Errorf("record initial supply: %w", err)
			}
			card.Quantity = initial
		}

		return nil
	})
}

// Update modifies a card. A changed quantity is recorded as a compensating
// supply or writeoff entry instead of overwriting the counter.
func (s *Service) Update(ctx context.Context, card *Videocard) error {
	if err := card.Validate(ctx); err != nil {
		return err
	}

	requested := card.Quantity

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, card.ID)
		if err != nil {
			return err
		}

		if card.Sku != current.Sku {
			if existing, err := s.repo.GetBySku(ctx, card.Sku); err == nil && existing.ID != card.ID {
				return apperror.NewDuplicate("videocard", "sku", card.Sku)
			}
		}

		// The counter belongs to the ledger; carry the stored value
		// through the row update and reconcile the difference below.
		card.Quantity = current.Quantity
		if err := s.repo.Update(ctx, card); err != nil {
			return fmt.Errorf("update videocard: %w", err)
		}

		diff := requested - current.Quantity
		if diff == 0 {
			return nil
		}

		actorID, err := s.actor(ctx)
		if err != nil {
			return err
		}

		if diff > 0 {
			err = s.recorder.RecordSupply(ctx, actorID, card.ID, diff)
		} else {
			err = s.recorder.RecordWriteoff(ctx, actorID, card.ID, -diff)
		}
		if err != nil {
			return fmt.Errorf("record quantity change: %w", err)
		}

		card.Quantity = requested
		return nil
	})
}

// GetByID retrieves card by ID.
func (s *Service) GetByID(ctx context.Context, cardID id.ID) (*Videocard, error) {
	return s.repo.GetByID(ctx, cardID)
}

// GetBySku retrieves card by SKU.
func (s *Service) GetBySku(ctx context.Context, sku string) (*Videocard, error) {
	return s.repo.GetBySku(ctx, sku)
}

// List retrieves cards matching the filter.
func (s *Service) List(ctx context.Context, f CardFilter) (domain.ListResult[*Videocard], error) {
	return s.repo.List(ctx, f)
}

// Delete removes the card. Cards with ledger history are protected by the
// foreign key and surface as a still-referenced conflict.
func (s *Service) Delete(ctx context.Context, cardID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, cardID)
	})
	if err != nil {
		if apperror.IsCode(err, apperror.CodeReferenced) {
			return apperror.NewStillReferenced("videocard", cardID.String())
		}
		return err
	}

	logger.Info(ctx, "videocard deleted", "card_id", cardID.String())
	return nil
}

func (s *Service) actor(ctx context.Context) (id.ID, error) {
	userID := appctx.GetUserID(ctx)
	if userID == "" {
		return id.Nil(), apperror.NewUnauthorized("no acting user in context")
	}
	actorID, err := id.Parse(userID)
	if err != nil {
		return id.Nil(), apperror.NewUnauthorized("invalid acting user id")
	}
	return actorID, nil
}

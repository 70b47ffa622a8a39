package ledger

import (
	"context"
	"fmt"
	"time"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/id"
	"gpustock/internal/core/tx"
	"gpustock/internal/domain"
	"gpustock/internal/domain/products/videocard"
	"gpustock/pkg/logger"
)

// AuditFunc records a committed ledger mutation. It runs post-commit and
// a failure never fails the mutation itself.
type AuditFunc func(ctx context.Context, action string, entry *Entry) error

// Service is the reconciliation engine. All mutations run inside a store
// transaction with the affected card row locked, and every counter change
// goes through the conditional quantity guard, so two concurrent
// over-draws cannot both commit.
type Service struct {
	entries   Repository
	cards     videocard.Repository
	txManager tx.Manager
	audit     AuditFunc
}

// NewService creates the ledger engine.
func NewService(entries Repository, cards videocard.Repository, txManager tx.Manager) *Service {
	return &Service{
		entries:   entries,
		cards:     cards,
		txManager: txManager,
	}
}

// SetAuditor attaches the audit recorder.
func (s *Service) SetAuditor(fn AuditFunc) {
	s.audit = fn
}

func (s *Service) recordAudit(ctx context.Context, action string, entry *Entry) {
	if s.audit == nil {
		return
	}
	if err := s.audit(ctx, action, entry); err != nil {
		logger.Warn(ctx, "ledger audit write failed",
			"action", action,
			"entry_id", entry.ID.String(),
			"error", err,
		)
	}
}

// MaxReturnable computes the return bound for a (user, videocard) pair:
// units sold to the user minus units already returned, floored at zero.
// excludeID leaves one entry out of both sums, for edits. The second
// result is the total units ever sold, used to distinguish "never
// purchased" from "bound exhausted".
func (s *Service) MaxReturnable(ctx context.Context, userID, videocardID, excludeID id.ID) (int64, int64, error) {
	sold, err := s.entries.SumQuantity(ctx, userID, videocardID, KindSale, excludeID)
	if err != nil {
		return 0, 0, fmt.Errorf("sum sales: %w", err)
	}

	returned, err := s.entries.SumQuantity(ctx, userID, videocardID, KindReturn, excludeID)
	if err != nil {
		return 0, 0, fmt.Errorf("sum returns: %w", err)
	}

	bound := sold - returned
	if bound < 0 {
		bound = 0
	}
	return bound, sold, nil
}

// checkReturnBound rejects a return that exceeds what the user can bring back.
func (s *Service) checkReturnBound(ctx context.Context, entry *Entry, excludeID id.ID) error {
	bound, sold, err := s.MaxReturnable(ctx, entry.UserID, entry.VideocardID, excludeID)
	if err != nil {
		return err
	}

	if sold == 0 {
		return apperror.NewNeverPurchased(entry.UserID.String(), entry.VideocardID.String())
	}

	if entry.Quantity > bound {
		return apperror.NewReturnExceedsBound(entry.Quantity, bound)
	}

	return nil
}

// applyDelta adjusts the card counter through the conditional update.
// Zero rows affected means the non-negativity guard rejected the change.
func (s *Service) applyDelta(ctx context.Context, cardID id.ID, delta int64, requested, available int64) error {
	rows, err := s.cards.AdjustQuantity(ctx, cardID, delta)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if rows == 0 {
		return apperror.NewInsufficientStock(cardID.String(), requested, available)
	}
	return nil
}

// Create validates and commits a new entry, applying its effect to the
// card counter atomically.
func (s *Service) Create(ctx context.Context, entry *Entry) error {
	if err := entry.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		card, err := s.cards.GetForUpdate(ctx, entry.VideocardID)
		if err != nil {
			return err
		}

		if entry.Kind == KindReturn {
			if err := s.checkReturnBound(ctx, entry, id.Nil()); err != nil {
				return err
			}
		}

		delta := entry.SignedEffect()
		if delta < 0 && card.Quantity+delta < 0 {
			return apperror.NewInsufficientStock(card.ID.String(), entry.Quantity, card.Quantity)
		}

		if id.IsNil(entry.ID) {
			entry.ID = id.New()
		}
		if entry.Date.IsZero() {
			entry.Date = time.Now().UTC()
		}

		if err := s.entries.Insert(ctx, entry); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}

		return s.applyDelta(ctx, card.ID, delta, entry.Quantity, card.Quantity)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "ledger entry created",
		"entry_id", entry.ID.String(),
		"kind", string(entry.Kind),
		"quantity", entry.Quantity,
		"videocard_id", entry.VideocardID.String(),
	)
	s.recordAudit(ctx, "create", entry)
	return nil
}

// Update replaces an entry with new field values. Any field may change,
// including the card and the actor. An edit that stays on the same card
// applies the net difference between the new and old effect in one step;
// moving between cards reverses the old effect on the old card and applies
// the new one on the new card. Everything runs in one transaction, so a
// failed validation rolls every counter change back.
func (s *Service) Update(ctx context.Context, entry *Entry) error {
	if err := entry.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(entry.ID) {
		return apperror.NewValidation("entry id is required").
			WithDetail("field", "id")
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		old, err := s.entries.GetByID(ctx, entry.ID)
		if err != nil {
			return err
		}

		oldCard, newCard, err := s.lockCards(ctx, old.VideocardID, entry.VideocardID)
		if err != nil {
			return err
		}

		if entry.Kind == KindReturn {
			if err := s.checkReturnBound(ctx, entry, entry.ID); err != nil {
				return err
			}
		}

		// The commit date survives edits
		if entry.Date.IsZero() {
			entry.Date = old.Date
		}

		if err := s.entries.Update(ctx, entry); err != nil {
			return fmt.Errorf("update entry: %w", err)
		}

		if old.VideocardID == entry.VideocardID {
			// Same card: one net adjustment. A sequential
			// reverse-then-apply would trip the counter guard on
			// valid edits, e.g. growing a supply already sold through.
			net := entry.SignedEffect() - old.SignedEffect()
			if net == 0 {
				return nil
			}
			if net < 0 && newCard.Quantity+net < 0 {
				return apperror.NewInsufficientStock(newCard.ID.String(), entry.Quantity, newCard.Quantity)
			}
			return s.applyDelta(ctx, entry.VideocardID, net, entry.Quantity, newCard.Quantity)
		}

		// Reverse the stored effect on the old card
		if err := s.applyDelta(ctx, old.VideocardID, -old.SignedEffect(), old.Quantity, oldCard.Quantity); err != nil {
			return err
		}

		delta := entry.SignedEffect()
		if delta < 0 && newCard.Quantity+delta < 0 {
			return apperror.NewInsufficientStock(newCard.ID.String(), entry.Quantity, newCard.Quantity)
		}

		return s.applyDelta(ctx, entry.VideocardID, delta, entry.Quantity, newCard.Quantity)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "ledger entry updated",
		"entry_id", entry.ID.String(),
		"kind", string(entry.Kind),
		"quantity", entry.Quantity,
	)
	s.recordAudit(ctx, "update", entry)
	return nil
}

// Delete reverses an entry's effect and removes it. There is no
// insufficient-stock pre-check; the conditional counter guard still
// refuses a reversal that would drive the card negative.
func (s *Service) Delete(ctx context.Context, entryID id.ID) error {
	var deleted *Entry

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		old, err := s.entries.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		deleted = old

		card, err := s.cards.GetForUpdate(ctx, old.VideocardID)
		if err != nil {
			return err
		}

		if err := s.applyDelta(ctx, card.ID, -old.SignedEffect(), old.Quantity, card.Quantity); err != nil {
			return err
		}

		if err := s.entries.Delete(ctx, entryID); err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "ledger entry deleted", "entry_id", entryID.String())
	s.recordAudit(ctx, "delete", deleted)
	return nil
}

// GetByID retrieves an entry.
func (s *Service) GetByID(ctx context.Context, entryID id.ID) (*Entry, error) {
	return s.entries.GetByID(ctx, entryID)
}

// List retrieves entries matching the filter.
func (s *Service) List(ctx context.Context, f EntryFilter) (domain.ListResult[*Entry], error) {
	return s.entries.List(ctx, f)
}

// lockCards locks the card rows an update touches. When the entry moves
// between cards both rows are locked in a stable order to avoid deadlock.
func (s *Service) lockCards(ctx context.Context, oldID, newID id.ID) (*videocard.Videocard, *videocard.Videocard, error) {
	if oldID == newID {
		card, err := s.cards.GetForUpdate(ctx, oldID)
		if err != nil {
			return nil, nil, err
		}
		return card, card, nil
	}

	first, second := oldID, newID
	if second.String() < first.String() {
		first, second = second, first
	}

	firstCard, err := s.cards.GetForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	secondCard, err := s.cards.GetForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}

	if firstCard.ID == oldID {
		return firstCard, secondCard, nil
	}
	return secondCard, firstCard, nil
}

// --- videocard.StockRecorder ---

// RecordSupply credits qty units to the card as a supply entry by userID.
func (s *Service) RecordSupply(ctx context.Context, userID, cardID id.ID, qty int64) error {
	return s.Create(ctx, NewEntry(userID, cardID, KindSupply, qty))
}

// RecordWriteoff debits qty units from the card as a writeoff entry by userID.
func (s *Service) RecordWriteoff(ctx context.Context, userID, cardID id.ID, qty int64) error {
	return s.Create(ctx, NewEntry(userID, cardID, KindWriteoff, qty))
}

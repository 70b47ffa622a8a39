package dto

import (
	"encoding/json"
	"time"

	"gpustock/internal/domain/ledger"
)

// --- Request DTOs ---

// CreateEntryRequest is the request body for recording a stock operation.
// Date is optional; the commit time is used when omitted.
type CreateEntryRequest struct {
	UserID      string     `json:"userId" binding:"required"`
	VideocardID string     `json:"videocardId" binding:"required"`
	Kind        string     `json:"kind" binding:"required"`
	Quantity    int64      `json:"quantity" binding:"required"`
	Date        *time.Time `json:"date"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateEntryRequest) ToEntity() (*ledger.Entry, error) {
	userID, err := parseID("userId", r.UserID)
	if err != nil {
		return nil, err
	}
	cardID, err := parseID("videocardId", r.VideocardID)
	if err != nil {
		return nil, err
	}

	entry := ledger.NewEntry(userID, cardID, ledger.Kind(r.Kind), r.Quantity)
	if r.Date != nil {
		entry.Date = *r.Date
	}
	return entry, nil
}

// UpdateEntryRequest is the request body for editing a stock operation.
// Date is optional; the original commit time is kept when omitted.
type UpdateEntryRequest struct {
	UserID      string     `json:"userId" binding:"required"`
	VideocardID string     `json:"videocardId" binding:"required"`
	Kind        string     `json:"kind" binding:"required"`
	Quantity    int64      `json:"quantity" binding:"required"`
	Date        *time.Time `json:"date"`
}

// ToEntity converts DTO to a domain entity carrying the given ID.
func (r *UpdateEntryRequest) ToEntity(entryID string) (*ledger.Entry, error) {
	parsedID, err := parseID("id", entryID)
	if err != nil {
		return nil, err
	}
	userID, err := parseID("userId", r.UserID)
	if err != nil {
		return nil, err
	}
	cardID, err := parseID("videocardId", r.VideocardID)
	if err != nil {
		return nil, err
	}

	entry := ledger.NewEntry(userID, cardID, ledger.Kind(r.Kind), r.Quantity)
	entry.ID = parsedID
	if r.Date != nil {
		entry.Date = *r.Date
	}
	return entry, nil
}

// --- Response DTOs ---

// EntryResponse is the response body for a ledger entry.
type EntryResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	VideocardID  string    `json:"videocardId"`
	Kind         string    `json:"kind"`
	Quantity     int64     `json:"quantity"`
	SignedEffect int64     `json:"signedEffect"`
	Date         time.Time `json:"date"`
}

// FromEntry creates response DTO from domain entity.
func FromEntry(e *ledger.Entry) *EntryResponse {
	return &EntryResponse{
		ID:           e.ID.String(),
		UserID:       e.UserID.String(),
		VideocardID:  e.VideocardID.String(),
		Kind:         string(e.Kind),
		Quantity:     e.Quantity,
		SignedEffect: e.SignedEffect(),
		Date:         e.Date,
	}
}

// AuditRecordResponse is one audit row of an entry's change history.
type AuditRecordResponse struct {
	Action    string          `json:"action"`
	UserID    string          `json:"userId,omitempty"`
	UserEmail string          `json:"userEmail,omitempty"`
	Changes   json.RawMessage `json:"changes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// MaxReturnableResponse reports the remaining return allowance for a
// (user, card) pair.
type MaxReturnableResponse struct {
	UserID        string `json:"userId"`
	VideocardID   string `json:"videocardId"`
	Sold          int64  `json:"sold"`
	MaxReturnable int64  `json:"maxReturnable"`
}

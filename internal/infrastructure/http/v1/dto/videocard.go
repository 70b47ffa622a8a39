package dto

import (
	"github.com/shopspring/decimal"

	"gpustock/internal/domain/products/videocard"
)

// --- Request DTOs ---

// CreateVideocardRequest is the request body for creating a card.
// InitialQuantity seeds the stock counter through a supply entry in
// the ledger attributed to the acting user.
type CreateVideocardRequest struct {
	Sku             string          `json:"sku" binding:"required"`
	BrandSeriesID   string          `json:"brandSeriesId" binding:"required"`
	GpuID           string          `json:"gpuId" binding:"required"`
	MemoryTypeID    string          `json:"memoryTypeId" binding:"required"`
	MemorySize      int             `json:"memorySize" binding:"required"`
	Width           int             `json:"width" binding:"required"`
	Height          int             `json:"height" binding:"required"`
	Length          int             `json:"length" binding:"required"`
	RecommendedPsu  int             `json:"recommendedPsu" binding:"required"`
	Illumination    bool            `json:"illumination"`
	MaxResolutionX  int             `json:"maxResolutionX" binding:"required"`
	MaxResolutionY  int             `json:"maxResolutionY" binding:"required"`
	Color           string          `json:"color"`
	Price           decimal.Decimal `json:"price"`
	InitialQuantity int64           `json:"initialQuantity" binding:"min=0"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateVideocardRequest) ToEntity() (*videocard.Videocard, error) {
	brandSeriesID, err := parseID("brandSeriesId", r.BrandSeriesID)
	if err != nil {
		return nil, err
	}
	gpuID, err := parseID("gpuId", r.GpuID)
	if err != nil {
		return nil, err
	}
	memoryTypeID, err := parseID("memoryTypeId", r.MemoryTypeID)
	if err != nil {
		return nil, err
	}

	card := videocard.New(r.Sku, brandSeriesID, gpuID, memoryTypeID)
	card.MemorySize = r.MemorySize
	card.Width = r.Width
	card.Height = r.Height
	card.Length = r.Length
	card.RecommendedPsu = r.RecommendedPsu
	card.Illumination = r.Illumination
	card.MaxResolutionX = r.MaxResolutionX
	card.MaxResolutionY = r.MaxResolutionY
	card.Color = r.Color
	card.Price = r.Price
	card.Quantity = r.InitialQuantity
	return card, nil
}

// UpdateVideocardRequest is the request body for updating a card.
// Quantity is the requested stock level: the difference against the
// current counter is recorded as a supply or writeoff ledger entry.
type UpdateVideocardRequest struct {
	Sku            string          `json:"sku" binding:"required"`
	BrandSeriesID  string          `json:"brandSeriesId" binding:"required"`
	GpuID          string          `json:"gpuId" binding:"required"`
	MemoryTypeID   string          `json:"memoryTypeId" binding:"required"`
	MemorySize     int             `json:"memorySize" binding:"required"`
	Width          int             `json:"width" binding:"required"`
	Height         int             `json:"height" binding:"required"`
	Length         int             `json:"length" binding:"required"`
	RecommendedPsu int             `json:"recommendedPsu" binding:"required"`
	Illumination   bool            `json:"illumination"`
	MaxResolutionX int             `json:"maxResolutionX" binding:"required"`
	MaxResolutionY int             `json:"maxResolutionY" binding:"required"`
	Color          string          `json:"color"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int64           `json:"quantity" binding:"min=0"`
	Version        int             `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateVideocardRequest) ApplyTo(card *videocard.Videocard) error {
	brandSeriesID, err := parseID("brandSeriesId", r.BrandSeriesID)
	if err != nil {
		return err
	}
	gpuID, err := parseID("gpuId", r.GpuID)
	if err != nil {
		return err
	}
	memoryTypeID, err := parseID("memoryTypeId", r.MemoryTypeID)
	if err != nil {
		return err
	}

	card.Sku = r.Sku
	card.BrandSeriesID = brandSeriesID
	card.GpuID = gpuID
	card.MemoryTypeID = memoryTypeID
	card.MemorySize = r.MemorySize
	card.Width = r.Width
	card.Height = r.Height
	card.Length = r.Length
	card.RecommendedPsu = r.RecommendedPsu
	card.Illumination = r.Illumination
	card.MaxResolutionX = r.MaxResolutionX
	card.MaxResolutionY = r.MaxResolutionY
	card.Color = r.Color
	card.Price = r.Price
	card.Quantity = r.Quantity
	card.Version = r.Version
	return nil
}

// --- Response DTO ---

// VideocardResponse is the response body for a card.
type VideocardResponse struct {
	BaseResponse
	Sku            string          `json:"sku"`
	BrandSeriesID  string          `json:"brandSeriesId"`
	GpuID          string          `json:"gpuId"`
	MemoryTypeID   string          `json:"memoryTypeId"`
	MemorySize     int             `json:"memorySize"`
	Width          int             `json:"width"`
	Height         int             `json:"height"`
	Length         int             `json:"length"`
	RecommendedPsu int             `json:"recommendedPsu"`
	Illumination   bool            `json:"illumination"`
	MaxResolutionX int             `json:"maxResolutionX"`
	MaxResolutionY int             `json:"maxResolutionY"`
	Color          string          `json:"color"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int64           `json:"quantity"`
	InStock        bool            `json:"inStock"`
}

// FromVideocard creates response DTO from domain entity.
func FromVideocard(card *videocard.Videocard) *VideocardResponse {
	return &VideocardResponse{
		BaseResponse:   FromBase(card.BaseEntity),
		Sku:            card.Sku,
		BrandSeriesID:  card.BrandSeriesID.String(),
		GpuID:          card.GpuID.String(),
		MemoryTypeID:   card.MemoryTypeID.String(),
		MemorySize:     card.MemorySize,
		Width:          card.Width,
		Height:         card.Height,
		Length:         card.Length,
		RecommendedPsu: card.RecommendedPsu,
		Illumination:   card.Illumination,
		MaxResolutionX: card.MaxResolutionX,
		MaxResolutionY: card.MaxResolutionY,
		Color:          card.Color,
		Price:          card.Price,
		Quantity:       card.Quantity,
		InStock:        card.InStock(),
	}
}

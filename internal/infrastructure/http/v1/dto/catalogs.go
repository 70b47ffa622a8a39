package dto

import (
	"time"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/id"
	"gpustock/internal/domain/catalogs/brandseries"
	"gpustock/internal/domain/catalogs/gpu"
	"gpustock/internal/domain/catalogs/gpufamily"
	"gpustock/internal/domain/catalogs/gpuseries"
	"gpustock/internal/domain/catalogs/manufacturer"
	"gpustock/internal/domain/catalogs/memorytype"
)

func parseID(field, value string) (id.ID, error) {
	parsed, err := id.Parse(value)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid id format").WithDetail("field", field)
	}
	return parsed, nil
}

// --- Manufacturer ---

// CreateManufacturerRequest is the request body for creating a manufacturer.
type CreateManufacturerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Country string  `json:"country" binding:"required"`
	Website *string `json:"website"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateManufacturerRequest) ToEntity() (*manufacturer.Manufacturer, error) {
	m := manufacturer.New(r.Name, r.Country)
	m.Website = r.Website
	return m, nil
}

// UpdateManufacturerRequest is the request body for updating a manufacturer.
type UpdateManufacturerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Country string  `json:"country" binding:"required"`
	Website *string `json:"website"`
	Version int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateManufacturerRequest) ApplyTo(m *manufacturer.Manufacturer) error {
	m.Name = r.Name
	m.Country = r.Country
	m.Website = r.Website
	m.Version = r.Version
	return nil
}

// ManufacturerResponse is the response body for a manufacturer.
type ManufacturerResponse struct {
	BaseResponse
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Website *string `json:"website,omitempty"`
}

// FromManufacturer creates response DTO from domain entity.
func FromManufacturer(m *manufacturer.Manufacturer) *ManufacturerResponse {
	return &ManufacturerResponse{
		BaseResponse: FromBase(m.BaseEntity),
		Name:         m.Name,
		Country:      m.Country,
		Website:      m.Website,
	}
}

// --- Memory type ---

// CreateMemoryTypeRequest is the request body for creating a memory type.
type CreateMemoryTypeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateMemoryTypeRequest) ToEntity() (*memorytype.MemoryType, error) {
	m := memorytype.New(r.Name)
	m.Description = r.Description
	return m, nil
}

// UpdateMemoryTypeRequest is the request body for updating a memory type.
type UpdateMemoryTypeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Version     int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateMemoryTypeRequest) ApplyTo(m *memorytype.MemoryType) error {
	m.Name = r.Name
	m.Description = r.Description
	m.Version = r.Version
	return nil
}

// MemoryTypeResponse is the response body for a memory type.
type MemoryTypeResponse struct {
	BaseResponse
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// FromMemoryType creates response DTO from domain entity.
func FromMemoryType(m *memorytype.MemoryType) *MemoryTypeResponse {
	return &MemoryTypeResponse{
		BaseResponse: FromBase(m.BaseEntity),
		Name:         m.Name,
		Description:  m.Description,
	}
}

// --- GPU family ---

// CreateGpuFamilyRequest is the request body for creating a GPU family.
type CreateGpuFamilyRequest struct {
	Name  string  `json:"name" binding:"required"`
	Notes *string `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateGpuFamilyRequest) ToEntity() (*gpufamily.GpuFamily, error) {
	f := gpufamily.New(r.Name)
	f.Notes = r.Notes
	return f, nil
}

// UpdateGpuFamilyRequest is the request body for updating a GPU family.
type UpdateGpuFamilyRequest struct {
	Name    string  `json:"name" binding:"required"`
	Notes   *string `json:"notes"`
	Version int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateGpuFamilyRequest) ApplyTo(f *gpufamily.GpuFamily) error {
	f.Name = r.Name
	f.Notes = r.Notes
	f.Version = r.Version
	return nil
}

// GpuFamilyResponse is the response body for a GPU family.
type GpuFamilyResponse struct {
	BaseResponse
	Name  string  `json:"name"`
	Notes *string `json:"notes,omitempty"`
}

// FromGpuFamily creates response DTO from domain entity.
func FromGpuFamily(f *gpufamily.GpuFamily) *GpuFamilyResponse {
	return &GpuFamilyResponse{
		BaseResponse: FromBase(f.BaseEntity),
		Name:         f.Name,
		Notes:        f.Notes,
	}
}

// --- GPU series ---

// CreateGpuSeriesRequest is the request body for creating a GPU series.
type CreateGpuSeriesRequest struct {
	Name        string `json:"name" binding:"required"`
	GpuFamilyID string `json:"gpuFamilyId" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateGpuSeriesRequest) ToEntity() (*gpuseries.GpuSeries, error) {
	familyID, err := parseID("gpuFamilyId", r.GpuFamilyID)
	if err != nil {
		return nil, err
	}
	return gpuseries.New(r.Name, familyID), nil
}

// UpdateGpuSeriesRequest is the request body for updating a GPU series.
type UpdateGpuSeriesRequest struct {
	Name        string `json:"name" binding:"required"`
	GpuFamilyID string `json:"gpuFamilyId" binding:"required"`
	Version     int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateGpuSeriesRequest) ApplyTo(s *gpuseries.GpuSeries) error {
	familyID, err := parseID("gpuFamilyId", r.GpuFamilyID)
	if err != nil {
		return err
	}
	s.Name = r.Name
	s.GpuFamilyID = familyID
	s.Version = r.Version
	return nil
}

// GpuSeriesResponse is the response body for a GPU series.
type GpuSeriesResponse struct {
	BaseResponse
	Name        string `json:"name"`
	GpuFamilyID string `json:"gpuFamilyId"`
}

// FromGpuSeries creates response DTO from domain entity.
func FromGpuSeries(s *gpuseries.GpuSeries) *GpuSeriesResponse {
	return &GpuSeriesResponse{
		BaseResponse: FromBase(s.BaseEntity),
		Name:         s.Name,
		GpuFamilyID:  s.GpuFamilyID.String(),
	}
}

// --- GPU ---

// CreateGpuRequest is the request body for creating a GPU chip.
type CreateGpuRequest struct {
	Name        string    `json:"name" binding:"required"`
	GpuSeriesID string    `json:"gpuSeriesId" binding:"required"`
	TechProcess int       `json:"techProcess" binding:"required"`
	BaseClock   int       `json:"baseClock" binding:"required"`
	BoostClock  int       `json:"boostClock" binding:"required"`
	ShaderCores int       `json:"shaderCores" binding:"required"`
	CudaSupport bool      `json:"cudaSupport"`
	ReleaseDate time.Time `json:"releaseDate"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateGpuRequest) ToEntity() (*gpu.Gpu, error) {
	seriesID, err := parseID("gpuSeriesId", r.GpuSeriesID)
	if err != nil {
		return nil, err
	}
	g := gpu.New(r.Name, seriesID)
	g.TechProcess = r.TechProcess
	g.BaseClock = r.BaseClock
	g.BoostClock = r.BoostClock
	g.ShaderCores = r.ShaderCores
	g.CudaSupport = r.CudaSupport
	g.ReleaseDate = r.ReleaseDate
	return g, nil
}

// UpdateGpuRequest is the request body for updating a GPU chip.
type UpdateGpuRequest struct {
	Name        string    `json:"name" binding:"required"`
	GpuSeriesID string    `json:"gpuSeriesId" binding:"required"`
	TechProcess int       `json:"techProcess" binding:"required"`
	BaseClock   int       `json:"baseClock" binding:"required"`
	BoostClock  int       `json:"boostClock" binding:"required"`
	ShaderCores int       `json:"shaderCores" binding:"required"`
	CudaSupport bool      `json:"cudaSupport"`
	ReleaseDate time.Time `json:"releaseDate"`
	Version     int       `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateGpuRequest) ApplyTo(g *gpu.Gpu) error {
	seriesID, err := parseID("gpuSeriesId", r.GpuSeriesID)
	if err != nil {
		return err
	}
	g.Name = r.Name
	g.GpuSeriesID = seriesID
	g.TechProcess = r.TechProcess
	g.BaseClock = r.BaseClock
	g.BoostClock = r.BoostClock
	g.ShaderCores = r.ShaderCores
	g.CudaSupport = r.CudaSupport
	g.ReleaseDate = r.ReleaseDate
	g.Version = r.Version
	return nil
}

// GpuResponse is the response body for a GPU chip.
type GpuResponse struct {
	BaseResponse
	Name        string    `json:"name"`
	GpuSeriesID string    `json:"gpuSeriesId"`
	TechProcess int       `json:"techProcess"`
	BaseClock   int       `json:"baseClock"`
	BoostClock  int       `json:"boostClock"`
	ShaderCores int       `json:"shaderCores"`
	CudaSupport bool      `json:"cudaSupport"`
	ReleaseDate time.Time `json:"releaseDate"`
}

// FromGpu creates response DTO from domain entity.
func FromGpu(g *gpu.Gpu) *GpuResponse {
	return &GpuResponse{
		BaseResponse: FromBase(g.BaseEntity),
		Name:         g.Name,
		GpuSeriesID:  g.GpuSeriesID.String(),
		TechProcess:  g.TechProcess,
		BaseClock:    g.BaseClock,
		BoostClock:   g.BoostClock,
		ShaderCores:  g.ShaderCores,
		CudaSupport:  g.CudaSupport,
		ReleaseDate:  g.ReleaseDate,
	}
}

// --- Brand series ---

// CreateBrandSeriesRequest is the request body for creating a brand series.
type CreateBrandSeriesRequest struct {
	Name           string `json:"name" binding:"required"`
	ManufacturerID string `json:"manufacturerId" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateBrandSeriesRequest) ToEntity() (*brandseries.BrandSeries, error) {
	manufacturerID, err := parseID("manufacturerId", r.ManufacturerID)
	if err != nil {
		return nil, err
	}
	return brandseries.New(r.Name, manufacturerID), nil
}

// UpdateBrandSeriesRequest is the request body for updating a brand series.
type UpdateBrandSeriesRequest struct {
	Name           string `json:"name" binding:"required"`
	ManufacturerID string `json:"manufacturerId" binding:"required"`
	Version        int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateBrandSeriesRequest) ApplyTo(s *brandseries.BrandSeries) error {
	manufacturerID, err := parseID("manufacturerId", r.ManufacturerID)
	if err != nil {
		return err
	}
	s.Name = r.Name
	s.ManufacturerID = manufacturerID
	s.Version = r.Version
	return nil
}

// BrandSeriesResponse is the response body for a brand series.
type BrandSeriesResponse struct {
	BaseResponse
	Name           string `json:"name"`
	ManufacturerID string `json:"manufacturerId"`
}

// FromBrandSeries creates response DTO from domain entity.
func FromBrandSeries(s *brandseries.BrandSeries) *BrandSeriesResponse {
	return &BrandSeriesResponse{
		BaseResponse:   FromBase(s.BaseEntity),
		Name:           s.Name,
		ManufacturerID: s.ManufacturerID.String(),
	}
}

// Package gpu provides the GPU chip catalog (AD102, Navi 31 and so on).
package gpu

import (
	"context"
	"time"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/entity"
	"gpustock/internal/core/id"
)

// Gpu represents a graphics processor chip.
type Gpu struct {
	entity.Catalog

	// GpuSeriesID references the product series
	GpuSeriesID id.ID `db:"gpu_series_id" json:"gpuSeriesId"`

	// TechProcess is the process node in nanometers
	TechProcess int `db:"tech_process" json:"techProcess"`

	// BaseClock in MHz
	BaseClock int `db:"base_clock" json:"baseClock"`

	// BoostClock in MHz
	BoostClock int `db:"boost_clock" json:"boostClock"`

	// ShaderCores is the shader/stream processor count
	ShaderCores int `db:"shader_cores" json:"shaderCores"`

	// CudaSupport indicates CUDA capability
	CudaSupport bool `db:"cuda_support" json:"cudaSupport"`

	// ReleaseDate is the chip release date
	ReleaseDate time.Time `db:"release_date" json:"releaseDate"`
}

// New creates a Gpu with required fields.
func New(name string, seriesID id.ID) *Gpu {
	return &Gpu{
		Catalog:     entity.NewCatalog(name),
		GpuSeriesID: seriesID,
	}
}

// Validate implements entity.Validatable interface.
func (g *Gpu) Validate(ctx context.Context) error {
	if err := g.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(g.GpuSeriesID) {
		return apperror.NewValidation("gpu series is required").
			WithDetail("field", "gpuSeriesId")
	}

	if g.TechProcess <= 0 {
		return apperror.NewValidation("tech process must be positive").
			WithDetail("field", "techProcess")
	}

	if g.BaseClock <= 0 || g.BoostClock <= 0 {
		return apperror.NewValidation("clock speeds must be positive").
			WithDetail("field", "baseClock")
	}

	if g.BoostClock < g.BaseClock {
		return apperror.NewValidation("boost clock cannot be below base clock").
			WithDetail("baseClock", g.BaseClock).
			WithDetail("boostClock", g.BoostClock)
	}

	if g.ShaderCores <= 0 {
		return apperror.NewValidation("shader core count must be positive").
			WithDetail("field", "shaderCores")
	}

	return nil
}

// Package product_repo provides the PostgreSQL implementation for the
// videocard product record.
package product_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/id"
	"gpustock/internal/domain"
	"gpustock/internal/domain/products/videocard"
	"gpustock/internal/infrastructure/storage/postgres"
)

const videocardTable = "videocards"

// Sort whitelist for the product listing.
var videocardSortCols = map[string]struct{}{
	"sku":             {},
	"price":           {},
	"quantity":        {},
	"memory_size":     {},
	"length":          {},
	"recommended_psu": {},
}

// VideocardRepo implements videocard.Repository.
type VideocardRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewVideocardRepo creates a new videocard repository.
func NewVideocardRepo(txManager *postgres.TxManager) *VideocardRepo {
	return &VideocardRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[videocard.Videocard](),
	}
}

func (r *VideocardRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *VideocardRepo) prefixedCols() []string {
	cols := make([]string, len(r.selectCols))
	for i, c := range r.selectCols {
		cols[i] = "v." + c
	}
	return cols
}

// Create inserts a new card.
func (r *VideocardRepo) Create(ctx context.Context, card *videocard.Videocard) error {
	data := postgres.StructToMap(card)

	q := r.builder().
		Insert(videocardTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return apperror.NewDuplicate("videocard", "sku", card.Sku).WithCause(err)
			case "23503":
				return apperror.NewValidation("referenced catalog record does not exist").
					WithDetail("constraint", pgErr.ConstraintName).
					WithCause(err)
			}
		}
		return fmt.Errorf("insert videocard: %w", err)
	}

	return nil
}

// GetByID retrieves card by ID.
func (r *VideocardRepo) GetByID(ctx context.Context, cardID id.ID) (*videocard.Videocard, error) {
	return r.getOne(ctx, squirrel.Eq{"id": cardID}, cardID.String(), "")
}

// GetBySku retrieves card by SKU.
func (r *VideocardRepo) GetBySku(ctx context.Context, sku string) (*videocard.Videocard, error) {
	return r.getOne(ctx, squirrel.Eq{"sku": sku}, sku, "")
}

// GetForUpdate retrieves card by ID with a row lock.
func (r *VideocardRepo) GetForUpdate(ctx context.Context, cardID id.ID) (*videocard.Videocard, error) {
	return r.getOne(ctx, squirrel.Eq{"id": cardID}, cardID.String(), "FOR UPDATE")
}

func (r *VideocardRepo) getOne(ctx context.Context, where squirrel.Eq, key, suffix string) (*videocard.Videocard, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(videocardTable).
		Where(where).
		Limit(1)

	if suffix != "" {
		q = q.Suffix(suffix)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var card videocard.Videocard
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &card, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("videocard", key)
		}
		return nil, fmt.Errorf("get videocard: %w", err)
	}

	return &card, nil
}

// Update modifies an existing card with optimistic locking.
func (r *VideocardRepo) Update(ctx context.Context, card *videocard.Videocard) error {
	data := postgres.StructToMap(card)
	delete(data, "id")
	delete(data, "version")

	q := r.builder().
		Update(videocardTable).
		SetMap(data).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": card.ID}).
		Where(squirrel.Eq{"version": card.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update videocard: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("videocard", card.ID.String())
	}

	return nil
}

// Delete removes the card physically.
func (r *VideocardRepo) Delete(ctx context.Context, cardID id.ID) error {
	q := r.builder().
		Delete(videocardTable).
		Where(squirrel.Eq{"id": cardID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewStillReferenced("videocard", cardID.String()).WithCause(err)
		}
		return fmt.Errorf("delete videocard: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("videocard", cardID.String())
	}

	return nil
}

// Exists checks if card exists.
func (r *VideocardRepo) Exists(ctx context.Context, cardID id.ID) (bool, error) {
	q := r.builder().
		Select("1").
		From(videocardTable).
		Where(squirrel.Eq{"id": cardID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}

	return true, nil
}

// AdjustQuantity applies delta to the stock counter. The WHERE clause
// carries the non-negativity guard, so an over-draw matches zero rows
// instead of committing a negative counter.
func (r *VideocardRepo) AdjustQuantity(ctx context.Context, cardID id.ID, delta int64) (int64, error) {
	sql := `
		UPDATE videocards
		SET quantity = quantity + $1, version = version + 1
		WHERE id = $2 AND quantity + $1 >= 0
	`

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, delta, cardID)
	if err != nil {
		return 0, fmt.Errorf("adjust quantity: %w", err)
	}

	return result.RowsAffected(), nil
}

// List retrieves cards matching the filter. Manufacturer and family
// criteria reach across the catalog tables through joins.
func (r *VideocardRepo) List(ctx context.Context, f videocard.CardFilter) (domain.ListResult[*videocard.Videocard], error) {
	result := domain.ListResult[*videocard.Videocard]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	q := r.builder().
		Select(r.prefixedCols()...).
		From(videocardTable + " v")

	if f.ManufacturerID != nil {
		q = q.Join("cat_brand_series bs ON bs.id = v.brand_series_id").
			Where(squirrel.Eq{"bs.manufacturer_id": *f.ManufacturerID})
	}

	if f.GpuFamilyID != nil {
		q = q.Join("cat_gpus g ON g.id = v.gpu_id").
			Join("cat_gpu_series gs ON gs.id = g.gpu_series_id").
			Where(squirrel.Eq{"gs.gpu_family_id": *f.GpuFamilyID})
	}

	if f.Search != "" {
		q = q.Where(squirrel.ILike{"v.sku": "%" + f.Search + "%"})
	}

	if f.GpuID != nil {
		q = q.Where(squirrel.Eq{"v.gpu_id": *f.GpuID})
	}
	if f.BrandSeriesID != nil {
		q = q.Where(squirrel.Eq{"v.brand_series_id": *f.BrandSeriesID})
	}
	if f.MemoryTypeID != nil {
		q = q.Where(squirrel.Eq{"v.memory_type_id": *f.MemoryTypeID})
	}

	if f.PriceFrom != nil {
		q = q.Where(squirrel.GtOrEq{"v.price": *f.PriceFrom})
	}
	if f.PriceTo != nil {
		q = q.Where(squirrel.LtOrEq{"v.price": *f.PriceTo})
	}
	if f.MemorySizeFrom != nil {
		q = q.Where(squirrel.GtOrEq{"v.memory_size": *f.MemorySizeFrom})
	}
	if f.MemorySizeTo != nil {
		q = q.Where(squirrel.LtOrEq{"v.memory_size": *f.MemorySizeTo})
	}
	if f.PsuFrom != nil {
		q = q.Where(squirrel.GtOrEq{"v.recommended_psu": *f.PsuFrom})
	}
	if f.PsuTo != nil {
		q = q.Where(squirrel.LtOrEq{"v.recommended_psu": *f.PsuTo})
	}
	if f.LengthTo != nil {
		q = q.Where(squirrel.LtOrEq{"v.length": *f.LengthTo})
	}

	if f.Illumination != nil {
		q = q.Where(squirrel.Eq{"v.illumination": *f.Illumination})
	}
	if f.InStock != nil {
		if *f.InStock {
			q = q.Where(squirrel.Gt{"v.quantity": 0})
		} else {
			q = q.Where(squirrel.Eq{"v.quantity": 0})
		}
	}

	countQ := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := parseCardOrderBy(f.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list videocards: %w", err)
	}

	return result, nil
}

func parseCardOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		return "v.sku ASC", nil
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if _, ok := videocardSortCols[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").
			WithDetail("orderBy", orderBy).
			WithDetail("field", field)
	}

	return "v." + field + " " + direction, nil
}

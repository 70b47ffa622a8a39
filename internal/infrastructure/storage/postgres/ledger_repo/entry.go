// Package ledger_repo provides the PostgreSQL implementation for stock
// ledger entries.
package ledger_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/id"
	"gpustock/internal/domain"
	"gpustock/internal/domain/ledger"
	"gpustock/internal/infrastructure/storage/postgres"
)

const entryTable = "stock_ledger"

var entrySortCols = map[string]struct{}{
	"date":     {},
	"kind":     {},
	"quantity": {},
}

// EntryRepo implements ledger.Repository.
type EntryRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewEntryRepo creates a new ledger entry repository.
func NewEntryRepo(txManager *postgres.TxManager) *EntryRepo {
	return &EntryRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[ledger.Entry](),
	}
}

func (r *EntryRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Insert stores a new entry.
func (r *EntryRepo) Insert(ctx context.Context, entry *ledger.Entry) error {
	q := r.builder().
		Insert(entryTable).
		SetMap(postgres.StructToMap(entry))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return r.notFoundFromFK(pgErr, entry)
		}
		return fmt.Errorf("insert entry: %w", err)
	}

	return nil
}

// notFoundFromFK maps a foreign-key violation to the missing referent.
func (r *EntryRepo) notFoundFromFK(pgErr *pgconn.PgError, entry *ledger.Entry) error {
	if strings.Contains(pgErr.ConstraintName, "user") {
		return apperror.NewNotFound("user", entry.UserID.String()).WithCause(pgErr)
	}
	return apperror.NewNotFound("videocard", entry.VideocardID.String()).WithCause(pgErr)
}

// GetByID retrieves entry by ID.
func (r *EntryRepo) GetByID(ctx context.Context, entryID id.ID) (*ledger.Entry, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(entryTable).
		Where(squirrel.Eq{"id": entryID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entry ledger.Entry
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &entry, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("ledger_entry", entryID.String())
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	return &entry, nil
}

// Update replaces all mutable fields of an entry.
func (r *EntryRepo) Update(ctx context.Context, entry *ledger.Entry) error {
	data := postgres.StructToMap(entry)
	delete(data, "id")

	q := r.builder().
		Update(entryTable).
		SetMap(data).
		Where(squirrel.Eq{"id": entry.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return r.notFoundFromFK(pgErr, entry)
		}
		return fmt.Errorf("update entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("ledger_entry", entry.ID.String())
	}

	return nil
}

// Delete removes the entry physically.
func (r *EntryRepo) Delete(ctx context.Context, entryID id.ID) error {
	q := r.builder().
		Delete(entryTable).
		Where(squirrel.Eq{"id": entryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("ledger_entry", entryID.String())
	}

	return nil
}

// SumQuantity totals entry quantities for a (user, videocard, kind) triple,
// leaving out excludeID when set.
func (r *EntryRepo) SumQuantity(ctx context.Context, userID, videocardID id.ID, kind ledger.Kind, excludeID id.ID) (int64, error) {
	q := r.builder().
		Select("COALESCE(SUM(quantity), 0)").
		From(entryTable).
		Where(squirrel.Eq{
			"user_id":      userID,
			"videocard_id": videocardID,
			"kind":         kind,
		})

	if !id.IsNil(excludeID) {
		q = q.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var sum int64
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum quantity: %w", err)
	}

	return sum, nil
}

// List retrieves entries matching the filter.
func (r *EntryRepo) List(ctx context.Context, f ledger.EntryFilter) (domain.ListResult[*ledger.Entry], error) {
	result := domain.ListResult[*ledger.Entry]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	q := r.builder().
		Select(r.selectCols...).
		From(entryTable)

	if f.UserID != nil {
		q = q.Where(squirrel.Eq{"user_id": *f.UserID})
	}
	if f.VideocardID != nil {
		q = q.Where(squirrel.Eq{"videocard_id": *f.VideocardID})
	}
	if f.Kind != nil {
		q = q.Where(squirrel.Eq{"kind": *f.Kind})
	}
	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.DateFrom})
	}
	if f.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *f.DateTo})
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

	orderBy, err := parseEntryOrderBy(f.OrderBy)
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
		return result, fmt.Errorf("list entries: %w", err)
	}

	return result, nil
}

func parseEntryOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		return "date DESC", nil
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
	if _, ok := entrySortCols[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").
			WithDetail("orderBy", orderBy).
			WithDetail("field", field)
	}

	return field + " " + direction, nil
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ErrInvalidPageSize is returned when a caller asks for a non-positive page size.
var ErrInvalidPageSize = errors.New("page size must be positive")

// MaxPageSize caps how many rows a single page may request.
const MaxPageSize = 100

// PageEnvelope is the response shape for every listing. PageIndex is 0-based;
// PageIndex == PageCount signals that no further pages exist.
type PageEnvelope[T any] struct {
	Items     []T `json:"items"`
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
	PageCount int `json:"page_count"`
}

// PageCount computes ceil(total/pageSize). pageSize must be positive.
func PageCount(total, pageSize int) int {
	return (total + pageSize - 1) / pageSize
}

// Paginate counts the rows matching the builder's predicate, then fetches the
// requested page from the same builder so the two can never disagree. A page
// index at or past the end yields an empty item slice alongside the true
// page count, which is how consumers detect exhaustion.
func Paginate[T any](q *QueryBuilder[T], ctx context.Context, pageIndex, pageSize int) (*PageEnvelope[T], error) {
	if pageSize <= 0 {
		return nil, ErrInvalidPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if pageIndex < 0 {
		pageIndex = 0
	}

	total, err := q.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	data, err := q.Limit(pageSize).Offset(pageSize * pageIndex).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get paginated data: %w", err)
	}
	if data == nil {
		data = []T{}
	}

	return &PageEnvelope[T]{
		Items:     data,
		PageIndex: pageIndex,
		PageSize:  pageSize,
		PageCount: PageCount(total, pageSize),
	}, nil
}

// Transaction executes a function within a database transaction
func Transaction(db *DB, ctx context.Context, fn func(tx bun.Tx) error) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(tx)
	})
}

// FindByID is a helper to find a record by ID
func FindByID[T any](db *DB, ctx context.Context, id any) (*T, error) {
	return Query[T](db).Where("id", id).First(ctx)
}

// Create is a helper to insert a single record
func Create[T any](db *DB, ctx context.Context, data *T) (*T, error) {
	return Query[T](db).Insert(ctx, data)
}

// CreateMany is a helper to insert multiple records
func CreateMany[T any](db *DB, ctx context.Context, data []T) ([]T, error) {
	return Query[T](db).InsertMany(ctx, data)
}

// UpdateByID is a helper to update a record by ID
func UpdateByID[T any](db *DB, ctx context.Context, id any, data map[string]any) (int, error) {
	return Query[T](db).Where("id", id).Update(ctx, data)
}

// DeleteByID is a helper to delete a record by ID
func DeleteByID[T any](db *DB, ctx context.Context, id any) (int, error) {
	return Query[T](db).Where("id", id).Delete(ctx)
}

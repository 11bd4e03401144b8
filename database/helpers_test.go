package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		pageSize int
		want     int
	}{
		{"empty", 0, 10, 0},
		{"exact single page", 10, 10, 1},
		{"one over", 11, 10, 2},
		{"one under", 9, 10, 1},
		{"single row", 1, 10, 1},
		{"25 rows of 10", 25, 10, 3},
		{"page size one", 7, 1, 7},
		{"large", 1000, 100, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PageCount(tt.total, tt.pageSize))
		})
	}
}

type pageRow struct {
	bun.BaseModel `bun:"table:page_rows"`

	ID int `bun:"id,pk"`
}

func TestPaginateRejectsNonPositivePageSize(t *testing.T) {
	ctx := context.Background()

	_, err := Paginate(Query[pageRow](nil), ctx, 0, 0)
	require.ErrorIs(t, err, ErrInvalidPageSize)

	_, err = Paginate(Query[pageRow](nil), ctx, 0, -5)
	require.ErrorIs(t, err, ErrInvalidPageSize)
}

package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newPagerListing(total int) *fakeListing {
	items := make([]int, total)
	for i := range items {
		items[i] = i
	}
	return &fakeListing{items: items}
}

func TestPagerLoadReplacesRows(t *testing.T) {
	ctx := context.Background()
	listing := newPagerListing(25)
	pager := NewTablePager(listing.fetch, 10)

	require.NoError(t, pager.Load(ctx))
	require.Len(t, pager.Rows(), 10)
	require.Equal(t, 3, pager.PageCount())

	pager.SetPage(2)
	require.NoError(t, pager.Load(ctx))

	rows := pager.Rows()
	require.Len(t, rows, 5, "rows are replaced wholesale, not accumulated")
	require.Equal(t, 20, rows[0])
	require.Equal(t, []int{0, 2}, listing.calls)
}

func TestPagerPastEndPageIsEmpty(t *testing.T) {
	ctx := context.Background()
	listing := newPagerListing(25)
	pager := NewTablePager(listing.fetch, 10)

	pager.SetPage(3)
	require.NoError(t, pager.Load(ctx))

	require.Empty(t, pager.Rows())
	require.Equal(t, 3, pager.PageCount(), "envelope still reports the true page count")
}

// The server's reported page count always overwrites the pager's belief, so a
// total that changed between requests is picked up without a count refetch.
func TestPagerResyncsPageCount(t *testing.T) {
	ctx := context.Background()
	listing := newPagerListing(25)
	pager := NewTablePager(listing.fetch, 10)

	require.NoError(t, pager.Load(ctx))
	require.Equal(t, 3, pager.PageCount())

	listing.mu.Lock()
	listing.items = listing.items[:5]
	listing.mu.Unlock()

	require.NoError(t, pager.Load(ctx))
	require.Equal(t, 1, pager.PageCount())
	require.Len(t, pager.Rows(), 5)
}

func TestPagerDiscardsStaleResponse(t *testing.T) {
	ctx := context.Background()
	listing := newPagerListing(25)
	listing.started = make(chan struct{})
	listing.release = make(chan struct{})
	pager := NewTablePager(listing.fetch, 10)

	done := make(chan error, 1)
	go func() {
		done <- pager.Load(ctx)
	}()
	<-listing.started

	// The user moved on before the response arrived; latest intent wins.
	pager.SetPage(1)
	close(listing.release)
	require.ErrorIs(t, <-done, ErrStaleResponse)
	require.Empty(t, pager.Rows(), "stale rows must not be displayed")

	listing.mu.Lock()
	listing.started = nil
	listing.release = nil
	listing.mu.Unlock()
	require.NoError(t, pager.Load(ctx))

	rows := pager.Rows()
	require.Len(t, rows, 10)
	require.Equal(t, 10, rows[0])
}

func TestPagerSetPageSizeResetsPage(t *testing.T) {
	listing := newPagerListing(25)
	pager := NewTablePager(listing.fetch, 10)

	pager.SetPage(2)
	require.Equal(t, 2, pager.Page())

	pager.SetPageSize(5)
	require.Equal(t, 0, pager.Page())
	require.Equal(t, 5, pager.PageSize())
}

func TestPagerClampsNegativePage(t *testing.T) {
	listing := newPagerListing(25)
	pager := NewTablePager(listing.fetch, 10)

	pager.SetPage(-3)
	require.Equal(t, 0, pager.Page())
}

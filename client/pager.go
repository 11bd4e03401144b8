package client

import (
	"context"
	"errors"
	"sync"
)

// ErrStaleResponse is returned by Load when its response was superseded by a
// newer Load, SetPage or SetPageSize before it arrived. The stale rows are
// discarded; the caller should simply wait for the newer Load.
var ErrStaleResponse = errors.New("stale response discarded")

// TablePager drives a bounded table view from explicit page and page-size
// state. Each Load replaces the rows wholesale, and the server's reported
// page count always overwrites the pager's prior belief, so a total that
// changed between requests is picked up without a separate count fetch.
type TablePager[T any] struct {
	mu sync.Mutex

	fetch FetchFunc[T]

	pageIndex int
	pageSize  int
	pageCount int // -1 until the first response arrives
	rows      []T

	// seq increments on every state change that supersedes in-flight loads.
	seq uint64
}

func NewTablePager[T any](fetch FetchFunc[T], pageSize int) *TablePager[T] {
	return &TablePager[T]{
		fetch:     fetch,
		pageSize:  pageSize,
		pageCount: -1,
	}
}

// SetPage moves the pager to the given 0-based page. Any in-flight Load is
// superseded.
func (p *TablePager[T]) SetPage(pageIndex int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pageIndex < 0 {
		pageIndex = 0
	}
	p.pageIndex = pageIndex
	p.seq++
}

// SetPageSize changes the page size and resets to the first page. Any
// in-flight Load is superseded.
func (p *TablePager[T]) SetPageSize(pageSize int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pageSize = pageSize
	p.pageIndex = 0
	p.seq++
}

// Load fetches the page matching the current state and replaces the rows. A
// response that arrives after the state moved on is dropped and reported as
// ErrStaleResponse.
func (p *TablePager[T]) Load(ctx context.Context) error {
	p.mu.Lock()
	p.seq++
	reqSeq := p.seq
	pageIndex := p.pageIndex
	pageSize := p.pageSize
	p.mu.Unlock()

	page, err := p.fetch(ctx, pageIndex, pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.seq != reqSeq {
		return ErrStaleResponse
	}
	if err != nil {
		return err
	}

	p.rows = page.Items
	p.pageCount = page.PageCount
	return nil
}

// Rows returns the rows of the last completed Load.
func (p *TablePager[T]) Rows() []T {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]T, len(p.rows))
	copy(out, p.rows)
	return out
}

func (p *TablePager[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageIndex
}

func (p *TablePager[T]) PageSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageSize
}

// PageCount returns the server's last reported page count, or -1 before the
// first response.
func (p *TablePager[T]) PageCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageCount
}

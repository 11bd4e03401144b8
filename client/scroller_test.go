package client

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

// fakeListing serves pages out of a fixed item slice and records every
// requested page index. It can be made to fail or to block mid-fetch.
type fakeListing struct {
	mu       sync.Mutex
	items    []int
	calls    []int
	failures int

	started chan struct{}
	release chan struct{}
}

func (f *fakeListing) fetch(ctx context.Context, pageIndex, pageSize int) (*Page[int], error) {
	f.mu.Lock()
	f.calls = append(f.calls, pageIndex)
	fail := f.failures > 0
	if fail {
		f.failures--
	}
	items := f.items
	started := f.started
	release := f.release
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}

	if fail {
		return nil, errors.New("listing unavailable")
	}

	total := len(items)
	start := pageIndex * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	page := make([]int, end-start)
	copy(page, items[start:end])

	return &Page[int]{
		Items:     page,
		PageIndex: pageIndex,
		PageSize:  pageSize,
		PageCount: (total + pageSize - 1) / pageSize,
	}, nil
}

func (f *fakeListing) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type ScrollerSuite struct {
	suite.Suite

	listing  *fakeListing
	scroller *Scroller[int]
}

func (s *ScrollerSuite) SetupTest() {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	s.listing = &fakeListing{items: items}
	s.scroller = NewScroller(s.listing.fetch, 10)
	s.scroller.backoff = 0
}

func (s *ScrollerSuite) TestAccumulatesPagesInOrder() {
	ctx := context.Background()

	s.Require().NoError(s.scroller.SentinelVisible(ctx))
	s.Require().Len(s.scroller.Items(), 10)
	s.Require().Equal(StateIdle, s.scroller.State())
	s.Require().Equal(3, s.scroller.PageCount())

	s.Require().NoError(s.scroller.SentinelVisible(ctx))
	s.Require().Len(s.scroller.Items(), 20)

	s.Require().NoError(s.scroller.SentinelVisible(ctx))
	items := s.scroller.Items()
	s.Require().Len(items, 25)
	s.Require().Equal(StateExhausted, s.scroller.State())

	for i, item := range items {
		s.Require().Equal(i, item, "items must stay in page arrival order")
	}

	s.Require().Equal([]int{0, 1, 2}, s.listing.calls)
}

func (s *ScrollerSuite) TestExhaustedIgnoresVisibility() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s.Require().NoError(s.scroller.SentinelVisible(ctx))
	}
	s.Require().Equal(StateExhausted, s.scroller.State())

	s.Require().NoError(s.scroller.SentinelVisible(ctx))
	s.Require().Equal(3, s.listing.callCount())
}

// A visibility event while a fetch is outstanding must not issue a second
// request.
func (s *ScrollerSuite) TestVisibilityDuringLoadingIgnored() {
	ctx := context.Background()

	// Advance to pageIndex 2 of 3.
	s.Require().NoError(s.scroller.SentinelVisible(ctx))
	s.Require().NoError(s.scroller.SentinelVisible(ctx))

	s.listing.started = make(chan struct{})
	s.listing.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- s.scroller.SentinelVisible(ctx)
	}()
	<-s.listing.started

	s.Require().Equal(StateLoading, s.scroller.State())
	s.Require().NoError(s.scroller.SentinelVisible(ctx))
	s.Require().Equal(3, s.listing.callCount(), "second visibility event must not fetch")

	close(s.listing.release)
	s.Require().NoError(<-done)

	s.Require().Len(s.scroller.Items(), 25)
	s.Require().Equal(StateExhausted, s.scroller.State())
}

func (s *ScrollerSuite) TestRetryBudgetThenFailed() {
	ctx := context.Background()
	s.listing.failures = 100

	s.Require().Error(s.scroller.SentinelVisible(ctx))
	s.Require().Equal(StateIdle, s.scroller.State(), "first failure leaves place intact")
	s.Require().Empty(s.scroller.Items())

	s.Require().Error(s.scroller.SentinelVisible(ctx))
	s.Require().Error(s.scroller.SentinelVisible(ctx))
	s.Require().Equal(StateFailed, s.scroller.State())

	// Failed is terminal: further visibility events fetch nothing.
	s.Require().NoError(s.scroller.SentinelVisible(ctx))
	s.Require().Equal(3, s.listing.callCount())

	// Every attempt asked for the same page.
	s.Require().Equal([]int{0, 0, 0}, s.listing.calls)
}

func (s *ScrollerSuite) TestRetryClearsFailed() {
	ctx := context.Background()
	s.listing.failures = 3

	for i := 0; i < 3; i++ {
		s.Require().Error(s.scroller.SentinelVisible(ctx))
	}
	s.Require().Equal(StateFailed, s.scroller.State())

	s.scroller.Retry()
	s.Require().Equal(StateIdle, s.scroller.State())

	s.Require().NoError(s.scroller.SentinelVisible(ctx))
	s.Require().Len(s.scroller.Items(), 10)
	s.Require().Equal(StateIdle, s.scroller.State())
}

// Reset while a fetch is in flight supersedes it; the late response must not
// leak into the fresh accumulation.
func (s *ScrollerSuite) TestResetDiscardsInFlightResponse() {
	ctx := context.Background()

	s.listing.started = make(chan struct{})
	s.listing.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- s.scroller.SentinelVisible(ctx)
	}()
	<-s.listing.started

	s.scroller.Reset()
	close(s.listing.release)
	s.Require().NoError(<-done)

	s.Require().Empty(s.scroller.Items(), "superseded response must be dropped")
	s.Require().Equal(StateIdle, s.scroller.State())

	// The next visibility event starts over from page zero.
	s.listing.mu.Lock()
	s.listing.started = nil
	s.listing.release = nil
	s.listing.mu.Unlock()
	s.Require().NoError(s.scroller.SentinelVisible(ctx))
	s.Require().Equal([]int{0, 0}, s.listing.calls)
	s.Require().Len(s.scroller.Items(), 10)
}

func (s *ScrollerSuite) TestEmptyListingExhausts() {
	ctx := context.Background()
	s.listing.items = nil

	s.Require().NoError(s.scroller.SentinelVisible(ctx))
	s.Require().Empty(s.scroller.Items())
	s.Require().Equal(StateExhausted, s.scroller.State())
	s.Require().Equal(0, s.scroller.PageCount())
}

func TestScrollerSuite(t *testing.T) {
	suite.Run(t, new(ScrollerSuite))
}

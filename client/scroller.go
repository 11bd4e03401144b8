package client

import (
	"context"
	"sync"
	"time"
)

// ScrollState is the scroller's lifecycle state.
type ScrollState int

const (
	// StateIdle means more pages may remain and a visibility event will fetch.
	StateIdle ScrollState = iota
	// StateLoading means a fetch is outstanding; visibility events are ignored.
	StateLoading
	// StateExhausted means the last page has been appended.
	StateExhausted
	// StateFailed is terminal after repeated fetch failures, until Retry.
	StateFailed
)

func (s ScrollState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	defaultScrollRetries = 3
	defaultRetryBackoff  = 2 * time.Second
)

// Scroller accumulates listing pages in order as a sentinel element becomes
// visible. At most one fetch is outstanding; visibility events during a fetch
// are dropped, not queued. Failed fetches are retried on later visibility
// events with backoff, and after the retry budget is spent the scroller goes
// Failed and stays there until Retry.
type Scroller[T any] struct {
	mu sync.Mutex

	fetch    FetchFunc[T]
	pageSize int

	state     ScrollState
	items     []T
	nextPage  int
	pageCount int // -1 until the first response arrives

	attempts   int
	maxRetries int
	backoff    time.Duration
	retryAt    time.Time

	// seq tags each issued fetch; a response whose tag no longer matches has
	// been superseded (by Reset or Retry) and is dropped.
	seq uint64

	now func() time.Time
}

func NewScroller[T any](fetch FetchFunc[T], pageSize int) *Scroller[T] {
	return &Scroller[T]{
		fetch:      fetch,
		pageSize:   pageSize,
		state:      StateIdle,
		pageCount:  -1,
		maxRetries: defaultScrollRetries,
		backoff:    defaultRetryBackoff,
		now:        time.Now,
	}
}

// SentinelVisible reports that the sentinel element entered the viewport. It
// is a no-op unless the scroller is Idle with pages remaining and any retry
// backoff has elapsed. On a trigger it fetches the next page synchronously.
func (s *Scroller[T]) SentinelVisible(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil
	}
	if s.pageCount >= 0 && s.nextPage >= s.pageCount {
		s.state = StateExhausted
		s.mu.Unlock()
		return nil
	}
	if s.attempts > 0 && s.now().Before(s.retryAt) {
		s.mu.Unlock()
		return nil
	}

	s.state = StateLoading
	s.seq++
	reqSeq := s.seq
	pageIndex := s.nextPage
	pageSize := s.pageSize
	s.mu.Unlock()

	page, err := s.fetch(ctx, pageIndex, pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq != reqSeq {
		// Superseded while in flight; whoever superseded owns the state now.
		return nil
	}

	if err != nil {
		s.attempts++
		if s.attempts >= s.maxRetries {
			s.state = StateFailed
		} else {
			s.state = StateIdle
			s.retryAt = s.now().Add(s.backoff * time.Duration(s.attempts))
		}
		return err
	}

	s.attempts = 0
	s.retryAt = time.Time{}
	s.items = append(s.items, page.Items...)
	s.nextPage = pageIndex + 1
	s.pageCount = page.PageCount

	if s.nextPage >= s.pageCount {
		s.state = StateExhausted
	} else {
		s.state = StateIdle
	}
	return nil
}

// Retry clears the Failed state so the next visibility event fetches again.
func (s *Scroller[T]) Retry() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateFailed {
		return
	}
	s.seq++
	s.attempts = 0
	s.retryAt = time.Time{}
	s.state = StateIdle
}

// Reset drops all accumulated items and starts over from page zero, e.g.
// after the underlying filter changed. An in-flight response is discarded.
func (s *Scroller[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.items = nil
	s.nextPage = 0
	s.pageCount = -1
	s.attempts = 0
	s.retryAt = time.Time{}
	s.state = StateIdle
}

// Items returns a copy of the accumulated items in page arrival order.
func (s *Scroller[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Scroller[T]) State() ScrollState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PageCount returns the server's last reported page count, or -1 before the
// first response.
func (s *Scroller[T]) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageCount
}

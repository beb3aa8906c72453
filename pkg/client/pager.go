package client

import (
	"context"
	"sync"
	"time"
)

// LoadMoreCooldown throttles repeated load-more triggers (scroll handlers
// fire in bursts).
const LoadMoreCooldown = 800 * time.Millisecond

// FetchPageFunc loads one page of rows for the current search.
type FetchPageFunc[T any] func(ctx context.Context, page int, search string) ([]T, PaginatorInfo, error)

// Pager accumulates rows across pages of a list endpoint. Rows are only ever
// appended, except when the search changes or Reset is called, which clears
// everything and starts over from page one. Responses that arrive after a
// reset are discarded.
type Pager[T any] struct {
	fetch FetchPageFunc[T]

	mu          sync.Mutex
	rows        []T
	search      string
	page        int
	hasMore     bool
	inFlight    bool
	failed      bool
	generation  uint64
	lastTrigger time.Time
	now         func() time.Time
}

func NewPager[T any](fetch FetchPageFunc[T]) *Pager[T] {
	return &Pager[T]{
		fetch:   fetch,
		hasMore: true,
		now:     time.Now,
	}
}

// Rows returns the accumulated rows.
func (p *Pager[T]) Rows() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.rows))
	copy(out, p.rows)
	return out
}

// HasMore reports whether another page is available.
func (p *Pager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Failed reports whether the last load errored. A failed pager keeps its rows
// but stops loading until the next LoadInitial.
func (p *Pager[T]) Failed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

// LoadInitial clears the accumulated rows and fetches page one for the given
// search. It always runs, regardless of cooldown or in-flight state: a new
// search must win over whatever was loading before.
func (p *Pager[T]) LoadInitial(ctx context.Context, search string) error {
	p.mu.Lock()
	p.rows = nil
	p.search = search
	p.page = 0
	p.hasMore = true
	p.failed = false
	p.generation++
	p.inFlight = true
	p.lastTrigger = p.now()
	gen := p.generation
	p.mu.Unlock()

	return p.load(ctx, gen, 1, search)
}

// LoadMore fetches the next page. It is a no-op while a request is in flight,
// when no more pages exist, after a failed load, or within the cooldown window
// after the previous trigger.
func (p *Pager[T]) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if p.inFlight || p.failed || !p.hasMore || p.now().Sub(p.lastTrigger) < LoadMoreCooldown {
		p.mu.Unlock()
		return nil
	}
	p.inFlight = true
	p.lastTrigger = p.now()
	gen := p.generation
	next := p.page + 1
	search := p.search
	p.mu.Unlock()

	return p.load(ctx, gen, next, search)
}

func (p *Pager[T]) load(ctx context.Context, gen uint64, pageNum int, search string) error {
	rows, info, err := p.fetch(ctx, pageNum, search)

	p.mu.Lock()
	defer p.mu.Unlock()

	// A reset happened while this request was out; its result is stale.
	if gen != p.generation {
		return nil
	}
	p.inFlight = false
	if err != nil {
		// Loaded rows stay; no further loads until the next LoadInitial.
		p.failed = true
		return err
	}
	p.rows = append(p.rows, rows...)
	p.page = pageNum
	p.hasMore = info.HasMorePages
	return nil
}

package client

import (
	"context"
	"errors"
	"testing"
	"time"
)

type pagerHarness struct {
	pager *Pager[string]
	calls []int
	clock time.Time
}

// newPagerHarness builds a pager over three fixed pages with a controllable
// clock.
func newPagerHarness() *pagerHarness {
	pages := map[int][]string{
		1: {"a", "b"},
		2: {"c", "d"},
		3: {"e"},
	}

	h := &pagerHarness{clock: time.Unix(0, 0)}
	h.pager = NewPager(func(ctx context.Context, page int, search string) ([]string, PaginatorInfo, error) {
		h.calls = append(h.calls, page)
		return pages[page], PaginatorInfo{CurrentPage: page, LastPage: 3, HasMorePages: page < 3}, nil
	})
	h.pager.now = func() time.Time { return h.clock }
	return h
}

func (h *pagerHarness) advance(d time.Duration) {
	h.clock = h.clock.Add(d)
}

func TestPagerAppendsAcrossPages(t *testing.T) {
	h := newPagerHarness()
	ctx := context.Background()

	if err := h.pager.LoadInitial(ctx, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.advance(time.Second)
	if err := h.pager.LoadMore(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := h.pager.Rows()
	want := []string{"a", "b", "c", "d"}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}
}

func TestPagerLoadMoreHonorsCooldown(t *testing.T) {
	h := newPagerHarness()
	ctx := context.Background()

	h.pager.LoadInitial(ctx, "")
	h.advance(time.Second)
	h.pager.LoadMore(ctx)

	// Inside the cooldown window: ignored.
	h.advance(200 * time.Millisecond)
	h.pager.LoadMore(ctx)
	if len(h.calls) != 2 {
		t.Fatalf("trigger inside cooldown must be ignored, got calls %v", h.calls)
	}

	// Past the cooldown: accepted.
	h.advance(LoadMoreCooldown)
	h.pager.LoadMore(ctx)
	if len(h.calls) != 3 {
		t.Fatalf("trigger past cooldown must run, got calls %v", h.calls)
	}
}

func TestPagerStopsAtLastPage(t *testing.T) {
	h := newPagerHarness()
	ctx := context.Background()

	h.pager.LoadInitial(ctx, "")
	for i := 0; i < 5; i++ {
		h.advance(time.Second)
		h.pager.LoadMore(ctx)
	}

	if len(h.calls) != 3 {
		t.Errorf("expected exactly 3 fetches, got %v", h.calls)
	}
	if h.pager.HasMore() {
		t.Errorf("pager should report no more pages")
	}
	if got := len(h.pager.Rows()); got != 5 {
		t.Errorf("expected 5 rows, got %d", got)
	}
}

func TestPagerResetClearsRowsBeforeAppending(t *testing.T) {
	h := newPagerHarness()
	ctx := context.Background()

	h.pager.LoadInitial(ctx, "")
	h.advance(time.Second)
	h.pager.LoadMore(ctx)

	// New search: everything starts over from page one.
	if err := h.pager.LoadInitial(ctx, "tomato"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := h.pager.Rows()
	if len(rows) != 2 {
		t.Fatalf("reset should leave only page one, got %d rows", len(rows))
	}
	if rows[0] != "a" || rows[1] != "b" {
		t.Errorf("unexpected rows after reset: %v", rows)
	}
}

func TestPagerStopsLoadingAfterFailedLoadMore(t *testing.T) {
	ctx := context.Background()
	clock := time.Unix(0, 0)
	calls := 0

	p := NewPager(func(ctx context.Context, page int, search string) ([]string, PaginatorInfo, error) {
		calls++
		if page >= 2 {
			return nil, PaginatorInfo{}, errors.New("boom")
		}
		return []string{"a", "b"}, PaginatorInfo{CurrentPage: 1, HasMorePages: true}, nil
	})
	p.now = func() time.Time { return clock }

	if err := p.LoadInitial(ctx, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clock = clock.Add(time.Second)
	if err := p.LoadMore(ctx); err == nil {
		t.Fatalf("expected error from failing page")
	}

	// Loaded rows survive the failure.
	if got := len(p.Rows()); got != 2 {
		t.Errorf("expected 2 rows kept after failure, got %d", got)
	}
	if !p.Failed() {
		t.Errorf("pager should report failed state")
	}

	// Further triggers are ignored until a reset, even past the cooldown.
	clock = clock.Add(time.Second)
	if err := p.LoadMore(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("failed pager must not refetch, got %d calls", calls)
	}

	// LoadInitial clears the failed state and loads again.
	clock = clock.Add(time.Second)
	if err := p.LoadInitial(ctx, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Failed() {
		t.Errorf("reset should clear the failed state")
	}
	if calls != 3 {
		t.Errorf("reset should fetch page one again, got %d calls", calls)
	}
}

func TestPagerDiscardsStaleResponseAfterReset(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 2)

	p := NewPager(func(ctx context.Context, page int, search string) ([]string, PaginatorInfo, error) {
		started <- struct{}{}
		if search == "old" {
			<-release
			return []string{"stale"}, PaginatorInfo{HasMorePages: true}, nil
		}
		return []string{"fresh"}, PaginatorInfo{}, nil
	})

	// First load hangs in flight.
	done := make(chan error, 1)
	go func() { done <- p.LoadInitial(context.Background(), "old") }()
	<-started

	// Reset wins while the first request is still out.
	if err := p.LoadInitial(context.Background(), "new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-started

	// Let the stale response land; it must be dropped.
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := p.Rows()
	if len(rows) != 1 || rows[0] != "fresh" {
		t.Errorf("stale response must be discarded, got %v", rows)
	}
}

package client

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPollerFetchesImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var got []int
	p := &Poller[int]{
		Fetch: func(ctx context.Context) (int, error) { return 42, nil },
		OnUpdate: func(v int) {
			got = append(got, v)
			cancel()
		},
		Interval: time.Hour,
	}

	p.Run(ctx)

	if len(got) != 1 || got[0] != 42 {
		t.Errorf("expected immediate fetch of 42, got %v", got)
	}
}

func TestPollerSurfacesErrorVerbatim(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var message string
	p := &Poller[int]{
		Fetch: func(ctx context.Context) (int, error) {
			return 0, errors.New("connection refused")
		},
		OnError: func(msg string) {
			message = msg
			cancel()
		},
		Interval: time.Hour,
	}

	p.Run(ctx)

	if message != "Error loading orders: connection refused" {
		t.Errorf("unexpected message: %q", message)
	}
}

func TestPollerKeepsTickingAfterError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	p := &Poller[int]{
		Fetch: func(ctx context.Context) (int, error) {
			calls++
			if calls == 1 {
				return 0, errors.New("boom")
			}
			return 7, nil
		},
		OnError: func(string) {},
		OnUpdate: func(int) {
			cancel()
		},
		Interval: time.Millisecond,
	}

	p.Run(ctx)

	if calls < 2 {
		t.Errorf("poller should survive an error and fetch again, got %d calls", calls)
	}
}

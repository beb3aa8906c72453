package client

import (
	"context"
	"time"
)

// PollInterval is how often the order board refreshes.
const PollInterval = 5 * time.Second

// Poller periodically re-fetches a value and pushes it to OnUpdate. Failures
// go to OnError with the error text verbatim; polling continues so one bad
// cycle does not kill the board.
type Poller[T any] struct {
	Fetch    func(ctx context.Context) (T, error)
	OnUpdate func(T)
	OnError  func(string)
	Interval time.Duration
}

// Run fetches immediately, then on every tick until the context is cancelled.
func (p *Poller[T]) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = PollInterval
	}

	p.poll(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller[T]) poll(ctx context.Context) {
	value, err := p.Fetch(ctx)
	if err != nil {
		if p.OnError != nil {
			p.OnError("Error loading orders: " + err.Error())
		}
		return
	}
	if p.OnUpdate != nil {
		p.OnUpdate(value)
	}
}

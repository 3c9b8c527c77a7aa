package pipeline

import (
	"context"
	"time"
)

// Retry delays start at 200ms and double up to 5s.
const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// retrier tracks the exponential backoff shared by extract and load retries.
type retrier struct {
	delay time.Duration
}

func newRetrier() *retrier {
	return &retrier{delay: initialBackoff}
}

func (r *retrier) reset() {
	r.delay = initialBackoff
}

// wait sleeps for the current delay and doubles it. Returns false if the
// context ended first.
func (r *retrier) wait(ctx context.Context) bool {
	timer := time.NewTimer(r.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}
	r.advance()
	return true
}

func (r *retrier) advance() {
	r.delay = min(r.delay*2, maxBackoff)
}

package enrich

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDetailDelay spaces successive company detail fetches in the officer flow.
const DefaultDetailDelay = 200 * time.Millisecond

// throttle enforces a minimum gap between successive calls to Wait. The first call
// does not block. A nil limiter disables throttling.
type throttle struct {
	limiter *rate.Limiter
}

func newThrottle(delay time.Duration) *throttle {
	if delay <= 0 {
		return &throttle{}
	}
	return &throttle{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

func (t *throttle) Wait(ctx context.Context) error {
	if t.limiter == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}

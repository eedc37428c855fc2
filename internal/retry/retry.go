package retry

import (
	"context"
	"time"
)

// Retryer runs an operation a bounded number of times with capped
// exponential backoff between attempts.
type Retryer struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

func NewRetryer(maxRetries int, baseDelay, maxDelay time.Duration) *Retryer {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Retryer{
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		maxDelay:   maxDelay,
	}
}

// Do invokes fn until it reports no retry is needed or the attempt budget is
// exhausted. fn decides per call whether its error is transient; definitive
// failures are returned immediately.
func (r *Retryer) Do(ctx context.Context, fn func() (shouldRetry bool, err error)) error {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		shouldRetry, err := fn()
		if !shouldRetry {
			return err
		}
		lastErr = err

		if attempt < r.maxRetries {
			select {
			case <-time.After(r.backoff(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return lastErr
}

func (r *Retryer) backoff(attempt int) time.Duration {
	delay := r.baseDelay * (1 << attempt)
	if delay > r.maxDelay {
		delay = r.maxDelay
	}
	return delay
}

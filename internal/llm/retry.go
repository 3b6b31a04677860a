package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryPolicy controls how transient failures are retried. Output that
// fails schema validation is retried once at most.
type RetryPolicy struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
	Factor   float64
}

// delay returns the wait before attempt n+1, with ±20% jitter. A server
// RetryAfter wins over the computed backoff.
func (p RetryPolicy) delay(n int, err error) time.Duration {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return apiErr.RetryAfter
	}
	d := float64(p.Initial)
	for range n {
		d *= p.Factor
		if d >= float64(p.Max) {
			d = float64(p.Max)
			break
		}
	}
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}

// sleep waits for d or until ctx is done. Tests replace it.
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Retry retries retryable failures according to p.
func Retry(p RetryPolicy) Middleware {
	if p.Attempts <= 1 {
		return nil
	}
	return func(next Provider) Provider {
		return wrapped{inner: next, generate: func(ctx context.Context, req Request) (*Response, error) {
			var err error
			badOutputSeen := false
			for n := range p.Attempts {
				var resp *Response
				resp, err = next.Generate(ctx, req)
				if err == nil {
					return resp, nil
				}
				if ctx.Err() != nil || !retryable(err) {
					return nil, err
				}
				if errors.Is(err, ErrBadOutput) {
					if badOutputSeen {
						return nil, err
					}
					badOutputSeen = true
				}
				if n == p.Attempts-1 {
					break
				}
				if serr := sleep(ctx, p.delay(n, err)); serr != nil {
					return nil, serr
				}
			}
			return nil, err
		}}
	}
}

package llm

import (
	"context"
	"time"
)

// Middleware wraps a Provider with extra behaviour.
type Middleware func(Provider) Provider

// Chain applies mws to p. The first middleware is the outermost.
func Chain(p Provider, mws ...Middleware) Provider {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			p = mws[i](p)
		}
	}
	return p
}

// wrapped is a Provider whose Generate is replaced and whose model comes
// from the provider it wraps.
type wrapped struct {
	inner    Provider
	generate func(context.Context, Request) (*Response, error)
}

func (w wrapped) Generate(ctx context.Context, req Request) (*Response, error) {
	return w.generate(ctx, req)
}

func (w wrapped) Model() string { return w.inner.Model() }

// Timeout bounds each Generate call, including any retries beneath it.
func Timeout(d time.Duration) Middleware {
	if d <= 0 {
		return nil
	}
	return func(next Provider) Provider {
		return wrapped{inner: next, generate: func(ctx context.Context, req Request) (*Response, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next.Generate(ctx, req)
		}}
	}
}

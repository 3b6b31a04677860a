package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noSleep records requested waits instead of sleeping.
func noSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var waits []time.Duration
	orig := sleep
	sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	t.Cleanup(func() { sleep = orig })
	return &waits
}

func failure(kind error) MockResponse {
	return MockResponse{Err: &APIError{Provider: Mock, Kind: kind, Err: errors.New("boom")}}
}

var policy = RetryPolicy{Attempts: 3, Initial: time.Second, Max: 4 * time.Second, Factor: 2}

func TestRetry(t *testing.T) {
	ok := MockResponse{Content: json.RawMessage(`{"answer":"x"}`)}
	tests := []struct {
		name    string
		script  []MockResponse
		wantErr error
		calls   int
	}{
		{"first try", []MockResponse{ok}, nil, 1},
		{"recovers from outage", []MockResponse{failure(ErrUnavailable), failure(ErrRateLimited), ok}, nil, 3},
		{"rejected is final", []MockResponse{failure(ErrRejected), ok}, ErrRejected, 1},
		{"truncated is final", []MockResponse{failure(ErrTruncated), ok}, ErrTruncated, 1},
		{"bad output retried once", []MockResponse{failure(ErrBadOutput), failure(ErrBadOutput), ok}, ErrBadOutput, 2},
		{"gives up", []MockResponse{failure(ErrUnavailable), failure(ErrUnavailable), failure(ErrUnavailable), ok}, ErrUnavailable, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			waits := noSleep(t)
			mock := NewMockProvider(tt.script...)
			resp, err := Chain(mock, Retry(policy)).Generate(context.Background(), Request{Prompt: "q"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"answer":"x"}`, resp.Text())
			}
			assert.Equal(t, tt.calls, mock.CallCount())
			assert.Len(t, *waits, tt.calls-1)
		})
	}
}

func TestRetryDisabled(t *testing.T) {
	assert.Nil(t, Retry(RetryPolicy{Attempts: 1}))
}

func TestRetryHonoursRetryAfter(t *testing.T) {
	waits := noSleep(t)
	mock := NewMockProvider(
		MockResponse{Err: &APIError{Kind: ErrRateLimited, RetryAfter: 7 * time.Second}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	_, err := Chain(mock, Retry(policy)).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{7 * time.Second}, *waits)
}

func TestRetryStopsOnCancel(t *testing.T) {
	noSleep(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := NewMockProvider(failure(ErrUnavailable), failure(ErrUnavailable))
	_, err := Chain(mock, Retry(policy)).Generate(ctx, Request{})
	require.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestBackoffDelay(t *testing.T) {
	for n, want := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 4 * time.Second} {
		got := policy.delay(n, errors.New("x"))
		assert.InDelta(t, float64(want), float64(got), float64(want)*0.2+1, "attempt %d", n)
	}
}

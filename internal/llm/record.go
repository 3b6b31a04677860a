package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/sqlquest/internal/store"
)

// RequestLog receives one event per provider call.
type RequestLog interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// Record writes every call, failed or not, to events and to log. Placed
// beneath Retry it records each attempt separately.
func Record(provider string, events RequestLog, log *zap.Logger) Middleware {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("llm")
	return func(next Provider) Provider {
		return wrapped{inner: next, generate: func(ctx context.Context, req Request) (*Response, error) {
			start := time.Now()
			resp, err := next.Generate(ctx, req)

			ev := store.LLMRequestEventData{
				Provider:    provider,
				Model:       next.Model(),
				Purpose:     string(req.Purpose),
				LatencyMs:   time.Since(start).Milliseconds(),
				Success:     err == nil,
				RequestBody: transcript(req),
			}
			if resp != nil {
				ev.Model = resp.Model
				ev.InputTokens = resp.InputTokens
				ev.OutputTokens = resp.OutputTokens
				ev.ResponseBody = resp.Text()
			}
			if err != nil {
				ev.ErrorMessage = err.Error()
			}

			fields := []zap.Field{
				zap.String("purpose", ev.Purpose),
				zap.String("model", ev.Model),
				zap.Int64("latency_ms", ev.LatencyMs),
				zap.Int("input_tokens", ev.InputTokens),
				zap.Int("output_tokens", ev.OutputTokens),
			}
			if err != nil {
				log.Warn("llm request failed", append(fields, zap.Error(err))...)
			} else {
				log.Debug("llm request", fields...)
			}

			if events != nil {
				// The request log must not fail the call; the event is lost.
				if lerr := events.AppendLLMRequest(context.WithoutCancel(ctx), ev); lerr != nil {
					log.Warn("failed to record llm request", zap.Error(lerr))
				}
			}
			return resp, err
		}}
	}
}

// transcript renders req the way `sqlquest llm view` shows it.
func transcript(req Request) string {
	var b strings.Builder
	section := func(name, body string) {
		b.WriteString("[" + name + "]\n")
		b.WriteString(strings.TrimSpace(body))
		b.WriteString("\n\n")
	}
	if req.System != "" {
		section("system", req.System)
	}
	section("user", req.Prompt)
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

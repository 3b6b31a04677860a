package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/sqlquest/internal/store"
)

func TestRecordWritesEvents(t *testing.T) {
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	core, logs := observer.New(zapcore.DebugLevel)
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"answer":"WHERE"}`)},
		failure(ErrUnavailable),
	)
	p := Chain(mock, Record(Mock, st.EventRepo(), zap.New(core)))

	ctx := context.Background()
	req := Request{Purpose: PurposeExplain, System: "sys", Prompt: "why?", Schema: answerSchema}
	_, err = p.Generate(ctx, req)
	require.NoError(t, err)
	_, err = p.Generate(ctx, Request{Purpose: PurposeQuestionGen, Prompt: "more"})
	require.Error(t, err)

	events, err := st.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	byPurpose := map[string]store.LLMEventRecord{}
	for _, e := range events {
		byPurpose[e.Purpose] = e
	}
	ok := byPurpose["explain"]
	assert.True(t, ok.Success)
	assert.Equal(t, Mock, ok.Provider)
	assert.Equal(t, `{"answer":"WHERE"}`, ok.ResponseBody)
	assert.Contains(t, ok.RequestBody, "[system]\nsys")
	assert.Contains(t, ok.RequestBody, "[user]\nwhy?")
	assert.Contains(t, ok.RequestBody, "[schema: answer]")

	failed := byPurpose["question-gen"]
	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "provider unavailable")

	assert.Equal(t, 1, logs.FilterMessage("llm request").Len())
	assert.Equal(t, 1, logs.FilterMessage("llm request failed").Len())
}

type brokenLog struct{}

func (brokenLog) AppendLLMRequest(context.Context, store.LLMRequestEventData) error {
	return errors.New("disk full")
}

func TestRecordIgnoresLogFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	resp, err := Chain(mock, Record(Mock, brokenLog{}, nil)).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "{}", resp.Text())
}

func TestTranscript(t *testing.T) {
	got := transcript(Request{Prompt: "  hello \n"})
	assert.Equal(t, "[user]\nhello\n", got)
}

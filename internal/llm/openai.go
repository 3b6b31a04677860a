package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterURL = "https://openrouter.ai/api/v1"

// openaiBackend serves OpenAI and any API that speaks its chat protocol,
// OpenRouter included.
type openaiBackend struct {
	name   string
	client *openai.Client
	model  string
}

func newOpenAI(cfg Config) *openaiBackend {
	conf := openai.DefaultConfig(cfg.APIKey)
	switch {
	case cfg.BaseURL != "":
		conf.BaseURL = cfg.BaseURL
	case cfg.Provider == OpenRouter:
		conf.BaseURL = openRouterURL
	}
	name := cfg.Provider
	if name == "" {
		name = OpenAI
	}
	return &openaiBackend{
		name:   name,
		client: openai.NewClientWithConfig(conf),
		model:  cfg.ModelID(),
	}
}

func (b *openaiBackend) Model() string { return b.model }

func (b *openaiBackend) Generate(ctx context.Context, req Request) (*Response, error) {
	chat := openai.ChatCompletionRequest{
		Model:               b.model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.System != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("encode schema %s: %w", req.Schema.Name, err)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(def),
				Strict: true,
			},
		}
	}

	resp, err := b.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, b.classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &APIError{Provider: b.name, Kind: ErrBadOutput, Err: errors.New("no choices returned")}
	}

	choice := resp.Choices[0]
	content := json.RawMessage(choice.Message.Content)
	if choice.FinishReason == openai.FinishReasonLength {
		return nil, &APIError{Provider: b.name, Kind: ErrTruncated, Body: content}
	}
	if req.Schema != nil {
		if err := req.Schema.Check(content); err != nil {
			return nil, from(b.name, err)
		}
	}

	return &Response{
		Content:      content,
		Model:        resp.Model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

func (b *openaiBackend) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classify(b.name, apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classify(b.name, reqErr.HTTPStatusCode, err)
	}
	return classify(b.name, 0, err)
}

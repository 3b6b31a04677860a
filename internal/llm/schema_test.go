package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaCheck(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"valid", `{"answer":"JOIN"}`, true},
		{"extra fields allowed", `{"answer":"JOIN","why":"x"}`, true},
		{"missing required", `{"why":"x"}`, false},
		{"wrong type", `{"answer":3}`, false},
		{"not json", `answer: JOIN`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := answerSchema.Check(json.RawMessage(tt.raw))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrBadOutput)
			var apiErr *APIError
			if assert.ErrorAs(t, err, &apiErr) {
				assert.Equal(t, tt.raw, string(apiErr.Body))
			}
		})
	}
}

func TestSchemaTypedSlices(t *testing.T) {
	s := &Schema{Name: "typed", Definition: map[string]any{
		"type":     "object",
		"required": []string{"n"},
	}}
	assert.NoError(t, s.Check(json.RawMessage(`{"n":1}`)))
	assert.Error(t, s.Check(json.RawMessage(`{}`)))
}

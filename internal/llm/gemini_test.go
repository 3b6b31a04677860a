package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToGenaiSchema(t *testing.T) {
	s := toGenaiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
			"tables": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "description": "table name"},
			},
			"points": map[string]any{"type": "integer"},
		},
		"required": []string{"difficulty"},
	})

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"difficulty"}, s.Required)
	require.Len(t, s.Properties, 3)
	assert.Equal(t, []string{"easy", "hard"}, s.Properties["difficulty"].Enum)
	assert.Equal(t, genai.TypeInteger, s.Properties["points"].Type)

	tables := s.Properties["tables"]
	assert.Equal(t, genai.TypeArray, tables.Type)
	require.NotNil(t, tables.Items)
	assert.Equal(t, "table name", tables.Items.Description)
}

func TestStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, stringList([]any{"a", 1, "b"}))
	assert.Nil(t, stringList("a"))
}

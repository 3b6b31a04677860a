package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is sent as the tool or schema name, e.g. "query-explanation".
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// Check reports whether raw is JSON that satisfies the schema. Failures
// are returned as *APIError wrapping ErrBadOutput.
func (s *Schema) Check(raw json.RawMessage) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return badOutput(raw, fmt.Errorf("not JSON: %w", err))
	}
	compiled, err := s.compile()
	if err != nil {
		return badOutput(raw, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return badOutput(raw, err)
	}
	return nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		// The compiler wants decoded JSON, not Go maps with typed slices.
		b, err := json.Marshal(s.Definition)
		if err != nil {
			s.err = fmt.Errorf("schema %s: %w", s.Name, err)
			return
		}
		var def any
		if err := json.Unmarshal(b, &def); err != nil {
			s.err = fmt.Errorf("schema %s: %w", s.Name, err)
			return
		}

		url := "mem://" + s.Name + ".json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, def); err != nil {
			s.err = fmt.Errorf("schema %s: %w", s.Name, err)
			return
		}
		s.compiled, s.err = c.Compile(url)
	})
	return s.compiled, s.err
}

func badOutput(raw json.RawMessage, err error) error {
	return &APIError{Kind: ErrBadOutput, Body: raw, Err: err}
}

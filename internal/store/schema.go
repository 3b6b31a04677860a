package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// kvTableColumns holds the columns for the "kv" table.
	kvTableColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	kvTable = &schema.Table{
		Name:       tableKV,
		Columns:    kvTableColumns,
		PrimaryKey: []*schema.Column{kvTableColumns[0]},
	}

	// attemptEventsColumns holds the columns for the "attempt_events" table.
	attemptEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "event_id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString, Default: ""},
		{Name: "lesson_id", Type: field.TypeInt},
		{Name: "kind", Type: field.TypeString},
		{Name: "item_index", Type: field.TypeInt},
		{Name: "query", Type: field.TypeString, Default: ""},
		{Name: "outcome", Type: field.TypeString},
		{Name: "mismatch", Type: field.TypeString, Default: ""},
	}
	attemptTable = &schema.Table{
		Name:       tableAttempts,
		Columns:    attemptEventsColumns,
		PrimaryKey: []*schema.Column{attemptEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attempt_events_lesson_id", Columns: []*schema.Column{attemptEventsColumns[5]}},
		},
	}

	// llmRequestEventsColumns holds the columns for the "llm_request_events" table.
	llmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Default: ""},
		{Name: "response_body", Type: field.TypeString, Default: ""},
	}
	llmTable = &schema.Table{
		Name:       tableLLM,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
	}

	// tables lists every table migrate creates.
	tables = []*schema.Table{kvTable, attemptTable, llmTable}
)

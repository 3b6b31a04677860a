package store

import (
	"context"
	"errors"
	"time"
)

const (
	tableKV       = "kv"
	tableAttempts = "attempt_events"
	tableLLM      = "llm_request_events"
)

// ErrNotFound is returned by KVRepo.Get for a missing key.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	Before   int64     // sequence < Before
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
	LessonID int       // 0 = any lesson
}

// KVRepo is a durable string key-value store.
type KVRepo interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// AttemptKind says where a graded attempt came from.
type AttemptKind string

const (
	AttemptKindExercise AttemptKind = "exercise"
	AttemptKindTest     AttemptKind = "test"
)

// AttemptEventData captures one graded exercise or test answer.
type AttemptEventData struct {
	// SessionID groups the answers of one test. Empty for exercises.
	SessionID string
	LessonID  int
	Kind      AttemptKind
	// Index is the exercise or question position.
	Index    int
	Query    string
	Outcome  string
	Mismatch string
}

// AttemptEventRecord is a stored attempt.
type AttemptEventRecord struct {
	ID        int
	EventID   string
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// LessonAttemptStats aggregates attempts for one lesson.
type LessonAttemptStats struct {
	LessonID  int
	Attempts  int
	Correct   int
	Exercises int
	Tests     int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates token usage for one purpose or model.
type LLMUsageStats struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the history tables.
type EventRepo interface {
	// AppendAttempt records a graded exercise or test answer.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// QueryAttempts returns attempts newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEventRecord, error)

	// AttemptStatsByLesson returns per-lesson attempt counts, ordered by lesson.
	AttemptStatsByLesson(ctx context.Context) ([]LessonAttemptStats, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsageStats, error)
}

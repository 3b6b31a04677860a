package assessment

import (
	"fmt"
	"strings"

	"github.com/abhisek/sqlquest/internal/llm"
)

const systemPrompt = `You are a SQL tutor writing test questions for beginners learning SQLite.

Rules:
- Generate a single question about the lesson topic, answerable against the given schema only.
- Use SQLite syntax. Do not use features SQLite lacks (RIGHT JOIN is fine, stored procedures are not).
- "write": the learner writes a query. Provide solution_query, a query that answers the prompt exactly.
- "fix": the learner repairs a broken query. Provide broken_query with one realistic mistake and solution_query with the repair.
- "mcq": a conceptual question with exactly 4 options, exactly one correct. Set answer_index to its 0-based position. Distractors should reflect common mistakes.
- Queries that change data (INSERT, UPDATE, DELETE, CREATE) must come with verify_query, a SELECT that reads the whole affected table ordered by a key. Otherwise leave verify_query empty.
- Only use ORDER BY in solution_query when the prompt asks for an order.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage constructs the user message from GenerateInput and config limits.
func buildUserMessage(input GenerateInput, cfg SourceConfig) string {
	l := input.Lesson

	var b strings.Builder
	fmt.Fprintf(&b, "Lesson: %s\n", l.Title)
	fmt.Fprintf(&b, "Theme: %s\n", l.Theme)
	fmt.Fprintf(&b, "Schema: %s\n", l.SchemaDisplay)

	if len(l.Exercises) > 0 {
		b.WriteString("\nExample exercises:\n")
		for i, ex := range l.Exercises {
			fmt.Fprintf(&b, "%d. %s\n", i+1, ex.Instruction)
		}
	}

	b.WriteString("\nAlready asked in this test:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))
	return b.String()
}

// buildDedup formats prior questions for the prompt, respecting the max limit.
// Returns "None" if there are no prior questions.
func buildDedup(priorQuestions []string, max int) string {
	if len(priorQuestions) == 0 {
		return "None"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(priorQuestions) > max {
		priorQuestions = priorQuestions[len(priorQuestions)-max:]
	}

	var b strings.Builder
	for i, q := range priorQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

// QuestionSchema defines the JSON schema for LLM question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "sql-question",
	Description: "A single SQL test question with its reference answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type": map[string]any{
				"type":        "string",
				"enum":        []any{"write", "fix", "mcq"},
				"description": "write a query, fix a broken query, or pick one of four options",
			},
			"prompt": map[string]any{
				"type":        "string",
				"description": "The question shown to the learner, in plain text",
			},
			"solution_query": map[string]any{
				"type":        "string",
				"description": "Reference SQL for write and fix questions. Empty for mcq.",
			},
			"broken_query": map[string]any{
				"type":        "string",
				"description": "The broken SQL for fix questions. Empty otherwise.",
			},
			"verify_query": map[string]any{
				"type":        "string",
				"description": "SELECT run after a data-changing solution to observe its effect. Empty otherwise.",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Exactly 4 options for mcq. Empty array otherwise.",
			},
			"answer_index": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "0-based index of the correct option for mcq. 0 otherwise.",
			},
		},
		"required":             []any{"type", "prompt", "solution_query", "broken_query", "verify_query", "options", "answer_index"},
		"additionalProperties": false,
	},
}

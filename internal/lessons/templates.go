package lessons

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// choice builds a fixed multiple-choice template. The first option is the
// correct one; the assessment generator shuffles options when asked to.
func choice(prompt, correct string, wrong ...string) Template {
	options := append([]string{correct}, wrong...)
	return func(*rand.Rand) Question {
		return Question{
			Type:    MultipleChoice,
			Prompt:  prompt,
			Options: slices.Clone(options),
			Answer:  0,
		}
	}
}

// writeQ builds a fixed write-a-query template.
func writeQ(prompt, solution string) Template {
	return func(*rand.Rand) Question {
		return Question{Type: Write, Prompt: prompt, Solution: solution}
	}
}

// fixQ builds a fixed repair-this-query template.
func fixQ(prompt, broken, solution string) Template {
	return fixV(prompt, broken, solution, "")
}

// fixV is fixQ for a data-changing query observed through verify.
func fixV(prompt, broken, solution, verify string) Template {
	return func(*rand.Rand) Question {
		return Question{Type: Fix, Prompt: prompt, Broken: broken, Solution: solution, Verify: verify}
	}
}

// quoteList renders values as a SQL string list: 'a','b'.
func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ",")
}

// tableShape returns a query describing the columns of table.
func tableShape(table string) string {
	return `SELECT name, upper(type) AS type, "notnull", dflt_value, pk FROM pragma_table_info('` + table + `')`
}

// Package compare decides whether two query results represent the same answer.
package compare

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/sqlquest/internal/sqlengine"
)

// nullMarker stands in for SQL NULL. Normalized cells are lowercased, so
// none can equal this upper-case marker.
const nullMarker = "\x00NULL"

var orderByPattern = regexp.MustCompile(`(?i)\border\s+by\b`)

// OrderSensitive reports whether a reference solution asks for a row order.
// It is a text heuristic: an ORDER BY inside a subquery also counts.
func OrderSensitive(solution string) bool {
	return orderByPattern.MatchString(solution)
}

// Resolve returns the authored order sensitivity when set, otherwise the
// heuristic derived from the solution text.
func Resolve(solution string, override *bool) bool {
	if override != nil {
		return *override
	}
	return OrderSensitive(solution)
}

// Equivalent reports whether a and b hold the same answer.
//
// Column names are matched by position, ignoring case. Rows are matched
// positionally when orderSensitive is set, and as multisets otherwise.
func Equivalent(a, b sqlengine.Result, orderSensitive bool) bool {
	return Diff(a, b, orderSensitive).Kind == Match
}

// Normalize renders one cell into its canonical comparison form.
func Normalize(v any) string {
	if v == nil {
		return nullMarker
	}
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	case int64:
		s = strconv.FormatInt(x, 10)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = sqlengine.FormatValue(x)
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeRows normalizes every cell of r, keeping rows as cell slices.
func NormalizeRows(r sqlengine.Result) [][]string {
	rows := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = Normalize(v)
		}
		rows[i] = cells
	}
	return rows
}

func sortedRows(r sqlengine.Result) [][]string {
	rows := NormalizeRows(r)
	slices.SortFunc(rows, slices.Compare)
	return rows
}

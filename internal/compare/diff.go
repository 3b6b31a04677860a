package compare

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/sqlquest/internal/sqlengine"
)

// MismatchKind classifies the first difference found between two results.
type MismatchKind string

const (
	Match       MismatchKind = "match"
	ErrorResult MismatchKind = "error"
	ColumnCount MismatchKind = "column-count"
	ColumnName  MismatchKind = "column-name"
	RowCount    MismatchKind = "row-count"
	RowOrder    MismatchKind = "row-order"
	RowValues   MismatchKind = "row-values"
)

// Mismatch describes why two results are not equivalent.
type Mismatch struct {
	Kind MismatchKind

	// Position is the column index for ColumnName and the row index for
	// RowValues. It is -1 when not applicable.
	Position int

	Got, Want string
}

// Diff compares got against want and reports the first difference.
// A zero-difference comparison returns Kind == Match.
func Diff(got, want sqlengine.Result, orderSensitive bool) Mismatch {
	if got.Err != nil || want.Err != nil {
		return Mismatch{Kind: ErrorResult, Position: -1}
	}

	if len(got.Columns) != len(want.Columns) {
		return Mismatch{
			Kind:     ColumnCount,
			Position: -1,
			Got:      fmt.Sprint(len(got.Columns)),
			Want:     fmt.Sprint(len(want.Columns)),
		}
	}
	for i := range got.Columns {
		if !strings.EqualFold(got.Columns[i], want.Columns[i]) {
			return Mismatch{Kind: ColumnName, Position: i, Got: got.Columns[i], Want: want.Columns[i]}
		}
	}

	if len(got.Rows) != len(want.Rows) {
		return Mismatch{
			Kind:     RowCount,
			Position: -1,
			Got:      fmt.Sprint(len(got.Rows)),
			Want:     fmt.Sprint(len(want.Rows)),
		}
	}

	gr, wr := sortedRows(got), sortedRows(want)
	if i := firstDifference(gr, wr); i >= 0 {
		return Mismatch{Kind: RowValues, Position: i, Got: rowText(gr[i]), Want: rowText(wr[i])}
	}

	if orderSensitive {
		gr, wr = NormalizeRows(got), NormalizeRows(want)
		if i := firstDifference(gr, wr); i >= 0 {
			return Mismatch{Kind: RowOrder, Position: i, Got: rowText(gr[i]), Want: rowText(wr[i])}
		}
	}

	return Mismatch{Kind: Match, Position: -1}
}

func firstDifference(a, b [][]string) int {
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			return i
		}
	}
	return -1
}

func rowText(row []string) string {
	cells := make([]string, len(row))
	for i, c := range row {
		if c == nullMarker {
			c = "null"
		}
		cells[i] = c
	}
	return "(" + strings.Join(cells, ", ") + ")"
}

// Describe returns a learner-facing sentence for the mismatch.
func (m Mismatch) Describe() string {
	switch m.Kind {
	case Match:
		return "Results match."
	case ErrorResult:
		return "The query did not run."
	case ColumnCount:
		return fmt.Sprintf("Expected %s column(s) but got %s.", m.Want, m.Got)
	case ColumnName:
		return fmt.Sprintf("Column %d should be %q, not %q.", m.Position+1, m.Want, m.Got)
	case RowCount:
		return fmt.Sprintf("Expected %s row(s) but got %s.", m.Want, m.Got)
	case RowOrder:
		return "The right rows, but in the wrong order."
	case RowValues:
		return "Some values differ from the expected result."
	default:
		return string(m.Kind)
	}
}

package sqlengine

import (
	"fmt"
	"strconv"
	"time"
)

// Result is the outcome of running one submission.
//
// A tabular result has Columns (possibly with zero Rows). A non-tabular
// success has no Columns and carries Message instead.
type Result struct {
	Columns []string
	Rows    [][]any
	Message string
	Err     error
}

// Tabular reports whether the result has a column header.
func (r Result) Tabular() bool {
	return r.Err == nil && len(r.Columns) > 0
}

// Failed reports whether the engine rejected the query.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Cell returns the display form of the value at row i, column j.
func (r Result) Cell(i, j int) string {
	return FormatValue(r.Rows[i][j])
}

// StringRows returns every row with its cells in display form.
func (r Result) StringRows() [][]string {
	out := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatValue(v)
		}
		out[i] = cells
	}
	return out
}

// FormatValue renders a scanned SQLite value for display.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	default:
		return fmt.Sprint(x)
	}
}

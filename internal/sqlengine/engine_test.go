package sqlengine

import (
	"context"
	"reflect"
	"testing"
)

const planetsSchema = `
CREATE TABLE planets (name TEXT, diameter INTEGER);
INSERT INTO planets VALUES ('Mercury', 4879);
INSERT INTO planets VALUES ('Venus', 12104);
`

func openTestSession(t *testing.T, schema string) *Session {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, Options{})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Reinit(ctx, schema); err != nil {
		t.Fatalf("reinit: %v", err)
	}
	return s
}

func TestExecSelect(t *testing.T) {
	s := openTestSession(t, planetsSchema)

	res := s.Exec(context.Background(), "SELECT name, diameter FROM planets ORDER BY diameter")
	if res.Err != nil {
		t.Fatalf("exec: %v", res.Err)
	}
	if !reflect.DeepEqual(res.Columns, []string{"name", "diameter"}) {
		t.Errorf("columns = %v", res.Columns)
	}
	want := [][]string{{"Mercury", "4879"}, {"Venus", "12104"}}
	if got := res.StringRows(); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestExecEmptyTableIsTabular(t *testing.T) {
	s := openTestSession(t, planetsSchema)

	res := s.Exec(context.Background(), "SELECT name FROM planets WHERE diameter < 0")
	if !res.Tabular() {
		t.Fatal("expected a tabular result with zero rows")
	}
	if len(res.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(res.Rows))
	}
	if res.Message != "" {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestExecNonTabular(t *testing.T) {
	s := openTestSession(t, planetsSchema)

	res := s.Exec(context.Background(), "INSERT INTO planets VALUES ('Earth', 12742)")
	if res.Err != nil {
		t.Fatalf("exec: %v", res.Err)
	}
	if res.Tabular() {
		t.Error("insert should not be tabular")
	}
	if res.Message != NoRowsMessage {
		t.Errorf("message = %q", res.Message)
	}
}

func TestExecMultipleStatements(t *testing.T) {
	s := openTestSession(t, planetsSchema)
	ctx := context.Background()

	res := s.Exec(ctx, "INSERT INTO planets VALUES ('Mars', 6779); SELECT COUNT(*) FROM planets; DELETE FROM planets")
	if res.Err != nil {
		t.Fatalf("exec: %v", res.Err)
	}
	if got := res.Cell(0, 0); got != "3" {
		t.Errorf("count = %s, want 3", got)
	}

	// The trailing DELETE still ran.
	after := s.Exec(ctx, "SELECT COUNT(*) FROM planets")
	if got := after.Cell(0, 0); got != "0" {
		t.Errorf("count after delete = %s, want 0", got)
	}
}

func TestExecError(t *testing.T) {
	s := openTestSession(t, planetsSchema)

	res := s.Exec(context.Background(), "SELECT nope FROM planets")
	if !res.Failed() {
		t.Fatal("expected an engine error")
	}
	if !IsEngineError(res.Err) {
		t.Errorf("error %T is not an EngineError", res.Err)
	}
}

func TestReinitDiscardsMutations(t *testing.T) {
	s := openTestSession(t, planetsSchema)
	ctx := context.Background()

	s.Exec(ctx, "DELETE FROM planets")
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	res := s.Exec(ctx, "SELECT COUNT(*) FROM planets")
	if got := res.Cell(0, 0); got != "2" {
		t.Errorf("count after reset = %s, want 2", got)
	}
}

func TestNullScansAsNil(t *testing.T) {
	s := openTestSession(t, "")

	res := s.Exec(context.Background(), "SELECT NULL, '', 'null', 1.5")
	if res.Err != nil {
		t.Fatalf("exec: %v", res.Err)
	}
	row := res.Rows[0]
	if row[0] != nil {
		t.Errorf("NULL scanned as %#v", row[0])
	}
	if got := FormatValue(row[3]); got != "1.5" {
		t.Errorf("float = %q", got)
	}
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "SELECT 1", []string{"SELECT 1"}},
		{"trailing semicolon", "SELECT 1;", []string{"SELECT 1"}},
		{"two", "SELECT 1; SELECT 2", []string{"SELECT 1", "SELECT 2"}},
		{"semicolon in string", "SELECT 'a;b'; SELECT 2", []string{"SELECT 'a;b'", "SELECT 2"}},
		{"escaped quote", "SELECT 'it''s;'", []string{"SELECT 'it''s;'"}},
		{"line comment", "SELECT 1 -- x; y\n; SELECT 2", []string{"SELECT 1 -- x; y", "SELECT 2"}},
		{"block comment", "SELECT /* ; */ 1", []string{"SELECT /* ; */ 1"}},
		{"comment only", "-- nothing here", nil},
		{"empty", "  ;; ", nil},
		{
			"trigger body",
			"CREATE TRIGGER t AFTER INSERT ON a BEGIN UPDATE b SET n = 1; END; SELECT 1",
			[]string{"CREATE TRIGGER t AFTER INSERT ON a BEGIN UPDATE b SET n = 1; END", "SELECT 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitStatements(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitStatements(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

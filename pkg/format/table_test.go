package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ruslano69/mschain/pkg/query"
)

func TestFromResult(t *testing.T) {
	res := &query.Result{
		Columns: []string{"name", "database_id"},
		Rows:    [][]string{{"master", "1"}, {"tempdb", "2"}},
	}

	tbl := FromResult(res)
	if tbl.Empty() {
		t.Fatal("expected non-empty table")
	}
	if tbl.RowCount() != 2 {
		t.Errorf("RowCount = %d, want 2", tbl.RowCount())
	}

	if !FromResult(nil).Empty() {
		t.Errorf("nil result must convert to an empty table")
	}
}

func TestWriteCSV(t *testing.T) {
	tbl := &Table{
		Columns: []string{"name", "value"},
		Rows:    [][]string{{"a", "1"}, {"b", "has,comma"}},
	}

	var buf bytes.Buffer
	if err := tbl.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 CSV lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "name,value" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != `b,"has,comma"` {
		t.Errorf("expected quoted comma field, got %q", lines[2])
	}
}

func TestRenderContainsData(t *testing.T) {
	tbl := &Table{
		Columns: []string{"login"},
		Rows:    [][]string{{"sa"}},
	}

	out, err := tbl.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "login") || !strings.Contains(out, "sa") {
		t.Errorf("rendered table missing content:\n%s", out)
	}

	empty, err := (&Table{}).Render()
	if err != nil || empty != "" {
		t.Errorf("empty table should render to empty string, got %q, %v", empty, err)
	}
}

// Package format renders query results for the console and for file export.
package format

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/ruslano69/mschain/pkg/query"
)

// Table is a rendered-agnostic result: column names plus string rows.
type Table struct {
	Columns []string
	Rows    [][]string
}

// FromResult converts an executor result.
func FromResult(res *query.Result) *Table {
	if res == nil {
		return &Table{}
	}
	return &Table{Columns: res.Columns, Rows: res.Rows}
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Render returns the table as boxed console output with a header row.
func (t *Table) Render() (string, error) {
	if t.Empty() {
		return "", nil
	}

	data := make(pterm.TableData, 0, len(t.Rows)+1)
	data = append(data, t.Columns)
	data = append(data, t.Rows...)

	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(data).
		Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render table: %w", err)
	}
	return out, nil
}

// WriteCSV writes the table, header first, as CSV.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

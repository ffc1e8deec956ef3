package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ruslano69/mschain/pkg/audit"
	"github.com/ruslano69/mschain/pkg/connection"
	"github.com/ruslano69/mschain/pkg/format"
	"github.com/ruslano69/mschain/pkg/query"
)

// Env is the shared session state actions operate on. One Env lives per
// session; LastResult is updated by every row-returning statement so that
// follow-up actions (export) can reuse it.
type Env struct {
	Executor   *query.Executor
	Session    *connection.Session
	Audit      *audit.Logger
	LastResult *format.Table
}

// Display renders a result to the console and remembers it as the last
// result.
func (e *Env) Display(res *query.Result) error {
	tbl := format.FromResult(res)
	e.LastResult = tbl

	if tbl.Empty() {
		pterm.Info.Println("no rows returned")
		return nil
	}

	out, err := tbl.Render()
	if err != nil {
		return err
	}
	pterm.Println(out)
	pterm.Info.Printfln("%d row(s)", tbl.RowCount())
	return nil
}

// Query executes a statement and displays the rows.
func (e *Env) Query(ctx context.Context, stmt string) error {
	res, err := e.Executor.Execute(ctx, stmt)
	if err != nil {
		return err
	}
	return e.Display(res)
}

// escapeLiteral doubles apostrophes for embedding operator input in a string
// literal. The chain encoders re-escape for remote hops on top of this.
func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// escapeIdentifier makes a name safe inside [brackets].
func escapeIdentifier(s string) string {
	return strings.ReplaceAll(s, "]", "]]")
}

// requireArgs is the common arity check used by Validate implementations.
func requireArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("expected at least %d argument(s): %s", n, usage)
	}
	return nil
}

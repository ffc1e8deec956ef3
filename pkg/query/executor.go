package query

import (
	"context"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ruslano69/mschain/pkg/chain"
)

// ExecutionMode selects how a chained statement is phrased on the wire.
type ExecutionMode int

const (
	// ModeRemoteProcedure nests EXEC ('...') AT [server] calls. Preferred:
	// it accepts any T-SQL batch, but requires the RPC Out server option.
	ModeRemoteProcedure ExecutionMode = iota

	// ModeDistributedQuery nests OPENQUERY calls. Always available, but the
	// remote statement must produce a single determinable result shape.
	ModeDistributedQuery
)

func (m ExecutionMode) String() string {
	switch m {
	case ModeRemoteProcedure:
		return "remote procedure call (EXEC AT)"
	case ModeDistributedQuery:
		return "distributed query (OPENQUERY)"
	default:
		return "unknown"
	}
}

// Result holds the rows returned by a submitted batch. Every value is
// string-scanned; NULL becomes the empty string.
type Result struct {
	Columns  []string
	Rows     [][]string
	Affected int64
}

// Scalar returns the first column of the first row.
func (r *Result) Scalar() (string, bool) {
	if r == nil || len(r.Rows) == 0 || len(r.Rows[0]) == 0 {
		return "", false
	}
	return r.Rows[0][0], true
}

// Connection submits one flat batch of SQL text and returns rows or a
// structured error. Implementations are not safe for concurrent use; the
// Executor relies on its caller to serialize.
type Connection interface {
	Submit(ctx context.Context, statement string, wantRows bool) (*Result, error)
	Close() error
}

// Executor encodes statements for the active chain, submits them, and
// classifies failures. It owns the session-scoped execution mode: the first
// "not configured for RPC" failure permanently downgrades the session from
// EXEC AT to OPENQUERY encoding and retries exactly once. There is no
// transition back; a fresh Executor always starts at ModeRemoteProcedure.
//
// Executor is not safe for concurrent use. One statement is in flight at a
// time; callers must serialize.
type Executor struct {
	conn   Connection
	chain  *chain.Chain
	mode   ExecutionMode
	direct string // name of the directly-reachable server, for diagnostics
}

// NewExecutor wires an executor to a live connection and chain. The chain may
// be empty (statements run on the direct connection unchanged).
func NewExecutor(conn Connection, ch *chain.Chain) *Executor {
	if ch == nil {
		ch = chain.New()
	}
	return &Executor{
		conn:  conn,
		chain: ch,
		mode:  ModeRemoteProcedure,
	}
}

// Mode returns the current execution mode.
func (e *Executor) Mode() ExecutionMode {
	return e.mode
}

// Chain returns the active chain. Mutations through it affect subsequent
// encodings.
func (e *Executor) Chain() *chain.Chain {
	return e.chain
}

// SetChain replaces the active chain.
func (e *Executor) SetChain(ch *chain.Chain) {
	if ch == nil {
		ch = chain.New()
	}
	e.chain = ch
}

// SetDirectServer records the name of the directly-reachable server, used in
// diagnostics when the chain is empty.
func (e *Executor) SetDirectServer(name string) {
	e.direct = name
}

// ExecutionTarget returns the server the next statement will run on: the last
// hop of the chain, or the direct server when the chain is empty.
func (e *Executor) ExecutionTarget() string {
	if last, ok := e.chain.Last(); ok {
		return last.Name
	}
	return e.direct
}

// Execute encodes, submits, and returns rows for stmt.
//
// Cancelling ctx aborts the client-side wait only: a statement already
// submitted may still run to completion on the server.
func (e *Executor) Execute(ctx context.Context, stmt string) (*Result, error) {
	return e.run(ctx, stmt, true)
}

// ExecuteNonQuery submits stmt and returns the affected row count.
func (e *Executor) ExecuteNonQuery(ctx context.Context, stmt string) (int64, error) {
	res, err := e.run(ctx, stmt, false)
	if err != nil {
		return 0, err
	}
	return res.Affected, nil
}

// ExecuteScalar submits stmt and returns the first column of the first row.
// A result without rows yields the empty string and ok=false.
func (e *Executor) ExecuteScalar(ctx context.Context, stmt string) (string, bool, error) {
	res, err := e.run(ctx, stmt, true)
	if err != nil {
		return "", false, err
	}
	val, ok := res.Scalar()
	return val, ok, nil
}

// Encode returns the wire statement the executor would submit for stmt under
// the current mode, without touching the network.
func (e *Executor) Encode(stmt string) string {
	if e.chain.IsEmpty() {
		return stmt
	}
	if e.mode == ModeDistributedQuery {
		return e.chain.EncodeDistributedQuery(stmt)
	}
	return e.chain.EncodeRemoteProcedure(stmt)
}

func (e *Executor) run(ctx context.Context, stmt string, wantRows bool) (*Result, error) {
	if strings.TrimSpace(stmt) == "" {
		return nil, ErrEmptyStatement
	}
	if e.conn == nil {
		return nil, ErrNotConnected
	}

	res, err := e.conn.Submit(ctx, e.Encode(stmt), wantRows)
	if err == nil {
		return res, nil
	}

	if IsRemoteProcedureDisabled(err) && e.mode == ModeRemoteProcedure {
		e.mode = ModeDistributedQuery
		pterm.Warning.Printfln("server %q is not configured for remote procedure calls", e.ExecutionTarget())
		pterm.Warning.Println("switching to OPENQUERY encoding for the rest of the session")

		res, err = e.conn.Submit(ctx, e.Encode(stmt), wantRows)
		if err == nil {
			return res, nil
		}
		// The single retry failed; fall through to classification and
		// propagate. The mode stays downgraded.
	}

	if IsResultShapeAmbiguous(err) {
		return nil, &ResultShapeError{Server: e.ExecutionTarget(), Err: err}
	}

	return nil, err
}

// Package terminal runs the interactive console loop: SQL statements pass
// through the chain-aware executor, "!" lines dispatch canned actions.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/ruslano69/mschain/pkg/actions"
	"github.com/ruslano69/mschain/pkg/audit"
)

// Terminal owns the read-dispatch-render loop for one session.
type Terminal struct {
	env *actions.Env
	in  io.Reader
}

// New builds a terminal over stdin.
func New(env *actions.Env) *Terminal {
	return &Terminal{env: env, in: os.Stdin}
}

// Run reads lines until EOF, exit, or ctx cancellation. An interrupt while a
// statement is in flight aborts the client-side wait only; the statement may
// still finish on the server.
func (t *Terminal) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(t.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		pterm.Print(t.prompt())

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil // EOF
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return nil
		case line == "help" || line == "!help":
			t.printHelp()
			continue
		}

		stmtCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		t.dispatch(stmtCtx, line)
		stop()
	}
}

// dispatch routes one input line. Errors are rendered, never fatal: the
// session survives failed statements.
func (t *Terminal) dispatch(ctx context.Context, line string) {
	var err error
	if strings.HasPrefix(line, "!") {
		fields := strings.Fields(line[1:])
		if len(fields) == 0 {
			pterm.Warning.Println("empty action, try !help")
			return
		}
		err = actions.Run(ctx, t.env, fields[0], fields[1:])
	} else {
		err = RunOnce(ctx, t.env, line)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			pterm.Warning.Println("cancelled; the statement may still complete on the server")
			return
		}
		pterm.Error.Println(err.Error())
	}
}

// prompt renders "[login(user)@server:database]> " for the current
// execution target.
func (t *Terminal) prompt() string {
	systemUser := t.env.Session.SystemUser()
	if systemUser == "" {
		systemUser = "unknown"
	}
	mappedUser := t.env.Session.MappedUser()
	if mappedUser == "" {
		mappedUser = "unknown"
	}

	server := t.env.Executor.ExecutionTarget()
	database := t.env.Session.Database()

	return pterm.Sprintf("[%s(%s)@%s:%s]> ",
		pterm.Cyan(systemUser), mappedUser, pterm.LightGreen(server), database)
}

func (t *Terminal) printHelp() {
	rows := pterm.TableData{{"Action", "Usage", "Description"}}
	for _, info := range actions.List() {
		rows = append(rows, []string{info.Name, info.Usage, info.Description})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Println(out)
	pterm.Info.Println("anything else is executed as SQL; exit or quit to leave")
}

// RunOnce executes a single SQL statement, records it in the audit trail,
// and renders the result. Used both by the interactive loop and by the
// one-shot -query mode.
func RunOnce(ctx context.Context, env *actions.Env, stmt string) error {
	start := time.Now()
	res, err := env.Executor.Execute(ctx, stmt)

	entry := &audit.Entry{
		Operation: audit.OpQuery,
		Status:    audit.StatusSuccess,
		Server:    env.Executor.Chain().String(),
		Statement: stmt,
		Duration:  time.Since(start),
	}
	if err != nil {
		entry.Status = audit.StatusFailure
		entry.Error = err.Error()
		env.Audit.Record(entry)
		return err
	}
	entry.Rows = len(res.Rows)
	env.Audit.Record(entry)

	return env.Display(res)
}

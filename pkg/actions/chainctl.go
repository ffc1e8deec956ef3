package actions

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/ruslano69/mschain/pkg/chain"
)

func init() {
	Register("chain", "Show, extend, or reset the linked server chain", "!chain <show|add <name[:login]>|reset>",
		func() Action { return &chainAction{} })
}

type chainAction struct {
	mode   string
	server chain.Server
}

func (a *chainAction) Validate(args []string) error {
	if len(args) == 0 {
		a.mode = "show"
		return nil
	}

	a.mode = args[0]
	switch a.mode {
	case "show", "reset":
		return nil
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("expected a server token: !chain add <name[:login]>")
		}
		srv, err := chain.ParseServer(args[1])
		if err != nil {
			return err
		}
		a.server = srv
		return nil
	default:
		return fmt.Errorf("invalid mode %q, expected show, add, or reset", a.mode)
	}
}

func (a *chainAction) Execute(ctx context.Context, env *Env) error {
	ch := env.Executor.Chain()

	switch a.mode {
	case "add":
		ch.AppendServer(a.server)
		pterm.Success.Printfln("chain extended: %s", ch)
	case "reset":
		ch.Reset()
		pterm.Success.Printfln("chain reset, executing directly on %s", env.Executor.ExecutionTarget())
	default:
		pterm.Info.Printfln("chain: %s", ch)
		if !ch.IsEmpty() {
			pterm.Info.Printfln("encoding: %s", env.Executor.Mode())
		}
	}
	return nil
}

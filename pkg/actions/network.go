package actions

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
)

func init() {
	Register("links", "List linked servers and their login mappings", "!links",
		func() Action { return &linksAction{} })
	Register("rpc", "Enable or disable the RPC Out option on a linked server", "!rpc <add|del> <server>",
		func() Action { return &rpcAction{} })
}

type linksAction struct{}

func (a *linksAction) Validate(args []string) error { return nil }

func (a *linksAction) Execute(ctx context.Context, env *Env) error {
	return env.Query(ctx, `
		SELECT
			srv.name AS [Link],
			srv.product AS [Product],
			srv.provider AS [Provider],
			srv.data_source AS [Data Source],
			COALESCE(prin.name, 'N/A') AS [Local Login],
			ll.remote_name AS [Remote Login],
			srv.is_rpc_out_enabled AS [RPC Out],
			srv.is_data_access_enabled AS [OPENQUERY],
			CONVERT(NVARCHAR(19), srv.modify_date, 120) AS [Last Modified]
		FROM sys.servers srv
		LEFT JOIN sys.linked_logins ll ON srv.server_id = ll.server_id
		LEFT JOIN sys.server_principals prin ON ll.local_principal_id = prin.principal_id
		WHERE srv.is_linked = 1
		ORDER BY srv.modify_date DESC;`)
}

type rpcAction struct {
	enable bool
	server string
}

func (a *rpcAction) Validate(args []string) error {
	if err := requireArgs(args, 2, "!rpc <add|del> <server>"); err != nil {
		return err
	}

	switch args[0] {
	case "add":
		a.enable = true
	case "del":
		a.enable = false
	default:
		return fmt.Errorf("invalid mode %q, expected add or del", args[0])
	}

	a.server = args[1]
	return nil
}

func (a *rpcAction) Execute(ctx context.Context, env *Env) error {
	value := "false"
	if a.enable {
		value = "true"
	}

	stmt := fmt.Sprintf(
		"EXEC sp_serveroption @server = '%s', @optname = 'rpc out', @optvalue = '%s';",
		escapeLiteral(a.server), value)

	if _, err := env.Executor.ExecuteNonQuery(ctx, stmt); err != nil {
		return fmt.Errorf("failed to set rpc out on %q: %w", a.server, err)
	}

	pterm.Success.Printfln("rpc out = %s on linked server %q", value, a.server)
	return nil
}

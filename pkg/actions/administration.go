package actions

import (
	"context"
)

func init() {
	Register("impersonate", "List logins the current user can impersonate", "!impersonate",
		func() Action { return &impersonateAction{} })
	Register("sessions", "List active sessions on the execution target", "!sessions",
		func() Action { return &sessionsAction{} })
}

type impersonateAction struct{}

func (a *impersonateAction) Validate(args []string) error { return nil }

func (a *impersonateAction) Execute(ctx context.Context, env *Env) error {
	return env.Query(ctx, `
		SELECT DISTINCT b.name AS [Impersonable Login]
		FROM sys.server_permissions a
		INNER JOIN sys.server_principals b ON a.grantor_principal_id = b.principal_id
		WHERE a.permission_name = 'IMPERSONATE'
		ORDER BY b.name;`)
}

type sessionsAction struct{}

func (a *sessionsAction) Validate(args []string) error { return nil }

func (a *sessionsAction) Execute(ctx context.Context, env *Env) error {
	return env.Query(ctx, `
		SELECT
			s.session_id AS [SPID],
			s.login_name AS [Login],
			s.host_name AS [Host],
			s.program_name AS [Program],
			s.status AS [Status],
			CONVERT(NVARCHAR(19), s.login_time, 120) AS [Login Time]
		FROM sys.dm_exec_sessions s
		WHERE s.is_user_process = 1
		ORDER BY s.login_time DESC;`)
}

package actions

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ruslano69/mschain/pkg/format"
	"github.com/ruslano69/mschain/pkg/query"
)

func init() {
	Register("whoami", "Display the current user context on the execution target", "!whoami",
		func() Action { return &whoamiAction{} })
	Register("info", "Display server and instance information", "!info",
		func() Action { return &infoAction{} })
	Register("databases", "List databases and whether the current user can access them", "!databases",
		func() Action { return &databasesAction{} })
	Register("tables", "List tables of a database", "!tables <database>",
		func() Action { return &tablesAction{} })
	Register("rows", "Preview rows of a table", "!rows <[db.]schema.table> [limit]",
		func() Action { return &rowsAction{} })
	Register("search", "Find columns matching a name pattern", "!search <pattern> [database]",
		func() Action { return &searchAction{} })
}

type whoamiAction struct{}

func (a *whoamiAction) Validate(args []string) error { return nil }

func (a *whoamiAction) Execute(ctx context.Context, env *Env) error {
	probes := []struct {
		label string
		stmt  string
	}{
		{"System User", "SELECT SYSTEM_USER;"},
		{"Mapped User", "SELECT USER_NAME();"},
		{"Sysadmin", "SELECT IS_SRVROLEMEMBER('sysadmin');"},
		{"Current Database", "SELECT DB_NAME();"},
	}

	return probeTable(ctx, env, probes)
}

type infoAction struct{}

func (a *infoAction) Validate(args []string) error { return nil }

func (a *infoAction) Execute(ctx context.Context, env *Env) error {
	probes := []struct {
		label string
		stmt  string
	}{
		{"Server Name", "SELECT @@SERVERNAME;"},
		{"Default Domain", "SELECT DEFAULT_DOMAIN();"},
		{"Host Name", "SELECT CAST(SERVERPROPERTY('MachineName') AS NVARCHAR(256));"},
		{"Instance Name", "SELECT ISNULL(CAST(SERVERPROPERTY('InstanceName') AS NVARCHAR(256)), 'DEFAULT');"},
		{"SQL Version", "SELECT CAST(SERVERPROPERTY('ProductVersion') AS NVARCHAR(256));"},
		{"SQL Edition", "SELECT CAST(SERVERPROPERTY('Edition') AS NVARCHAR(256));"},
		{"SQL Service Pack", "SELECT CAST(SERVERPROPERTY('ProductLevel') AS NVARCHAR(256));"},
		{"Authentication Mode", "SELECT CASE CAST(SERVERPROPERTY('IsIntegratedSecurityOnly') AS INT) WHEN 1 THEN 'Windows Authentication only' ELSE 'Mixed mode (Windows + SQL)' END;"},
		{"Clustered Server", "SELECT CASE CAST(SERVERPROPERTY('IsClustered') AS INT) WHEN 0 THEN 'No' ELSE 'Yes' END;"},
	}

	return probeTable(ctx, env, probes)
}

// probeTable runs scalar probes one by one and renders a Property/Value
// table. Individual probe failures become a "-" value: some probes need
// permissions the current login may not hold.
func probeTable(ctx context.Context, env *Env, probes []struct {
	label string
	stmt  string
}) error {
	tbl := &format.Table{Columns: []string{"Property", "Value"}}

	for _, p := range probes {
		value, ok, err := env.Executor.ExecuteScalar(ctx, p.stmt)
		if err != nil || !ok {
			value = "-"
		}
		tbl.Rows = append(tbl.Rows, []string{p.label, value})
	}

	return env.Display(&query.Result{Columns: tbl.Columns, Rows: tbl.Rows})
}

type databasesAction struct{}

func (a *databasesAction) Validate(args []string) error { return nil }

func (a *databasesAction) Execute(ctx context.Context, env *Env) error {
	return env.Query(ctx, `
		SELECT
			name AS [Database],
			database_id AS [ID],
			HAS_DBACCESS(name) AS [Access],
			CONVERT(NVARCHAR(19), create_date, 120) AS [Created]
		FROM sys.databases
		ORDER BY name;`)
}

type tablesAction struct {
	database string
}

func (a *tablesAction) Validate(args []string) error {
	if err := requireArgs(args, 1, "!tables <database>"); err != nil {
		return err
	}
	a.database = args[0]
	return nil
}

func (a *tablesAction) Execute(ctx context.Context, env *Env) error {
	return env.Query(ctx, fmt.Sprintf(`
		SELECT TABLE_SCHEMA AS [Schema], TABLE_NAME AS [Table], TABLE_TYPE AS [Type]
		FROM [%s].INFORMATION_SCHEMA.TABLES
		ORDER BY TABLE_SCHEMA, TABLE_NAME;`, escapeIdentifier(a.database)))
}

type rowsAction struct {
	table string
	limit int
}

func (a *rowsAction) Validate(args []string) error {
	if err := requireArgs(args, 1, "!rows <[db.]schema.table> [limit]"); err != nil {
		return err
	}
	a.table = args[0]
	a.limit = 100
	if len(args) > 1 {
		limit, err := strconv.Atoi(args[1])
		if err != nil || limit < 1 {
			return fmt.Errorf("limit must be a positive integer, got %q", args[1])
		}
		a.limit = limit
	}
	return nil
}

func (a *rowsAction) Execute(ctx context.Context, env *Env) error {
	// The table reference is passed through as written: the tool does not
	// second-guess operator SQL.
	return env.Query(ctx, fmt.Sprintf("SELECT TOP %d * FROM %s;", a.limit, a.table))
}

type searchAction struct {
	pattern  string
	database string
}

func (a *searchAction) Validate(args []string) error {
	if err := requireArgs(args, 1, "!search <pattern> [database]"); err != nil {
		return err
	}
	a.pattern = args[0]
	if len(args) > 1 {
		a.database = args[1]
	}
	return nil
}

func (a *searchAction) Execute(ctx context.Context, env *Env) error {
	from := "INFORMATION_SCHEMA.COLUMNS"
	if a.database != "" {
		from = fmt.Sprintf("[%s].INFORMATION_SCHEMA.COLUMNS", escapeIdentifier(a.database))
	}

	return env.Query(ctx, fmt.Sprintf(`
		SELECT TABLE_CATALOG AS [Database], TABLE_SCHEMA AS [Schema],
		       TABLE_NAME AS [Table], COLUMN_NAME AS [Column], DATA_TYPE AS [Type]
		FROM %s
		WHERE COLUMN_NAME LIKE '%%%s%%'
		ORDER BY TABLE_SCHEMA, TABLE_NAME;`, from, escapeLiteral(a.pattern)))
}

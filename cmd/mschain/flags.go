package main

import "flag"

// Flags holds all command-line flags
type Flags struct {
	// Connection
	Host        *string
	Port        *int
	Database    *string
	User        *string
	Password    *string
	Domain      *string
	WindowsAuth *bool
	Driver      *string

	// Execution
	LinkChain *string
	Query     *string

	// Audit
	AuditFile *string
	AuditDB   *string

	// Options
	Config       *string
	NoColor      *bool
	CreateConfig *bool

	// Misc
	Version *bool
	Help    *bool
}

// ParseFlags defines and parses all command-line flags
func ParseFlags() *Flags {
	f := &Flags{}

	// Connection
	f.Host = flag.String("host", "", "SQL Server host to connect to")
	f.Port = flag.Int("port", 0, "SQL Server TCP port (default 1433)")
	f.Database = flag.String("database", "", "Initial database (default master)")
	f.User = flag.String("user", "", "SQL login (or domain user with -domain)")
	f.Password = flag.String("password", "", "Password for the login")
	f.Domain = flag.String("domain", "", "Windows domain for NTLM authentication")
	f.WindowsAuth = flag.Bool("windows-auth", false, "Use integrated Windows authentication (SSPI)")
	f.Driver = flag.String("driver", "", "Database driver: mssql (default) or odbc")

	// Execution
	f.LinkChain = flag.String("link-chain", "", "Linked server chain, comma-separated (e.g. 'SQL02:webuser,SQL03')")
	f.Query = flag.String("query", "", "Execute a single statement and exit")

	// Audit
	f.AuditFile = flag.String("audit-file", "", "Append audit entries to a JSON-lines file (.zst for compression)")
	f.AuditDB = flag.String("audit-db", "", "Record audit entries into a SQLite database file")

	// Options
	f.Config = flag.String("config", "", "Configuration file path")
	f.NoColor = flag.Bool("no-color", false, "Disable colored output")
	f.CreateConfig = flag.Bool("create-config", false, "Create a sample config file and exit")

	// Misc
	f.Version = flag.Bool("version", false, "Show version information")
	f.Help = flag.Bool("help", false, "Show detailed help with examples")

	flag.Parse()

	return f
}

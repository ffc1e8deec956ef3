package main

import "fmt"

const version = "0.3.0"

// PrintVersion prints version information
func PrintVersion() {
	fmt.Printf("mschain version %s\n", version)
	fmt.Println("MS SQL linked server chain client")
	fmt.Println("https://github.com/ruslano69/mschain")
}

// PrintHelp prints comprehensive help information
func PrintHelp() {
	fmt.Println("mschain - MS SQL linked server chain client")
	fmt.Printf("Version: %s\n\n", version)

	fmt.Println("USAGE:")
	fmt.Println("  mschain -host <server> [options]")
	fmt.Println()

	fmt.Println("CONNECTION:")
	fmt.Println("    -host <server>             SQL Server host to connect to")
	fmt.Println("    -port <n>                  TCP port (default: 1433)")
	fmt.Println("    -database <name>           Initial database (default: master)")
	fmt.Println("    -user <login>              SQL login")
	fmt.Println("    -password <pass>           Password")
	fmt.Println("    -domain <name>             Windows domain for NTLM authentication")
	fmt.Println("    -windows-auth              Integrated Windows authentication (SSPI)")
	fmt.Println("    -driver <name>             mssql (default) or odbc")
	fmt.Println()

	fmt.Println("EXECUTION:")
	fmt.Println("    -link-chain <spec>         Route statements through linked servers,")
	fmt.Println("                               comma-separated, optional :login per hop")
	fmt.Println("                               (e.g. 'SQL02:webuser,SQL03')")
	fmt.Println("    -query <sql>               Execute one statement and exit")
	fmt.Println()

	fmt.Println("AUDIT:")
	fmt.Println("    -audit-file <file>         Append audit entries as JSON lines")
	fmt.Println("                               (.zst extension enables zstd compression)")
	fmt.Println("    -audit-db <file>           Record audit entries into SQLite")
	fmt.Println()

	fmt.Println("OPTIONS:")
	fmt.Println("    -config <file>             Load connection settings from YAML")
	fmt.Println("    -create-config             Write a sample config.yaml and exit")
	fmt.Println("    -no-color                  Disable colored output")
	fmt.Println("    -version                   Show version information")
	fmt.Println("    -help                      Show this help")
	fmt.Println()

	fmt.Println("EXAMPLES:")
	fmt.Println("  Interactive session:")
	fmt.Println("    mschain -host sql01.corp.local -user sa -password 'S3cret!'")
	fmt.Println()
	fmt.Println("  Through two linked servers, impersonating webuser on the first hop:")
	fmt.Println("    mschain -host sql01 -user sa -password 'S3cret!' \\")
	fmt.Println("            -link-chain 'SQL02:webuser,SQL03'")
	fmt.Println()
	fmt.Println("  One-shot query with an audit trail:")
	fmt.Println("    mschain -host sql01 -windows-auth -audit-file audit.jsonl.zst \\")
	fmt.Println("            -query 'SELECT name FROM sys.databases'")
	fmt.Println()
	fmt.Println("  Inside the session, type !help for actions (whoami, links, rpc, ...);")
	fmt.Println("  anything else is sent as SQL to the end of the chain.")
}

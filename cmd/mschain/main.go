package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/ruslano69/mschain/pkg/actions"
	"github.com/ruslano69/mschain/pkg/audit"
	"github.com/ruslano69/mschain/pkg/chain"
	"github.com/ruslano69/mschain/pkg/connection"
	"github.com/ruslano69/mschain/pkg/query"
	"github.com/ruslano69/mschain/pkg/terminal"
)

func main() {
	ctx := context.Background()

	flags := ParseFlags()

	if *flags.Version {
		PrintVersion()
		os.Exit(0)
	}
	if *flags.Help {
		PrintHelp()
		os.Exit(0)
	}
	if *flags.CreateConfig {
		createConfigTemplate()
		return
	}

	if *flags.NoColor {
		pterm.DisableColor()
	}

	config := &Config{}
	if *flags.Config != "" {
		loaded, err := LoadConfig(*flags.Config)
		if err != nil {
			fatal("Failed to load config: %v", err)
		}
		config = loaded
	}
	mergeFlags(config, flags)

	if config.Connection.Host == "" {
		PrintHelp()
		os.Exit(1)
	}
	if config.Connection.AppName == "" {
		config.Connection.AppName = "mschain"
	}

	linkChain, err := chain.Parse(config.Chain)
	if err != nil {
		fatal("Invalid link chain: %v", err)
	}

	auditLog, err := buildAuditLogger(config.Audit)
	if err != nil {
		fatal("Failed to open audit log: %v", err)
	}
	defer auditLog.Close()

	session, err := connection.Connect(ctx, config.Connection)
	if err != nil {
		fatal("Failed to connect: %v", err)
	}
	defer session.Close()

	auditLog.Record(&audit.Entry{
		Operation: audit.OpConnect,
		Status:    audit.StatusSuccess,
		Server:    session.ServerName(),
	})

	executor := query.NewExecutor(session, linkChain)
	executor.SetDirectServer(session.ServerName())

	pterm.Info.Printfln("connected to %s (version %s) as %s", session.ServerName(), session.Version(), session.SystemUser())
	if !linkChain.IsEmpty() {
		pterm.Info.Printfln("chain: %s", linkChain)
	}

	env := &actions.Env{
		Executor: executor,
		Session:  session,
		Audit:    auditLog,
	}

	if *flags.Query != "" {
		if err := terminal.RunOnce(ctx, env, *flags.Query); err != nil {
			fatal("Query failed: %v", err)
		}
		return
	}

	if err := terminal.New(env).Run(ctx); err != nil {
		fatal("Session ended: %v", err)
	}
}

// buildAuditLogger assembles the configured appenders. With none configured
// the logger is a no-op.
func buildAuditLogger(cfg AuditConfig) (*audit.Logger, error) {
	var appenders []audit.Appender

	if cfg.File != "" {
		a, err := audit.NewFileAppender(cfg.File)
		if err != nil {
			return nil, err
		}
		appenders = append(appenders, a)
	}
	if cfg.Database != "" {
		a, err := audit.NewSQLiteAppender(cfg.Database)
		if err != nil {
			return nil, err
		}
		appenders = append(appenders, a)
	}

	return audit.NewLogger(appenders...), nil
}

// createConfigTemplate creates a sample configuration file
func createConfigTemplate() {
	if err := SaveConfig("config.yaml", CreateSampleConfig()); err != nil {
		fatal("Failed to save config: %v", err)
	}

	fmt.Println("Created sample config: config.yaml")
	fmt.Println("Edit the file with your server credentials and run:")
	fmt.Println("  mschain -config config.yaml")
}

// fatal prints error and exits
func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

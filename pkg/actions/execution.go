package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

func init() {
	Register("xpcmd", "Execute an operating system command via xp_cmdshell", "!xpcmd <command>",
		func() Action { return &xpcmdAction{} })
	Register("config", "Set a server configuration option via sp_configure", "!config <option> <value>",
		func() Action { return &configAction{} })
}

type xpcmdAction struct {
	command string
}

func (a *xpcmdAction) Validate(args []string) error {
	if err := requireArgs(args, 1, "!xpcmd <command>"); err != nil {
		return err
	}
	a.command = strings.Join(args, " ")
	return nil
}

func (a *xpcmdAction) Execute(ctx context.Context, env *Env) error {
	if err := ensureOption(ctx, env, "xp_cmdshell", 1); err != nil {
		return fmt.Errorf("failed to enable xp_cmdshell: %w", err)
	}

	res, err := env.Executor.Execute(ctx,
		fmt.Sprintf("EXEC master..xp_cmdshell '%s';", escapeLiteral(a.command)))
	if err != nil {
		return err
	}

	// xp_cmdshell returns one column of output lines, NULL for blanks.
	printed := 0
	for _, row := range res.Rows {
		if len(row) == 0 {
			continue
		}
		line := strings.TrimRight(row[0], "\r")
		if line == "" || strings.EqualFold(line, "NULL") {
			continue
		}
		pterm.Println(line)
		printed++
	}

	if printed == 0 {
		pterm.Info.Println("the command executed but returned no output")
	}
	return nil
}

type configAction struct {
	option string
	value  int
}

func (a *configAction) Validate(args []string) error {
	if err := requireArgs(args, 2, "!config <option> <value>"); err != nil {
		return err
	}
	a.option = args[0]

	if _, err := fmt.Sscanf(args[1], "%d", &a.value); err != nil {
		return fmt.Errorf("value must be an integer, got %q", args[1])
	}
	return nil
}

func (a *configAction) Execute(ctx context.Context, env *Env) error {
	if err := ensureOption(ctx, env, a.option, a.value); err != nil {
		return err
	}
	pterm.Success.Printfln("%s = %d", a.option, a.value)
	return nil
}

// ensureOption sets an sp_configure option on the execution target, enabling
// 'show advanced options' first when the current value differs.
func ensureOption(ctx context.Context, env *Env, option string, value int) error {
	current, err := optionValue(ctx, env, option)
	if err == nil && current == value {
		return nil
	}

	if advanced, err := optionValue(ctx, env, "show advanced options"); err != nil || advanced != 1 {
		stmt := "EXEC master..sp_configure 'show advanced options', 1; RECONFIGURE;"
		if _, err := env.Executor.ExecuteNonQuery(ctx, stmt); err != nil {
			return fmt.Errorf("failed to enable advanced options: %w", err)
		}
	}

	stmt := fmt.Sprintf("EXEC master..sp_configure '%s', %d; RECONFIGURE;", escapeLiteral(option), value)
	if _, err := env.Executor.ExecuteNonQuery(ctx, stmt); err != nil {
		return fmt.Errorf("failed to set option %q: %w", option, err)
	}

	if current, err := optionValue(ctx, env, option); err == nil && current != value {
		return fmt.Errorf("option %q still reports %d after RECONFIGURE", option, current)
	}
	return nil
}

// optionValue reads the running value of a configuration option.
func optionValue(ctx context.Context, env *Env, option string) (int, error) {
	stmt := fmt.Sprintf(
		"SELECT CAST(value_in_use AS INT) FROM sys.configurations WHERE name = '%s';",
		escapeLiteral(option))

	raw, ok, err := env.Executor.ExecuteScalar(ctx, stmt)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("option %q not found in sys.configurations", option)
	}

	var value int
	if _, err := fmt.Sscanf(raw, "%d", &value); err != nil {
		return 0, fmt.Errorf("unexpected value %q for option %q", raw, option)
	}
	return value, nil
}

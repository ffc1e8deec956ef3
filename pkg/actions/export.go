package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ruslano69/mschain/pkg/xlsx"
)

func init() {
	Register("export", "Export the last result set to an Excel workbook or CSV file", "!export <file.xlsx|file.csv> [sheet]",
		func() Action { return &exportAction{} })
}

type exportAction struct {
	path  string
	sheet string
}

func (a *exportAction) Validate(args []string) error {
	if err := requireArgs(args, 1, "!export <file.xlsx|file.csv> [sheet]"); err != nil {
		return err
	}
	a.path = args[0]
	if len(args) > 1 {
		a.sheet = args[1]
	}
	return nil
}

func (a *exportAction) Execute(ctx context.Context, env *Env) error {
	if env.LastResult == nil || env.LastResult.Empty() {
		return fmt.Errorf("no result to export: run a query first")
	}

	if strings.EqualFold(filepath.Ext(a.path), ".csv") {
		f, err := os.Create(a.path)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer f.Close()
		if err := env.LastResult.WriteCSV(f); err != nil {
			return err
		}
	} else {
		if err := xlsx.WriteTable(a.path, a.sheet, env.LastResult); err != nil {
			return err
		}
	}

	pterm.Success.Printfln("exported %d row(s) to %s", env.LastResult.RowCount(), a.path)
	return nil
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/categorize"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledgerline workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(dir, name string) error {
	for _, d := range []string{"rules", "ledger", "import"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(id.New(), name)
	if err := config.Save(filepath.Join(dir, "ledgerline.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	rulesPath := filepath.Join(dir, "rules", "categorization-rules.yaml")
	if err := categorize.SaveRules(rulesPath, categorize.DefaultRules()); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	// Empty ledger exports so the matcher has files to read from day one.
	for _, f := range []string{"income.csv", "expense.csv"} {
		path := filepath.Join(dir, "ledger", f)
		if err := os.WriteFile(path, []byte(ledger.Header+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f, err)
		}
	}

	fmt.Printf("Initialized ledgerline workspace at %s (business %s)\n", dir, cfg.Business.ID)
	return nil
}

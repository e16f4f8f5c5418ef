package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/normalize"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

func newImportCommand(configPath *string) *cobra.Command {
	var preset string
	var mapping normalize.ColumnMapping

	cmd := &cobra.Command{
		Use:   "import <statement.csv>",
		Short: "Import a bank statement export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}

			// Explicit column flags override the preset entirely.
			formatID := "custom"
			if mapping.DateColumn == "" {
				name := preset
				if name == "" {
					name = a.cfg.Import.DefaultPreset
				}
				p, ok := normalize.PresetByName(name)
				if !ok {
					return fmt.Errorf("unknown preset %q (known: %s)", name, presetNames())
				}
				mapping = p.Mapping
				formatID = p.Name
			}

			return runImport(a, args[0], formatID, mapping)
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "bank preset (defaults to import.default_preset)")
	cmd.Flags().StringVar(&mapping.DateColumn, "date-col", "", "date column header (enables explicit mapping)")
	cmd.Flags().StringVar(&mapping.DescriptionColumn, "desc-col", "", "description column header")
	cmd.Flags().StringVar(&mapping.AmountColumn, "amount-col", "", "signed amount column header")
	cmd.Flags().StringVar(&mapping.IncomeColumn, "credit-col", "", "credit amount column header (dual-column layouts)")
	cmd.Flags().StringVar(&mapping.ExpenseColumn, "debit-col", "", "debit amount column header (dual-column layouts)")
	cmd.Flags().StringVar(&mapping.ReferenceColumn, "ref-col", "", "external reference column header")
	cmd.Flags().StringVar(&mapping.DateFormat, "date-format", "dd/MM/yyyy", "date pattern, e.g. dd/MM/yyyy")

	return cmd
}

func runImport(a *app, path, formatID string, mapping normalize.ColumnMapping) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading statement: %w", err)
	}

	res, err := a.ingest.Ingest(a.businessID(), filepath.Base(path), formatID, data, mapping, time.Now().UTC())
	if errors.Is(err, store.ErrAlreadyImported) {
		return fmt.Errorf("%s was already imported; undo the previous import first if you meant to replace it", filepath.Base(path))
	}
	if err != nil {
		return err
	}

	fmt.Printf("Imported %s as unit %s\n", filepath.Base(path), res.Unit.ID)
	fmt.Printf("  accepted: %d  skipped: %d  rows: %d\n", res.Unit.AcceptedCount, res.Unit.SkippedCount, res.Unit.TotalRows)
	for _, w := range res.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	return nil
}

func presetNames() string {
	names := ""
	for i, p := range normalize.Presets() {
		if i > 0 {
			names += ", "
		}
		names += p.Name
	}
	return names
}

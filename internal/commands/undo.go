package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/ingest"
)

func newUndoCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <unit-id>",
		Short: "Undo an import unit, removing all of its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}

			err = a.ingest.Undo(a.businessID(), args[0], actor(), time.Now().UTC())
			if errors.Is(err, ingest.ErrUndoWindowExpired) {
				return fmt.Errorf("unit %s is outside the %dh undo window", args[0], a.cfg.Import.UndoWindowHours)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Undid import unit %s\n", args[0])
			return nil
		},
	}
}

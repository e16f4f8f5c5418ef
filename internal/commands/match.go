package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/match"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func newMatchCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Propose and resolve reconciliation matches",
	}

	cmd.AddCommand(newMatchRunCommand(configPath))
	cmd.AddCommand(newMatchListCommand(configPath))
	cmd.AddCommand(newMatchResolveCommand(configPath))
	cmd.AddCommand(newMatchUnresolvedCommand(configPath))

	return cmd
}

func newMatchRunCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run [tx-id]",
		Short: "Score match candidates for one or all pending transactions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if len(args) == 1 {
				matches, err := a.matcher.ProposeMatches(a.businessID(), args[0], now)
				if err != nil {
					return err
				}
				printMatches(matches)
				return nil
			}

			total, err := a.matcher.ProposeAllPending(a.businessID(), now)
			if err != nil {
				return err
			}
			fmt.Printf("%d open proposal(s)\n", total)
			return nil
		},
	}
}

func newMatchListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list <tx-id>",
		Short: "List open proposals for a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			matches, err := a.matcher.MatchesFor(args[0])
			if err != nil {
				return err
			}
			printMatches(matches)
			return nil
		},
	}
}

func newMatchResolveCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <match-id> <confirm|dismiss>",
		Short: "Confirm or dismiss a proposed match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			m, err := a.matcher.Resolve(args[0], match.Outcome(args[1]), actor(), time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Printf("Match %s %s\n", m.ID, m.Status)
			return nil
		},
	}
}

func newMatchUnresolvedCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "unresolved",
		Short: "List every open proposal, highest confidence first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			matches, err := a.matcher.Unresolved(a.businessID())
			if err != nil {
				return err
			}
			printMatches(matches)
			return nil
		},
	}
}

func printMatches(matches []model.ReconciliationMatch) {
	for _, m := range matches {
		fmt.Printf("%s  %-8s  %.2f  tx %s -> %s %s\n",
			m.ID, m.Tier, m.Confidence, m.BankTransactionID, m.ManualEntryKind, m.ManualEntryID)
	}
	fmt.Printf("%d match(es)\n", len(matches))
}

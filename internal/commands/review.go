package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func newReviewCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "List and review imported bank transactions",
	}

	cmd.AddCommand(newReviewListCommand(configPath))
	cmd.AddCommand(newReviewCategorizeCommand(configPath))
	cmd.AddCommand(newReviewExcludeCommand(configPath))
	cmd.AddCommand(newReviewSkipCommand(configPath))
	cmd.AddCommand(newReviewFlagCommand(configPath))
	cmd.AddCommand(newReviewDeleteCommand(configPath))
	cmd.AddCommand(newReviewHistoryCommand(configPath))

	return cmd
}

func newReviewListCommand(configPath *string) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, optionally filtered by review status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}

			var txs []model.BankTransaction
			if status == "" {
				txs, err = a.store.BankTransactions(a.businessID())
			} else {
				txs, err = a.store.BankTransactionsByStatus(a.businessID(), model.ReviewStatus(status))
			}
			if err != nil {
				return err
			}

			for _, t := range txs {
				sign := "+"
				if t.Kind == model.KindExpense {
					sign = "-"
				}
				fmt.Printf("%s  %s  %s%s  %-12s  %s\n",
					t.ID, t.Date.Format("2006-01-02"), sign, t.Amount.StringFixed(2), statusLabel(t), t.Description)
			}
			fmt.Printf("%d transaction(s)\n", len(txs))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending, categorized, excluded)")

	return cmd
}

func newReviewCategorizeCommand(configPath *string) *cobra.Command {
	var incomeID, expenseID string

	cmd := &cobra.Command{
		Use:   "categorize <tx-id>",
		Short: "Link a transaction to a manual income or expense entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (incomeID == "") == (expenseID == "") {
				return fmt.Errorf("exactly one of --income or --expense is required")
			}

			a, err := openApp(*configPath)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if incomeID != "" {
				err = a.review.CategorizeAsIncome(a.businessID(), args[0], incomeID, actor(), now)
			} else {
				err = a.review.CategorizeAsExpense(a.businessID(), args[0], expenseID, actor(), now)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Categorized %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&incomeID, "income", "", "manual income entry id")
	cmd.Flags().StringVar(&expenseID, "expense", "", "manual expense entry id")

	return cmd
}

func newReviewExcludeCommand(configPath *string) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "exclude <tx-id>",
		Short: "Exclude a transaction from the books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.review.Exclude(a.businessID(), args[0], reason, actor(), time.Now().UTC()); err != nil {
				return err
			}
			fmt.Printf("Excluded %s: %s\n", args[0], reason)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "exclusion reason (required)")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

func newReviewSkipCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "skip <tx-id>",
		Short: "Skip a transaction without giving a reason",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.review.Skip(a.businessID(), args[0], actor(), time.Now().UTC()); err != nil {
				return err
			}
			fmt.Printf("Skipped %s\n", args[0])
			return nil
		},
	}
}

func newReviewFlagCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "flag <tx-id> <business|personal|unknown>",
		Short: "Mark a transaction as business or personal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			flag := model.BusinessFlag(args[1])
			if err := a.review.SetBusinessFlag(a.businessID(), args[0], flag, actor(), time.Now().UTC()); err != nil {
				return err
			}
			fmt.Printf("Flagged %s as %s\n", args[0], flag)
			return nil
		},
	}
}

func newReviewDeleteCommand(configPath *string) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "delete <tx-id>",
		Short: "Remove a transaction (its history is retained)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.review.Delete(a.businessID(), args[0], reason, actor(), time.Now().UTC()); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "deletion reason")

	return cmd
}

func newReviewHistoryCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history <tx-id>",
		Short: "Show the modification history of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			entries, err := a.review.History(args[0])
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s  %-28s  %s: %q -> %q  by %s\n",
					e.ModifiedAt.Format(time.RFC3339), e.Type, e.FieldName, e.PreviousValue, e.NewValue, e.ModifiedBy)
			}
			fmt.Printf("%d entr(ies)\n", len(entries))
			return nil
		},
	}
}

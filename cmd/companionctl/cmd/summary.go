// Package cmd implements the companionctl commands.
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/companion/internal/application/usecase/dashboard"
	"github.com/finance-tracker/companion/internal/domain/entity"
	"github.com/finance-tracker/companion/internal/integration/persistence"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print ledger totals and spending by category",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	overview := dashboard.NewGetOverviewUseCase(
		persistence.NewTransactionRepository(database.DB()),
		persistence.NewGoalRepository(database.DB()),
	)
	output, err := overview.Execute(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Transactions\t%d\n", output.TransactionCount)
	fmt.Fprintf(w, "Income\t%s\n", output.Totals.IncomeTotal.StringFixed(entity.AmountScale))
	fmt.Fprintf(w, "Expenses\t%s\n", output.Totals.ExpenseTotal.StringFixed(entity.AmountScale))
	fmt.Fprintf(w, "Balance\t%s\n", output.Totals.NetTotal.StringFixed(entity.AmountScale))
	if len(output.CategoryTotals) > 0 {
		fmt.Fprintln(w, "\nCategory\tSpent")
		for _, total := range output.CategoryTotals {
			fmt.Fprintf(w, "%s\t%s\n", total.Category, total.Total.StringFixed(entity.AmountScale))
		}
	}
	return w.Flush()
}

// Package cmd implements the companionctl commands.
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/companion/internal/application/usecase/goal"
	"github.com/finance-tracker/companion/internal/domain/entity"
	"github.com/finance-tracker/companion/internal/integration/persistence"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List goals with their progress",
	Args:  cobra.NoArgs,
	RunE:  runGoals,
}

func runGoals(cmd *cobra.Command, args []string) error {
	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	goals, err := goal.NewTracker(persistence.NewGoalRepository(database.DB())).ListGoals(cmd.Context())
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no goals")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tCurrent\tTarget\tStatus")
	for _, g := range goals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			g.ID,
			g.Name,
			g.Current().StringFixed(entity.AmountScale),
			g.Target.StringFixed(entity.AmountScale),
			g.Status(),
		)
	}
	return w.Flush()
}

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rfogaca/vigia/pkg/core/services"
)

// TimeBankCmd creates the timebank command with its record and balance
// subcommands
func TimeBankCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timebank",
		Short: "Manage guard time-bank ledgers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "record <guard_id> <credit|debit> <minutes> <reason>",
		Short: "Record a time-bank entry for a guard",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("minutes must be a number: %w", err)
			}

			result := services.RecordTimeBankEntry(app.Ctx, app.Database, app.Logger, services.TimeBankInput{
				GuardID: args[0],
				Kind:    args[1],
				Minutes: minutes,
				Reason:  args[3],
			})

			printResult(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "balance <guard_id>",
		Short: "Show a guard's time-bank balance and entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := services.GetTimeBankBalance(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nBalance for %s: %d minutes (%s hours)\n\n", balance.GuardID, balance.Minutes, balance.Hours.String())
			for _, e := range balance.Entries {
				fmt.Printf("- %s  %-6s %+5d min  %s\n",
					e.RecordedAt.Format("2006-01-02"),
					e.Kind,
					e.Minutes,
					e.Reason,
				)
			}
			fmt.Println()

			return nil
		},
	})

	return cmd
}

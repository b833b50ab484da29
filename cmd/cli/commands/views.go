package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfogaca/vigia/pkg/core/services"
	"github.com/rfogaca/vigia/pkg/db"
)

// ViewScheduleCmd creates the viewSchedule command
func ViewScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewSchedule <from_date> <to_date>",
		Short: "List shifts starting within a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shifts, err := services.ListShiftsInRange(app.Ctx, app.Database, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			printShifts(shifts)
			return nil
		},
	}
}

// MyScheduleCmd creates the mySchedule command
func MyScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mySchedule <guard_id>",
		Short: "List a guard's shifts ordered by start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shifts, err := services.GuardSchedule(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			printShifts(shifts)
			return nil
		},
	}
}

// SummaryCmd creates the summary command
func SummaryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <day>",
		Short: "Show shift counts for a day, or per-guard workload with --from/--to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")

			if from != "" {
				workloads, err := services.WorkloadSummary(app.Ctx, app.Database, app.Logger, from, to)
				if err != nil {
					return err
				}

				fmt.Printf("\nWorkload %s to %s:\n\n", from, to)
				for _, w := range workloads {
					fmt.Printf("- %s: %d shifts, %s hours\n", w.GuardID, w.ShiftCount, w.Hours.String())
				}
				fmt.Println()
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("a day argument or --from/--to is required")
			}

			summary, err := services.ScheduleSummary(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nSummary for %s:\n", args[0])
			fmt.Printf("  Total:  %d\n", summary.TotalShifts)
			fmt.Printf("  Filled: %d\n", summary.FilledShifts)
			fmt.Printf("  Vacant: %d\n", summary.VacantShifts)
			if summary.VacantShifts > 0 {
				fmt.Printf("\n⚠ %d vacant shift(s) on this day\n", summary.VacantShifts)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("from", "", "Workload range start, YYYY-MM-DD")
	cmd.Flags().String("to", "", "Workload range end, YYYY-MM-DD")

	return cmd
}

func printShifts(shifts []db.Shift) {
	if len(shifts) == 0 {
		fmt.Println("No shifts found.")
		return
	}

	fmt.Printf("\nFound %d shifts:\n\n", len(shifts))
	for _, s := range shifts {
		holder := "(vacant)"
		if s.GuardID != "" {
			holder = s.GuardID
		}
		fmt.Printf("- %s  %s → %s  post %s  %s\n",
			s.ID,
			s.StartAt.Format("2006-01-02 15:04"),
			s.EndAt.Format("2006-01-02 15:04"),
			s.PostID,
			holder,
		)
	}
	fmt.Println()
}

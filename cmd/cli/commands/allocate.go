package commands

import (
	"github.com/spf13/cobra"

	"github.com/rfogaca/vigia/pkg/core/services"
)

// AllocateCmd creates the allocate command
func AllocateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "allocate <shift_id> <guard_id> <shift_day>",
		Short: "Assign a guard to an existing shift",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := services.AllocateGuard(app.Ctx, app.Database, app.Logger, services.AllocateInput{
				ShiftID:  args[0],
				GuardID:  args[1],
				ShiftDay: args[2],
			})

			printResult(result)
			return nil
		},
	}
}

// DeallocateCmd creates the deallocate command
func DeallocateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deallocate <shift_id>",
		Short: "Remove the guard from a shift, leaving it vacant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := services.DeallocateGuard(app.Ctx, app.Database, app.Logger, services.DeallocateInput{
				ShiftID: args[0],
			})

			printResult(result)
			return nil
		},
	}
}

// PlaceShiftCmd creates the placeShift command
func PlaceShiftCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "placeShift <post_id> <guard_id> <day>",
		Short: "Create a shift on a day and assign a guard to it in one step",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime, _ := cmd.Flags().GetString("start")
			endTime, _ := cmd.Flags().GetString("end")
			if startTime == "" {
				startTime = app.Cfg.DefaultShiftStart
			}
			if endTime == "" {
				endTime = app.Cfg.DefaultShiftEnd
			}

			result := services.PlaceShift(app.Ctx, app.Database, app.Logger, services.PlaceShiftInput{
				PostID:    args[0],
				GuardID:   args[1],
				Day:       args[2],
				StartTime: startTime,
				EndTime:   endTime,
			})

			printResult(result)
			return nil
		},
	}

	cmd.Flags().String("start", "", "Shift start time, HH:MM (defaults to the configured default)")
	cmd.Flags().String("end", "", "Shift end time, HH:MM (defaults to the configured default)")

	return cmd
}

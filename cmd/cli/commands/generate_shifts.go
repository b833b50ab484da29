package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfogaca/vigia/pkg/core/services"
)

// GenerateShiftsCmd creates the generateShifts command
func GenerateShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generateShifts <post_id> <template_id> <start_date> <end_date>",
		Short: "Generate vacant shifts for a post from a template over a date range",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := services.GenerateShifts(app.Ctx, app.Database, app.Logger, services.GenerateShiftsInput{
				PostID:     args[0],
				TemplateID: args[1],
				StartDate:  args[2],
				EndDate:    args[3],
			})

			printResult(result)
			return nil
		},
	}
}

// AutoFillCmd creates the autoFill command
func AutoFillCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "autoFill <guard_id> <post_id> <template_id> <start_date> <end_date>",
		Short: "Fill a guard's schedule from a template, skipping days with conflicts",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := services.AutoFillSchedule(app.Ctx, app.Database, app.Logger, services.AutoFillInput{
				GuardID:    args[0],
				PostID:     args[1],
				TemplateID: args[2],
				StartDate:  args[3],
				EndDate:    args[4],
			})

			printResult(result)
			if result.ConflictCount > 0 {
				fmt.Printf("Skipped days: %d\n", result.ConflictCount)
			}
			return nil
		},
	}
}

func printResult(result services.Result) {
	if result.Success {
		fmt.Printf("\n✓ %s\n", result.Message)
	} else {
		fmt.Printf("\n✗ %s\n", result.Message)
	}
}

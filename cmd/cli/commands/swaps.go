package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfogaca/vigia/pkg/core/services"
)

// RequestSwapCmd creates the requestSwap command
func RequestSwapCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "requestSwap <shift_a_id> <guard_a_id> <shift_b_id> <guard_b_id>",
		Short: "Propose exchanging the guard assignments of two shifts",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := services.RequestSwap(app.Ctx, app.Database, app.Logger, services.SwapRequestInput{
				ShiftAID: args[0],
				GuardAID: args[1],
				ShiftBID: args[2],
				GuardBID: args[3],
			})

			printResult(result)
			if result.SwapRequestID != "" {
				fmt.Printf("Request ID: %s\n", result.SwapRequestID)
			}
			return nil
		},
	}
}

// RespondSwapCmd creates the respondSwap command
func RespondSwapCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "respondSwap <request_id> <approved|rejected>",
		Short: "Approve or reject a pending swap request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := services.RespondSwap(app.Ctx, app.Database, app.Logger, services.SwapResponseInput{
				RequestID: args[0],
				Decision:  args[1],
			})

			printResult(result)
			return nil
		},
	}
}

// ListSwapsCmd creates the listSwaps command
func ListSwapsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listSwaps",
		Short: "List swap requests, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := services.ListSwapRequests(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			if len(requests) == 0 {
				fmt.Println("No swap requests.")
				return nil
			}

			fmt.Printf("\nFound %d swap requests:\n\n", len(requests))
			for _, r := range requests {
				fmt.Printf("- %s [%s] %s ⇄ %s at %s (%s)\n",
					r.ID,
					r.Status,
					r.RequesterName,
					r.RequestedName,
					r.PostName,
					r.ShiftStart.Format("2006-01-02 15:04"),
				)
			}
			fmt.Println()

			return nil
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/workflow"
	"github.com/spf13/cobra"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow <auctionID> <action>",
	Short: "Advance an auction's post-sale workflow",
	Long: `Runs one workflow action against an auction. Actions:

  close_auction     seller, while active
  submit_shipping   buyer, pending sale (--address)
  mark_shipped      seller, pending sale with an order (--tracking)
  confirm_receipt   buyer, while shipping
  file_dispute      either party, once complete (--reason)`,
	Args: cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		action, err := workflow.ParseAction(args[1])
		if err != nil {
			return err
		}
		var in workflow.Input
		in.ShippingAddress, _ = cmd.Flags().GetString("address")
		in.TrackingNumber, _ = cmd.Flags().GetString("tracking")
		in.TrackingURL, _ = cmd.Flags().GetString("tracking-url")
		in.Reason, _ = cmd.Flags().GetString("reason")
		return performAction(cmd, app, args[0], action, in)
	}),
}

var disputeCmd = &cobra.Command{
	Use:   "dispute <auctionID>",
	Short: "File a dispute on a completed auction, or list its disputes",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		if list, _ := cmd.Flags().GetBool("list"); list {
			disputes, err := app.Services.Disputes.ListDisputes(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tBY\tSTATUS\tREASON")
			for _, d := range disputes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.FiledByRole, d.Status, d.Reason)
			}
			return tw.Flush()
		}
		reason, _ := cmd.Flags().GetString("reason")
		return performAction(cmd, app, args[0], workflow.ActionFileDispute, workflow.Input{Reason: reason})
	}),
}

// performAction reads the auction and its order, then runs action as the stored user.
func performAction(cmd *cobra.Command, app *App, auctionID string, action workflow.Action, in workflow.Input) error {
	ctx := cmd.Context()
	auction, err := app.Services.Auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return err
	}

	var order *models.Order
	if auction.Workflow() != models.WorkflowActive {
		if order, err = app.Services.Orders.FindOrderForAuction(ctx, auctionID); err != nil {
			return err
		}
	}

	actor := workflow.RoleOf(auction, app.Auth.AuthUser(), order)
	result, err := app.Engine.Perform(ctx, auction, order, actor, action, in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s -> %s\n", result.Action, result.From, result.To)
	if result.Order != nil {
		fmt.Fprintf(out, "Order %s is %s\n", result.Order.ID, result.Order.Status)
	}
	if result.Dispute != nil {
		fmt.Fprintf(out, "Dispute %s filed\n", result.Dispute.ID)
	}
	return nil
}

var workflowStatusCmd = &cobra.Command{
	Use:   "workflow-status <auctionID>",
	Short: "Show the backend's view of an auction's workflow",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		info, err := app.API.GetWorkflow(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Auction %s: %s\n", info.AuctionID, info.WorkflowState)
		if info.Order != nil {
			fmt.Fprintf(out, "Order %s: %s (shipping %s)\n", info.Order.ID, info.Order.Status, info.Order.ShippingStatus)
		}
		for _, d := range info.Disputes {
			fmt.Fprintf(out, "Dispute %s [%s]: %s\n", d.ID, d.Status, d.Reason)
		}
		return nil
	}),
}

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "Print the workflow transition table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "FROM\tACTION\tBY\tTO")
		for _, t := range workflow.Transitions() {
			fmt.Fprintf(tw, "%s\t%s\t%v\t%s\n", t.From, t.Action, t.Actors, t.To)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(workflowCmd, workflowStatusCmd, phasesCmd, disputeCmd)

	workflowCmd.Flags().String("address", "", "shipping address for submit_shipping")
	workflowCmd.Flags().String("tracking", "", "tracking number for mark_shipped")
	workflowCmd.Flags().String("tracking-url", "", "tracking URL for mark_shipped")
	workflowCmd.Flags().String("reason", "", "reason for file_dispute")

	disputeCmd.Flags().String("reason", "", "what went wrong")
	disputeCmd.Flags().Bool("list", false, "list the auction's disputes instead of filing one")
}

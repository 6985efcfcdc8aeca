package cmd

import (
	"fmt"

	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/services"
	"github.com/isdelr/auction-lab/internal/views"
	"github.com/isdelr/auction-lab/internal/workflow"
	"github.com/spf13/cobra"
)

var auctionsCmd = &cobra.Command{
	Use:   "auctions",
	Short: "Manage auctions",
}

var auctionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all auctions",
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		state := views.NewLoader(app.Services, app.Auth).AuctionList(cmd.Context())
		if err := stateErr(state); err != nil {
			return err
		}
		if state.IsEmpty() {
			fmt.Fprintln(cmd.OutOrStdout(), "No auctions yet.")
			return nil
		}

		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "ID\tTITLE\tCURRENT BID\tSTATUS\tWORKFLOW\tENDS")
		for _, a := range state.Data {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\t%s\n", a.ID, a.Title, a.CurrentBid, a.Status, a.Workflow(), formatTime(a.EndTime))
		}
		return tw.Flush()
	}),
}

var auctionsShowCmd = &cobra.Command{
	Use:   "show <auctionID>",
	Short: "Show an auction with its bids and workflow phase",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		state := views.NewLoader(app.Services, app.Auth).AuctionDetail(cmd.Context(), args[0])
		if err := stateErr(state); err != nil {
			return err
		}
		page := state.Data
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%s (%s)\n", page.Auction.Title, page.Auction.ID)
		fmt.Fprintf(out, "%s\n\n", page.Auction.Description)
		fmt.Fprintf(out, "Current bid: %.2f   Starting price: %.2f\n", page.Auction.CurrentBid, page.Auction.StartingPrice)
		fmt.Fprintf(out, "Status: %s   Ends: %s\n", page.Auction.Status, formatTime(page.Auction.EndTime))
		fmt.Fprintf(out, "\nPhase: %s\n%s\n", page.Phase.Title, page.Phase.Description)
		if page.Phase.Countdown != "" {
			fmt.Fprintln(out, page.Phase.Countdown)
		}
		if len(page.Phase.Actions) > 0 {
			fmt.Fprintf(out, "You (%s) can: %v\n", page.Phase.Actor, page.Phase.Actions)
		}
		for _, d := range page.Disputes {
			fmt.Fprintf(out, "Dispute %s by %s [%s]: %s\n", d.ID, d.FiledByRole, d.Status, d.Reason)
		}

		fmt.Fprintln(out, "\nBids:")
		switch {
		case page.Bids.IsError():
			fmt.Fprintf(out, "  %s\n", page.Bids.Err)
		case page.Bids.IsEmpty():
			fmt.Fprintln(out, "  No bids yet.")
		default:
			tw := newTable(out)
			for _, b := range page.Bids.Data {
				fmt.Fprintf(tw, "  %s\t%.2f\t%s\n", b.BidderName(), b.Amount, formatTime(b.Timestamp))
			}
			return tw.Flush()
		}
		return nil
	}),
}

var auctionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an auction",
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		var form services.AuctionForm
		form.Title, _ = cmd.Flags().GetString("title")
		form.Description, _ = cmd.Flags().GetString("description")
		form.StartingPrice, _ = cmd.Flags().GetString("starting-price")
		form.EndTime, _ = cmd.Flags().GetString("end-time")

		auction, err := app.Services.Auctions.CreateAuction(cmd.Context(), form)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created auction %s\n", auction.ID)
		return nil
	}),
}

var auctionsCloseCmd = &cobra.Command{
	Use:   "close <auctionID>",
	Short: "Close bidding on an auction",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		return performAction(cmd, app, args[0], workflow.ActionCloseAuction, workflow.Input{})
	}),
}

var auctionsUpdateCmd = &cobra.Command{
	Use:   "update <auctionID>",
	Short: "Edit an auction's title, description or end time",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		var update models.AuctionUpdate
		for flag, field := range map[string]**string{
			"title":       &update.Title,
			"description": &update.Description,
			"end-time":    &update.EndTime,
		} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*field = &v
			}
		}

		auction, err := app.Services.Auctions.UpdateAuction(cmd.Context(), args[0], update)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated auction %s\n", auction.ID)
		return nil
	}),
}

var auctionsDeleteCmd = &cobra.Command{
	Use:   "delete <auctionID>",
	Short: "Delete an auction",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Services.Auctions.DeleteAuction(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted auction %s\n", args[0])
		return nil
	}),
}

var bidCmd = &cobra.Command{
	Use:   "bid <auctionID> <amount>",
	Short: "Place a bid",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		auction, err := app.Services.Auctions.GetAuction(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		bid, err := app.Services.Bids.PlaceBid(cmd.Context(), auction, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Bid %v placed (%s)\n", bid.Amount, bid.ID)
		return nil
	}),
}

var bidsCmd = &cobra.Command{
	Use:   "bids <auctionID>",
	Short: "Show the bid history of an auction",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		state := views.NewLoader(app.Services, app.Auth).BidHistory(cmd.Context(), args[0])
		if err := stateErr(state); err != nil {
			return err
		}
		if state.IsEmpty() {
			fmt.Fprintln(cmd.OutOrStdout(), "No bids yet.")
			return nil
		}
		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "BIDDER\tAMOUNT\tTIME")
		for _, b := range state.Data {
			fmt.Fprintf(tw, "%s\t%.2f\t%s\n", b.BidderName(), b.Amount, formatTime(b.Timestamp))
		}
		return tw.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(auctionsCmd, bidCmd, bidsCmd)
	auctionsCmd.AddCommand(auctionsListCmd, auctionsShowCmd, auctionsCreateCmd, auctionsUpdateCmd, auctionsDeleteCmd, auctionsCloseCmd)

	auctionsCreateCmd.Flags().String("title", "", "auction title")
	auctionsCreateCmd.Flags().String("description", "", "auction description")
	auctionsCreateCmd.Flags().String("starting-price", "", "starting price")
	auctionsCreateCmd.Flags().String("end-time", "", "end time (RFC 3339 or 2006-01-02T15:04)")

	auctionsUpdateCmd.Flags().String("title", "", "new title")
	auctionsUpdateCmd.Flags().String("description", "", "new description")
	auctionsUpdateCmd.Flags().String("end-time", "", "new end time")
}

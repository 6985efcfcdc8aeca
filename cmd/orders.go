package cmd

import (
	"fmt"

	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/views"
	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List and show orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your orders",
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		state := views.NewLoader(app.Services, app.Auth).OrderList(cmd.Context())
		if err := stateErr(state); err != nil {
			return err
		}
		if state.IsEmpty() {
			fmt.Fprintln(cmd.OutOrStdout(), "No orders yet.")
			return nil
		}
		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "ID\tAUCTION\tTOTAL\tSTATUS\tCREATED")
		for _, o := range state.Data {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\n", o.ID, o.AuctionID, o.TotalAmount, o.Status, formatTime(o.CreatedAt))
		}
		return tw.Flush()
	}),
}

var ordersShowCmd = &cobra.Command{
	Use:   "show <orderID>",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		state := views.NewLoader(app.Services, app.Auth).OrderDetail(cmd.Context(), args[0])
		if err := stateErr(state); err != nil {
			return err
		}
		o := state.Data
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Order %s for auction %s\n", o.ID, o.AuctionID)
		fmt.Fprintf(out, "Total: %.2f  Status: %s  Payment: %s  Shipping: %s\n", o.TotalAmount, o.Status, o.PaymentStatus, o.ShippingStatus)
		fmt.Fprintf(out, "Ship to: %s\n", o.ShippingAddress)
		if tracking, ok := models.StringValue(o.TrackingNumber); ok {
			fmt.Fprintf(out, "Tracking: %s\n", tracking)
		}
		if shipped, ok := models.TimeValue(o.ShippedAt); ok {
			fmt.Fprintf(out, "Shipped: %s\n", formatTime(shipped))
		}
		return nil
	}),
}

var profileCmd = &cobra.Command{
	Use:   "profile [userID]",
	Short: "Show a user profile (your own by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		state := views.NewLoader(app.Services, app.Auth).Profile(cmd.Context(), id)
		if err := stateErr(state); err != nil {
			return err
		}
		u := state.Data
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s <%s> (%s, %s)\n", u.Name, u.Email, u.ID, u.Role)
		if phone, ok := models.StringValue(u.Phone); ok {
			fmt.Fprintf(out, "Phone: %s\n", phone)
		}
		if addr, ok := models.StringValue(u.Address); ok {
			fmt.Fprintf(out, "Address: %s\n", addr)
		}
		if hash, ok := models.StringValue(u.PasswordHash); ok {
			fmt.Fprintf(out, "Password hash: %s\n", hash)
		}
		return nil
	}),
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List notifications",
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		if id, _ := cmd.Flags().GetString("read"); id != "" {
			return app.Services.Notifications.MarkRead(cmd.Context(), id)
		}
		state := views.NewLoader(app.Services, app.Auth).Notifications(cmd.Context())
		if err := stateErr(state); err != nil {
			return err
		}
		tw := newTable(cmd.OutOrStdout())
		for _, n := range state.Data {
			mark := " "
			if !n.Read {
				mark = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, n.ID, n.Title, n.Message)
		}
		fmt.Fprintf(tw, "\t%d unread\n", models.CountUnread(state.Data))
		return tw.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(ordersCmd, profileCmd, notificationsCmd)
	ordersCmd.AddCommand(ordersListCmd, ordersShowCmd)

	notificationsCmd.Flags().String("read", "", "mark the notification with this id as read")
}

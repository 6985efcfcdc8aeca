package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/isdelr/auction-lab/internal/realtime"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <auctionID>",
	Short: "Print live bid updates for an auction",
	Long: `Connects to the bid socket for one auction and prints every frame until
interrupted. The connection is retried after WS_RECONNECT_DELAY whenever it drops.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		feed, err := realtime.NewFeed(app.Config.WSURL, args[0], realtime.WithReconnectDelay(app.Config.ReconnectDelay))
		if err != nil {
			return err
		}
		feed.Start()
		defer feed.Close()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		out := cmd.OutOrStdout()
		for {
			select {
			case <-quit:
				return nil
			case <-cmd.Context().Done():
				return nil
			case env, ok := <-feed.Messages():
				if !ok {
					return nil
				}
				switch {
				case env.Type == realtime.TypeNewBid && env.Bid != nil:
					fmt.Fprintf(out, "new bid %.2f by %s\n", env.Bid.Amount, env.Bid.BidderName())
				case env.CurrentBid != nil:
					fmt.Fprintf(out, "%s: current bid %.2f\n", env.Type, *env.CurrentBid)
				default:
					fmt.Fprintf(out, "%s\n", env.Raw)
				}
			}
		}
	}),
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

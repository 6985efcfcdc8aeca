package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/auction-lab/internal/api"
	"github.com/isdelr/auction-lab/internal/monitoring"
	"github.com/isdelr/auction-lab/internal/realtime"
	"github.com/isdelr/auction-lab/internal/views"
	"github.com/isdelr/auction-lab/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local web front end",
	Long: `Runs the local web front end on PORT. Pages are rendered from the API on
every request and live bid updates are relayed over /ws/auctions/{id}.`,
	RunE: withApp(runServe),
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string, app *App) error {
	cfg := app.Config

	renderer, err := views.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	relay := websocket.NewRelay(hub, func(auctionID string) (*realtime.Feed, error) {
		return realtime.NewFeed(cfg.WSURL, auctionID, realtime.WithReconnectDelay(cfg.ReconnectDelay))
	})

	// Set up and run the notification poller
	poller := monitoring.NewPoller(app.Auth, app.Services.Notifications, hub, app.Events, cfg.PollInterval)
	if err := poller.Start(); err != nil {
		return err
	}

	router := api.NewRouter(api.Deps{
		Auth:           app.Auth,
		Services:       app.Services,
		Engine:         app.Engine,
		Renderer:       renderer,
		Hub:            hub,
		Relay:          relay,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("api", cfg.APIBaseURL).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		poller.Stop()
		relay.Close()
		hub.Stop()
		return fmt.Errorf("ListenAndServe(): %w", err)
	}
	log.Info().Msg("Shutting down server...")

	poller.Stop()
	relay.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	hub.Stop()

	log.Info().Msg("Server exiting")
	return nil
}

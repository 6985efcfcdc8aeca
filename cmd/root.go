package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/isdelr/auction-lab/internal/auth"
	"github.com/isdelr/auction-lab/internal/client"
	"github.com/isdelr/auction-lab/internal/config"
	"github.com/isdelr/auction-lab/internal/database"
	"github.com/isdelr/auction-lab/internal/logger"
	"github.com/isdelr/auction-lab/internal/services"
	"github.com/isdelr/auction-lab/internal/session"
	"github.com/isdelr/auction-lab/internal/views"
	"github.com/isdelr/auction-lab/internal/workflow"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "auctionlab",
	Short: "Client for the auction lab API",
	Long: `auctionlab talks to the auction lab REST and WebSocket API.

It can run a local web front end (auctionlab serve) or be used directly
from the terminal to log in, browse auctions, bid and drive the
post-auction workflow.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// App is everything a command needs, built from the environment.
type App struct {
	Config   *config.Config
	DB       *sql.DB
	Session  *auth.Session
	API      *client.Client
	Auth     *auth.Service
	Events   services.EventServiceProvider
	Services views.Services
	Engine   *workflow.Engine
}

// newApp loads configuration, opens the session database and wires the services.
func newApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Init(cfg.LogLevel)

	db, err := database.New(cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	sess := auth.NewSession(session.NewSQLiteStore(db))
	api := client.New(cfg.APIBaseURL, sess)
	events := services.NewEventService(db)

	svc := views.Services{
		Auctions:      services.NewAuctionService(api, events),
		Bids:          services.NewBidService(api, events),
		Orders:        services.NewOrderService(api, events),
		Users:         services.NewUserService(api, events),
		Disputes:      services.NewDisputeService(api, events),
		Notifications: services.NewNotificationService(api),
		Images:        services.NewImageService(api, events),
		Events:        events,
	}

	return &App{
		Config:   cfg,
		DB:       db,
		Session:  sess,
		API:      api,
		Auth:     auth.NewService(api, sess),
		Events:   events,
		Services: svc,
		Engine:   workflow.NewEngine(api, svc.Orders, svc.Disputes, events),
	}, nil
}

// Close releases the session database.
func (a *App) Close() error {
	return a.DB.Close()
}

// withApp runs fn with a freshly built App and closes it afterwards.
func withApp(fn func(cmd *cobra.Command, args []string, app *App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()
		return fn(cmd, args, app)
	}
}

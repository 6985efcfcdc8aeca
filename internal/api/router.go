package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/auction-lab/internal/api/handlers"
	"github.com/isdelr/auction-lab/internal/auth"
	"github.com/isdelr/auction-lab/internal/views"
	"github.com/isdelr/auction-lab/internal/websocket"
)

// Deps holds everything the router wires into handlers.
type Deps struct {
	Auth           auth.ServiceProvider
	Services       views.Services
	Engine         handlers.Performer
	Renderer       handlers.Renderer
	Hub            *websocket.Hub
	Relay          *websocket.Relay
	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	pages := handlers.NewPages(views.NewLoader(d.Services, d.Auth), d.Renderer, d.Auth)

	pageHandler := handlers.NewPageHandler(pages)
	authHandler := handlers.NewAuthHandler(d.Auth, pages)
	auctionHandler := handlers.NewAuctionHandler(d.Services.Auctions, d.Services.Bids, d.Services.Images, pages)
	workflowHandler := handlers.NewWorkflowHandler(d.Services.Auctions, d.Services.Orders, d.Engine, pages)
	userHandler := handlers.NewUserHandler(d.Services.Users, pages)
	notificationHandler := handlers.NewNotificationHandler(d.Services.Notifications)
	eventHandler := handlers.NewEventHandler(d.Services.Events)
	wsHandler := handlers.NewWebSocketHandler(d.Hub, d.Relay)

	r.Get("/", pageHandler.Auctions)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Get("/register", authHandler.RegisterForm)
	r.Post("/register", authHandler.Register)
	r.Post("/logout", authHandler.Logout)
	r.Get("/dashboard", pageHandler.Dashboard)
	r.Get("/profile", pageHandler.Profile)
	r.Get("/notifications", pageHandler.Notifications)
	r.Post("/notifications/{id}/read", notificationHandler.MarkRead)

	r.Route("/auctions", func(r chi.Router) {
		r.Get("/", pageHandler.Auctions)
		r.Post("/", auctionHandler.Create)
		r.Get("/new", pageHandler.NewAuction)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", pageHandler.Auction)
			r.Post("/bids", auctionHandler.PlaceBid)
			r.Post("/images", auctionHandler.UploadImage)
			r.Post("/workflow/{action}", workflowHandler.Perform)
		})
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", pageHandler.Orders)
		r.Get("/{id}", pageHandler.Order)
	})

	r.Route("/users/{id}", func(r chi.Router) {
		r.Get("/", pageHandler.Profile)
		r.Post("/", userHandler.Update)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", authHandler.Session)
		r.Get("/events", eventHandler.GetRecent)
		r.Get("/users/{id}", userHandler.Get)
		r.Get("/auctions/{id}/bids", auctionHandler.Bids)
	})

	r.Get("/ws", wsHandler.Serve)
	r.Get("/ws/auctions/{id}", wsHandler.Serve)

	return r
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mkrause/storefront/internal/api/handlers"
	"github.com/mkrause/storefront/internal/api/middleware"
	"github.com/mkrause/storefront/internal/config"
	"github.com/mkrause/storefront/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	itemHandler := handlers.NewItemHandler(services.Item)
	cartHandler := handlers.NewCartHandler(services.Cart)
	checkoutHandler := handlers.NewCheckoutHandler(services.Checkout)
	userHandler := handlers.NewUserHandler(services.User)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/signin", authHandler.Signin)
			r.Post("/signout", authHandler.Signout)
			r.Post("/request-reset", authHandler.RequestReset)
			r.Post("/reset-password", authHandler.ResetPassword)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
			})
		})

		// Public item reads
		r.Get("/items", itemHandler.List)
		r.Get("/items/{id}", itemHandler.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Item mutations
			r.Post("/items", itemHandler.Create)
			r.Put("/items/{id}", itemHandler.Update)
			r.Delete("/items/{id}", itemHandler.Delete)

			// Cart routes
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.Get)
				r.Post("/", cartHandler.Add)
				r.Delete("/{id}", cartHandler.Remove)
			})

			// Checkout and orders
			r.Post("/checkout", checkoutHandler.Checkout)
			r.Get("/orders", checkoutHandler.ListOrders)
			r.Get("/orders/{id}", checkoutHandler.GetOrder)

			// User administration
			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Put("/{id}/permissions", userHandler.UpdatePermissions)
			})
		})
	})

	return r
}

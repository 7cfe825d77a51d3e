package handlers

import (
	"net/http"

	"dating-backend/internal/metrics"
	"dating-backend/internal/middleware"
	"dating-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Services bundles what the router serves
type Services struct {
	Auth    *services.AuthService
	Users   *services.UserService
	Dates   *services.DateService
	Photos  *services.PhotoService
	Hub     *services.WSHub
	Metrics *metrics.Metrics
}

// NewRouter builds the HTTP routes
func NewRouter(svc Services) http.Handler {
	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users)
	dateHandler := NewDateHandler(svc.Dates)
	photoHandler := NewPhotoHandler(svc.Photos)
	wsHandler := NewWebSocketHandler(svc.Hub, svc.Auth)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)
	if svc.Metrics != nil {
		r.Use(middleware.Metrics(svc.Metrics))
		r.Method(http.MethodGet, "/metrics", svc.Metrics.Handler())
	}

	r.Get("/health", Health)
	r.Get("/ws", wsHandler.HandleWebSocket)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/users/{id}", func(r chi.Router) {
		r.Get("/", userHandler.GetUser)
		r.Put("/", userHandler.UpdateUser)
		r.Delete("/", userHandler.DeleteUser)

		r.With(middleware.AuthMiddleware(svc.Auth)).Post("/photos/presign", photoHandler.PresignUpload)
	})

	r.Route("/dates", func(r chi.Router) {
		r.Get("/suggested/{id}", dateHandler.GetDate)
		r.Put("/suggested/{id}", dateHandler.UpdateDate)
		r.Delete("/suggested/{id}", dateHandler.DeleteDate)
		r.Post("/accept/{id}", dateHandler.AcceptDate)
		r.Post("/decline/{id}", dateHandler.DeclineDate)
		r.Get("/user/{userId}/{status}", dateHandler.ListByUserAndStatus)
		r.Get("/{userId}", dateHandler.ListByUser)
	})

	return r
}

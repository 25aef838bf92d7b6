package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"blogapi/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", handlers.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler())

	// Credential endpoints, throttled per client IP.
	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Post("/sign-up", handlers.SignUpHandler)
		r.Post("/login", handlers.LoginHandler)
	})

	// Public reads.
	r.Get("/posts", handlers.GetPostsHandler)
	r.Get("/posts/{id}", handlers.GetPostByIDHandler)
	r.Get("/users/{id}", handlers.GetUserProfileViewHandler)
	r.Get("/users/{id}/posts", handlers.GetUserPostsHandler)
	r.Get("/users/{id}/posts/search", handlers.SearchUserPostsHandler)

	// Everything below requires a valid token.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Get("/me/profile", handlers.GetMyProfileHandler)
		r.Put("/me/profile", handlers.UpdateMyProfileHandler)
		r.Put("/me/credentials", handlers.UpdateCredentialsHandler)
		r.Get("/me/posts", handlers.GetMyPostsHandler)
		r.Get("/me/posts/search", handlers.SearchMyPostsHandler)
		r.Get("/me/subscriptions/posts", handlers.GetSubscriptionPostsHandler)

		r.Get("/users", handlers.GetUsersHandler)
		r.Post("/users/{id}/subscribe", handlers.SubscribeHandler)
		r.Post("/users/{id}/unsubscribe", handlers.UnsubscribeHandler)

		r.Post("/posts", handlers.CreatePostHandler)
		r.Put("/posts/{id}", handlers.UpdatePostHandler)
	})

	return r
}

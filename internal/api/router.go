package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/skawahara/kotoba-sns-be/internal/api/handlers"
	"github.com/skawahara/kotoba-sns-be/internal/auth"
	"github.com/skawahara/kotoba-sns-be/internal/services"
)

// NewRouter creates and configures the Chi router.
func NewRouter(
	frontendOrigin string,
	userService services.UserServiceProvider,
	postService services.PostServiceProvider,
	wordService services.WordServiceProvider,
	likeService services.LikeServiceProvider,
	followService services.FollowServiceProvider,
	eventService services.EventServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	homeHandler := handlers.NewHomeHandler(postService)
	userHandler := handlers.NewUserHandler(userService, likeService, eventService)
	postHandler := handlers.NewPostHandler(postService, likeService, eventService)
	wordHandler := handlers.NewWordHandler(wordService, eventService)
	likeHandler := handlers.NewLikeHandler(likeService, postService, eventService)
	followHandler := handlers.NewFollowHandler(followService, userService, eventService)
	eventHandler := handlers.NewEventHandler(eventService)

	// Public surface
	r.Get("/", homeHandler.Top)
	r.Get("/about", homeHandler.About)
	r.Post("/signup", userHandler.Signup)
	r.Post("/login", userHandler.Login)
	r.Get("/logout", userHandler.Logout)
	r.Get("/users", userHandler.Index)
	r.Get("/users/{id}", userHandler.Show)
	r.Get("/users/{id}/likes", userHandler.Likes)
	r.Get("/posts/{id}", postHandler.Show)
	r.Get("/words/{id}", wordHandler.Show)

	// Everything below needs an acting user; unauthenticated requests are
	// redirected to /login before any handler runs.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser())

		r.Get("/me", userHandler.Me)
		r.Post("/users/{id}/update", userHandler.Update)

		r.Get("/posts", postHandler.Index)
		r.Post("/posts", postHandler.Create)
		r.Get("/posts/new", postHandler.New)
		r.Get("/posts/{id}/edit", postHandler.Edit)
		r.Patch("/posts/{id}", postHandler.Update)
		r.Put("/posts/{id}", postHandler.Update)
		r.Delete("/posts/{id}", postHandler.Destroy)

		r.Get("/words", wordHandler.Index)
		r.Post("/words", wordHandler.Create)
		r.Get("/words/new", wordHandler.New)
		r.Get("/words/{id}/edit", wordHandler.Edit)
		r.Patch("/words/{id}", wordHandler.Update)
		r.Put("/words/{id}", wordHandler.Update)
		r.Delete("/words/{id}", wordHandler.Destroy)

		r.Post("/likes/{post_id}/create", likeHandler.Create)
		r.Post("/likes/{post_id}/destroy", likeHandler.Destroy)

		r.Post("/follows/{target_user_id}", followHandler.Create)
		r.Post("/follows/{target_user_id}/destroy", followHandler.Destroy)
		r.Get("/follows", followHandler.Following)
		r.Get("/followers", followHandler.Followers)

		r.Get("/events", eventHandler.GetRecent)
	})

	return r
}

package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"polyglot-blog-be/config"
	"polyglot-blog-be/handlers"
	"polyglot-blog-be/metrics"
	"polyglot-blog-be/middleware"
)

func SetupRoutes(cfg *config.Config) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Locale)
	router.Use(middleware.AccessLog("/healthz", "/readyz", "/metrics"))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// Handle all OPTIONS requests globally before route matching
	router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Operations
	router.HandleFunc("/healthz", handlers.Healthz).Methods(http.MethodGet)
	router.HandleFunc("/readyz", handlers.Readyz).Methods(http.MethodGet)
	if cfg.Metrics {
		router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}

	// Static file serving for uploads
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))),
	)

	api := router.PathPrefix("/api").Subrouter()

	// Auth routes - only login is public
	api.HandleFunc("/auth/login", handlers.Login).Methods(http.MethodPost)

	// Public reader routes, rendered in the request locale
	api.HandleFunc("/posts", handlers.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{slug}", handlers.GetPostBySlug).Methods(http.MethodGet)
	api.HandleFunc("/posts/{slug}/comments", handlers.GetComments).Methods(http.MethodGet)
	api.HandleFunc("/posts/{slug}/comments", handlers.CreateComment).Methods(http.MethodPost)
	api.HandleFunc("/categories", handlers.GetCategories).Methods(http.MethodGet)
	api.HandleFunc("/subscribers", handlers.Subscribe).Methods(http.MethodPost)
	api.HandleFunc("/subscribers/unsubscribe", handlers.Unsubscribe).Methods(http.MethodPost)

	// Protected routes - require authentication
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	protected.HandleFunc("/users/me", handlers.GetCurrentUser).Methods(http.MethodGet)

	// Editor routes - content management
	editor := protected.PathPrefix("").Subrouter()
	editor.Use(middleware.RequireEditor)
	editor.HandleFunc("/preview", handlers.Preview).Methods(http.MethodPost)

	admin := editor.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/posts", handlers.GetAdminPosts).Methods(http.MethodGet)
	admin.HandleFunc("/posts", handlers.CreatePost).Methods(http.MethodPost)
	admin.HandleFunc("/posts/{id}", handlers.GetAdminPost).Methods(http.MethodGet)
	admin.HandleFunc("/posts/{id}", handlers.UpdatePost).Methods(http.MethodPut)
	admin.HandleFunc("/posts/{id}", handlers.DeletePost).Methods(http.MethodDelete)

	admin.HandleFunc("/categories", handlers.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id}", handlers.UpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id}", handlers.DeleteCategory).Methods(http.MethodDelete)

	admin.HandleFunc("/comments", handlers.GetPendingComments).Methods(http.MethodGet)
	admin.HandleFunc("/comments/{id}/approve", handlers.ApproveComment).Methods(http.MethodPut)
	admin.HandleFunc("/comments/{id}", handlers.DeleteComment).Methods(http.MethodDelete)

	admin.HandleFunc("/subscribers", handlers.GetSubscribers).Methods(http.MethodGet)

	// Admin-only routes - user management
	adminUsers := protected.PathPrefix("/users").Subrouter()
	adminUsers.Use(middleware.RequireAdmin)
	adminUsers.HandleFunc("", handlers.Register).Methods(http.MethodPost)
	adminUsers.HandleFunc("", handlers.GetUsers).Methods(http.MethodGet)
	adminUsers.HandleFunc("/{id}", handlers.GetUser).Methods(http.MethodGet)
	adminUsers.HandleFunc("/{id}", handlers.UpdateUser).Methods(http.MethodPut)
	adminUsers.HandleFunc("/{id}", handlers.DeleteUser).Methods(http.MethodDelete)

	return router
}

package handler

import (
	"net/http"

	"notemaker-server/internal/config"
	"notemaker-server/internal/metrics"
	"notemaker-server/internal/middleware"
	"notemaker-server/pkg/response"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type RouterOptions struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Notes    *NoteHandler
	Verifier middleware.TokenVerifier
	CORS     config.CORSConfig
	// StaticDir, when set, serves the built web client for non-API paths.
	StaticDir string
	Log       *zap.SugaredLogger
}

func NewRouter(opts RouterOptions) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware(opts.Log))
	r.Use(metrics.Middleware())
	r.Use(middleware.CORSMiddleware(
		opts.CORS.AllowedOrigins,
		opts.CORS.AllowedMethods,
		opts.CORS.AllowedHeaders,
	))

	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("", rootHandler).Methods("GET")
	api.HandleFunc("/", rootHandler).Methods("GET")
	api.HandleFunc("/auth/register", opts.Auth.Register).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/login", opts.Auth.Login).Methods("POST", "OPTIONS")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(opts.Verifier))

	protected.HandleFunc("/auth", opts.Users.GetMe).Methods("GET", "OPTIONS")

	protected.HandleFunc("/notes", opts.Notes.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes", opts.Notes.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes/{id}", opts.Notes.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", opts.Notes.Update).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/notes/{id}", opts.Notes.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/notes/{id}/duplicate", opts.Notes.Duplicate).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes/{id}/versions", opts.Notes.Versions).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}/versions/{versionId}/restore", opts.Notes.Restore).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes/{id}/summarize", opts.Notes.Summarize).Methods("POST", "OPTIONS")

	api.PathPrefix("").HandlerFunc(apiNotFound)

	if opts.StaticDir != "" {
		r.PathPrefix("/").Handler(newSPAHandler(opts.StaticDir)).Methods("GET", "HEAD")
	}

	r.NotFoundHandler = http.HandlerFunc(apiNotFound)
	return r
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	response.NotFound(w, "Route not found")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "notemaker-server",
	})
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	response.Message(w, "Welcome to the NoteMaker API")
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	apimw "github.com/soloadmin/admin-api/internal/api/middleware"
)

// RouterConfig holds the collaborators and settings used to build the router.
type RouterConfig struct {
	Accounts AccountService
	Gate     *apimw.AdminGate

	// Storage serves stored photos under /storage/. Nil disables the route.
	Storage http.Handler

	CORSOrigins  []string
	MaxBodyBytes int64
	Logger       *slog.Logger
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apimw.Trace(log))
	r.Use(apimw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	admin := NewAdminHandler(cfg.Accounts, cfg.MaxBodyBytes, log)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/register", admin.Register)
		r.Post("/login", admin.Login)

		r.Group(func(r chi.Router) {
			r.Use(cfg.Gate.RequireAdmin)
			r.Get("/me", admin.Me)
			r.Put("/update", admin.Update)
			r.Post("/logout", admin.Logout)
			r.Delete("/delete", admin.Delete)
		})
	})

	if cfg.Storage != nil {
		r.Handle("/storage/*", http.StripPrefix("/storage", cfg.Storage))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

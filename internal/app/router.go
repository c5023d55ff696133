package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/campdir/campdir/internal/auth"
	"github.com/campdir/campdir/internal/bootcamps"
	"github.com/campdir/campdir/internal/courses"
	"github.com/campdir/campdir/internal/reviews"
	"github.com/campdir/campdir/internal/users"
	"github.com/campdir/campdir/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthHandler     *auth.Handler
	BootcampHandler *bootcamps.Handler
	CourseHandler   *courses.Handler
	ReviewHandler   *reviews.Handler
	UserHandler     *users.Handler
	JobHandler      *jobs.Handler
}

// NewRouter constructs the chi.Router serving the public API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/bootcamps", func(r chi.Router) {
			params.BootcampHandler.MountRoutes(r)
			r.Route("/{bootcampID}/courses", params.CourseHandler.MountNested)
			r.Route("/{bootcampID}/reviews", params.ReviewHandler.MountNested)
		})
		r.Route("/courses", params.CourseHandler.MountRoutes)
		r.Route("/reviews", params.ReviewHandler.MountRoutes)
		r.Route("/users", params.UserHandler.MountRoutes)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	if params.Config != nil && params.Config.FileUploadPath != "" {
		// Uploaded bootcamp photos are public assets.
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(params.Config.FileUploadPath)))
		r.Handle("/uploads/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers so
// browsers keep photos for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

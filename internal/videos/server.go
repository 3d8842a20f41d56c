// Package videos serves the trending-videos proxy: it attaches the server-held
// API key to an upstream "most popular" request and relays the JSON.
package videos

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/success20242/TrendingVideo/internal/cache"
)

const (
	defaultRegion   = "US"
	defaultLanguage = "en"
	defaultCacheTTL = 300 * time.Second
)

// Upstream is the video-metadata provider.
type Upstream interface {
	Configured() bool
	MostPopular(ctx context.Context, region, language string) ([]byte, error)
}

type Server struct {
	upstream Upstream
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewServer builds the proxy. A nil cache disables response caching.
func NewServer(up Upstream, c cache.Cache, cacheTTL time.Duration) *Server {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &Server{
		upstream: up,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

type RouterOptions struct {
	AllowedOrigin  string
	RateLimitRPS   int
	RequestTimeout time.Duration
}

func (s *Server) Router(opts RouterOptions) chi.Router {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(corsMiddleware(opts.AllowedOrigin))

	r.Get("/health", s.HandleHealth)

	r.Group(func(r chi.Router) {
		if opts.RateLimitRPS > 0 {
			r.Use(newRateLimiter(opts.RateLimitRPS).middleware)
		}
		r.Get("/videos", s.HandleVideos)
		// path used by the first web client
		r.Get("/api/videos", s.HandleVideos)
	})

	return r
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "videos-api",
	})
}

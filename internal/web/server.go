// Package web is the server-rendered trending page. Each browser profile
// gets a session holding its preferences and its fetch controller.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/success20242/TrendingVideo/internal/analytics"
	"github.com/success20242/TrendingVideo/internal/fetch"
	"github.com/success20242/TrendingVideo/internal/gating"
	"github.com/success20242/TrendingVideo/internal/prefs"
	"github.com/success20242/TrendingVideo/internal/profile"
)

//go:embed templates/*.gohtml
var tplFS embed.FS

//go:embed all:static
var staticFS embed.FS

type Options struct {
	Backend   prefs.Backend
	Fetcher   fetch.Fetcher
	Profiles  *profile.Issuer
	Analytics analytics.Sink

	// Realtime serves /analytics/ws when set.
	Realtime http.Handler

	FetchTimeout time.Duration
	// SettleWait is how long a page render waits for a pending fetch before
	// showing the loading skeleton.
	SettleWait  time.Duration
	SessionIdle time.Duration
	// StaleAfter is the age at which a page load refetches a settled list.
	StaleAfter  time.Duration
	MaxSessions int

	PayPalClientID  string
	PayPalPlanID    string
	GAMeasurementID string
	Development     bool
}

type Server struct {
	opts     Options
	tpl      *template.Template
	sessions *sessions
	track    analytics.Sink
}

func NewServer(opts Options) (*Server, error) {
	if opts.Backend == nil {
		opts.Backend = prefs.NewMemoryBackend()
	}
	if opts.Profiles == nil {
		opts.Profiles = profile.NewIssuer(profile.RandomSecret(), false)
	}
	if opts.Analytics == nil {
		opts.Analytics = analytics.Noop{}
	}
	if opts.SettleWait <= 0 {
		opts.SettleWait = 2 * time.Second
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = 5 * time.Minute
	}

	tpl, err := template.New("").Funcs(template.FuncMap{
		"watchHref": func(c gating.Card) string { return cardHref("/go/watch", c) },
		"shopHref":  func(c gating.Card) string { return cardHref("/go/shop", c) },
	}).ParseFS(tplFS, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}

	return &Server{
		opts:     opts,
		tpl:      tpl,
		sessions: newSessions(opts.Backend, opts.Fetcher, opts.FetchTimeout, opts.SessionIdle, opts.MaxSessions),
		track:    opts.Analytics,
	}, nil
}

// Run expires idle sessions until ctx ends.
func (s *Server) Run(ctx context.Context) {
	s.sessions.run(ctx)
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.HandleHealth)
	r.Get("/static/*", s.handleStatic)
	if s.opts.Realtime != nil {
		r.Handle("/analytics/ws", s.opts.Realtime)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(s.opts.Profiles.Middleware)
		r.Use(s.Boundary)

		r.Get("/", s.HandleHome)
		r.Post("/preferences", s.HandlePreferences)
		r.Post("/theme", s.HandleTheme)
		r.Post("/retry", s.HandleRetry)
		r.Post("/subscribe", s.HandleSubscribe)
		r.Get("/go/watch", s.HandleWatch)
		r.Get("/go/shop", s.HandleShop)
	})

	return r
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "web",
	})
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	p := strings.TrimPrefix(r.URL.Path, "/static/")
	b, err := staticFS.ReadFile(path.Join("static", p))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	switch {
	case strings.HasSuffix(p, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	case strings.HasSuffix(p, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(p, ".svg"):
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(b)
}

// session returns the caller's session. Profiles.Middleware guarantees an id.
func (s *Server) session(r *http.Request) *session {
	id, _ := profile.FromContext(r.Context())
	return s.sessions.get(id)
}

func queryOf(p prefs.Preferences) fetch.Query {
	return fetch.Query{Region: p.Region, Language: p.Language}
}

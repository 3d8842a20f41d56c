package web

import (
	"bytes"
	"context"
	"net/http"

	"github.com/success20242/TrendingVideo/internal/analytics"
	"github.com/success20242/TrendingVideo/internal/fetch"
	"github.com/success20242/TrendingVideo/internal/gating"
	"github.com/success20242/TrendingVideo/internal/provider"
)

const (
	tagline          = "Watch What's Hot. Shop What's Smarter."
	loadErrorMsg     = "Failed to load videos. Please check your internet connection and try again."
	payPalMissingMsg = "PayPal configuration is missing. Please set environment variables."
)

type payPalView struct {
	Configured bool
	ClientID   string
	PlanID     string
	Missing    string
}

type homePage struct {
	Title   string
	Tagline string

	Dark     bool
	Premium  bool
	Region   string
	Language string

	Countries []Country
	Languages []Language

	Loading   bool
	Failed    bool
	Error     string
	Skeletons []int
	Cards     []gating.Card
	Empty     bool
	FreeLimit int

	PayPal          payPalView
	GAMeasurementID string
	Development     bool
	Realtime        bool
}

func (s *Server) HandleHome(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	p := sess.prefs.Snapshot()

	sess.ctrl.SetQuery(queryOf(p))
	sess.ctrl.RefreshIfStale(s.opts.StaleAfter)

	ctx, cancel := context.WithTimeout(r.Context(), s.opts.SettleWait)
	st, _ := sess.ctrl.WaitSettled(ctx)
	cancel()

	s.track.Track(analytics.PageView, analytics.Props{
		"isPremium": p.Premium,
		"country":   p.Region,
		"language":  p.Language,
	})

	page := homePage{
		Title:           "Trending Video",
		Tagline:         tagline,
		Dark:            p.DarkMode,
		Premium:         p.Premium,
		Region:          p.Region,
		Language:        p.Language,
		Countries:       Countries,
		Languages:       Languages,
		FreeLimit:       gating.FreeLimit,
		GAMeasurementID: s.opts.GAMeasurementID,
		Development:     s.opts.Development,
		Realtime:        s.opts.Realtime != nil,
		PayPal: payPalView{
			Configured: s.opts.PayPalClientID != "" && s.opts.PayPalPlanID != "",
			ClientID:   s.opts.PayPalClientID,
			PlanID:     s.opts.PayPalPlanID,
			Missing:    payPalMissingMsg,
		},
	}

	switch st.Status {
	case fetch.Success:
		page.Cards = gating.Build(st.Videos, p.Premium)
		page.Empty = len(page.Cards) == 0
	case fetch.Failed:
		page.Failed = true
		page.Error = loadErrorMsg
	default:
		page.Loading = true
		page.Skeletons = make([]int, provider.PageSize)
	}

	s.render(w, http.StatusOK, "home", page)
}

// render panics on template errors so the boundary turns them into the
// fallback page.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		panic(err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

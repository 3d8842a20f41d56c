package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/success20242/TrendingVideo/internal/analytics"
	"github.com/success20242/TrendingVideo/internal/fetch"
	"github.com/success20242/TrendingVideo/internal/gating"
	"github.com/success20242/TrendingVideo/internal/provider"
)

// HandlePreferences applies the region and language selectors. Unknown codes
// are ignored.
func (s *Server) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sess := s.session(r)
	premium := sess.prefs.Premium()

	if region := strings.ToUpper(r.PostForm.Get("region")); region != "" && knownCountry(region) && region != sess.prefs.Region() {
		sess.prefs.SetRegion(region)
		s.track.Track(analytics.CountryChanged, analytics.Props{
			"country":   region,
			"isPremium": premium,
		})
	}
	if lang := r.PostForm.Get("language"); lang != "" && knownLanguage(lang) && lang != sess.prefs.Language() {
		sess.prefs.SetLanguage(lang)
		s.track.Track(analytics.LanguageChanged, analytics.Props{
			"language":  lang,
			"isPremium": premium,
		})
	}

	sess.ctrl.SetQuery(queryOf(sess.prefs.Snapshot()))
	redirectHome(w, r)
}

func (s *Server) HandleTheme(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	dark := !sess.prefs.DarkMode()
	sess.prefs.SetDarkMode(dark)

	theme := "light"
	if dark {
		theme = "dark"
	}
	s.track.Track(analytics.ThemeChanged, analytics.Props{"theme": theme})
	redirectHome(w, r)
}

func (s *Server) HandleRetry(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	if sess.ctrl.State().Status == fetch.Idle {
		sess.ctrl.SetQuery(queryOf(sess.prefs.Snapshot()))
	} else {
		sess.ctrl.Retry()
	}
	redirectHome(w, r)
}

// HandleSubscribe is called by the payment widget after approval. The
// subscription is not verified with the payment provider.
func (s *Server) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var id string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			SubscriptionID string `json:"subscriptionId"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		id = body.SubscriptionID
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form")
			return
		}
		id = r.PostForm.Get("subscriptionId")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		writeError(w, http.StatusBadRequest, "subscriptionId is required")
		return
	}

	sess := s.session(r)
	sess.prefs.SetPremium(true)
	s.track.Track(analytics.SubscriptionCompleted, analytics.Props{"subscriptionId": id})

	writeJSON(w, http.StatusOK, map[string]any{"premium": true})
}

// HandleWatch is the primary action of a card. Locked cards only record the
// attempt and send the visitor back to the page.
func (s *Server) HandleWatch(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	i, v, ok := s.lookup(sess, r)
	if !ok {
		redirectHome(w, r)
		return
	}

	if gating.IsLocked(i, sess.prefs.Premium()) {
		s.track.Track(analytics.LockedVideoClicked, analytics.Props{
			"videoId": v.ID,
			"title":   v.Title,
			"index":   i,
		})
		redirectHome(w, r)
		return
	}

	s.track.Track(analytics.VideoClicked, analytics.Props{
		"videoId": v.ID,
		"title":   v.Title,
		"channel": v.ChannelName,
		"index":   i,
	})
	http.Redirect(w, r, gating.WatchURL(v.ID), http.StatusFound)
}

// HandleShop is the secondary action, available on every card.
func (s *Server) HandleShop(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	i, v, ok := s.lookup(sess, r)
	if !ok {
		redirectHome(w, r)
		return
	}

	s.track.Track(analytics.AffiliateClicked, analytics.Props{
		"videoId":  v.ID,
		"title":    v.Title,
		"index":    i,
		"isLocked": gating.IsLocked(i, sess.prefs.Premium()),
	})
	http.Redirect(w, r, gating.ShopURL(v.Title), http.StatusFound)
}

// lookup resolves the i parameter against the session's list. The k
// parameter must match the item the card was rendered for, so a list
// replaced from another tab never redirects to a different video.
func (s *Server) lookup(sess *session, r *http.Request) (int, provider.VideoSummary, bool) {
	q := r.URL.Query()
	i, err := strconv.Atoi(q.Get("i"))
	if err != nil || i < 0 {
		return 0, provider.VideoSummary{}, false
	}
	st := sess.ctrl.State()
	if st.Status != fetch.Success || i >= len(st.Videos) {
		return 0, provider.VideoSummary{}, false
	}
	v := st.Videos[i]
	if q.Get("k") != cardKey(v.ID) {
		return 0, provider.VideoSummary{}, false
	}
	return i, v, true
}

// cardKey identifies a video in a link without exposing the id of a
// locked card.
func cardKey(id string) string {
	return strconv.FormatUint(xxhash.Sum64String(id), 36)
}

func cardHref(route string, c gating.Card) string {
	return route + "?i=" + itoa(c.Index) + "&k=" + cardKey(c.ID)
}

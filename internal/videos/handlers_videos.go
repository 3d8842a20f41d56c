package videos

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
)

const (
	errNotConfigured = "YouTube API key not configured"
	errFetchFailed   = "Failed to fetch videos"
)

// HandleVideos answers GET /videos?region=<code>&language=<code>.
// Codes are forwarded as given; the upstream API validates them.
func (s *Server) HandleVideos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	region := strings.TrimSpace(q.Get("region"))
	if region == "" {
		region = strings.TrimSpace(q.Get("country"))
	}
	if region == "" {
		region = defaultRegion
	}
	language := strings.TrimSpace(q.Get("language"))
	if language == "" {
		language = defaultLanguage
	}

	if s.upstream == nil || !s.upstream.Configured() {
		log.Printf("videos-api: request for %s/%s rejected, api key not configured", region, language)
		writeError(w, http.StatusInternalServerError, errNotConfigured)
		return
	}

	ctx := r.Context()
	key := cacheKey(region, language)

	if s.cache != nil {
		if body, ok := s.cache.Get(ctx, key); ok {
			s.writeBody(w, body, "HIT")
			return
		}
	}

	body, err := s.upstream.MostPopular(ctx, region, language)
	if err != nil {
		log.Printf("videos-api: fetch region=%s language=%s: %v", region, language, err)
		writeError(w, http.StatusInternalServerError, errFetchFailed)
		return
	}
	if !json.Valid(body) {
		log.Printf("videos-api: fetch region=%s language=%s: upstream body is not JSON", region, language)
		writeError(w, http.StatusInternalServerError, errFetchFailed)
		return
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, body, s.cacheTTL)
	}
	s.writeBody(w, body, "MISS")
}

func (s *Server) writeBody(w http.ResponseWriter, body []byte, cacheStatus string) {
	maxAge := strconv.Itoa(int(s.cacheTTL.Seconds()))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, s-maxage="+maxAge+", stale-while-revalidate=60")
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func cacheKey(region, language string) string {
	return "videos:" + region + ":" + language
}

// Package mockupstream imitates the "most popular" chart of the YouTube Data
// API with canned items, for local development without a real API key.
package mockupstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/success20242/TrendingVideo/internal/provider"
)

// FailingRegion makes the mock answer 500, to exercise error states.
const FailingRegion = "ZZ"

type listResponse struct {
	Kind     string          `json:"kind"`
	Etag     string          `json:"etag"`
	Items    []provider.Item `json:"items"`
	PageInfo pageInfo        `json:"pageInfo"`
}

type pageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

// SetupRouter serves the chart. When apiKey is non-empty, requests must
// carry it in the key parameter.
func SetupRouter(apiKey string) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"service": "mock-upstream",
		})
	})

	videos := func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if apiKey != "" && q.Get("key") != apiKey {
			writeAPIError(w, http.StatusForbidden, "API key not valid. Please pass a valid API key.")
			return
		}
		if q.Get("chart") != "mostPopular" {
			writeAPIError(w, http.StatusBadRequest, "Only chart=mostPopular is supported.")
			return
		}

		region := strings.ToUpper(q.Get("regionCode"))
		if region == "" {
			region = "US"
		}
		if region == FailingRegion {
			writeAPIError(w, http.StatusInternalServerError, "Backend Error")
			return
		}

		n := provider.PageSize
		if v, err := strconv.Atoi(q.Get("maxResults")); err == nil && v > 0 && v < n {
			n = v
		}

		items := SampleItems(region, q.Get("hl"))[:n]
		writeJSON(w, http.StatusOK, listResponse{
			Kind:     "youtube#videoListResponse",
			Etag:     fmt.Sprintf("mock-%s-%s", region, q.Get("hl")),
			Items:    items,
			PageInfo: pageInfo{TotalResults: 200, ResultsPerPage: len(items)},
		})
	}
	r.Get("/youtube/v3/videos", videos)
	r.Get("/videos", videos)

	return r
}

var sampleTitles = []struct {
	title   string
	channel string
}{
	{"Building a Tiny House in 30 Days", "Maker Lane"},
	{"Top 10 Gadgets of the Year", "Tech Weekly"},
	{"Street Food Tour: Night Market", "Hungry Travels"},
	{"Live Concert Highlights", "Stage Nights"},
	{"Speedrun World Record Attempt", "Pixel Rush"},
	{"Science of Black Holes Explained", "Curious Cosmos"},
	{"Home Workout, No Equipment", "Fit Daily"},
	{"Unboxing the New Flagship Phone", "Tech Weekly"},
	{"Cozy Rainy Day Baking", "Flour & Fire"},
	{"Ancient City Documentary", "History Lens"},
	{"Funniest Pet Moments", "Paws Central"},
	{"Championship Final Recap", "Sports Desk"},
}

// SampleItems returns a full page of deterministic items. Some omit
// statistics, contentDetails or larger thumbnails the way real items can.
func SampleItems(region, language string) []provider.Item {
	published := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	items := make([]provider.Item, 0, len(sampleTitles))

	for i, s := range sampleTitles {
		id := fmt.Sprintf("mock%s%02d", region, i)
		thumb := func(size string, w, h int) *provider.Thumbnail {
			return &provider.Thumbnail{
				URL:    fmt.Sprintf("https://i.ytimg.com/vi/%s/%s.jpg", id, size),
				Width:  w,
				Height: h,
			}
		}

		it := provider.Item{
			ID: id,
			Snippet: provider.Snippet{
				Title:        fmt.Sprintf("%s (%s)", s.title, region),
				Description:  "Sample item served by the mock upstream.",
				ChannelTitle: s.channel,
				PublishedAt:  published.Add(-time.Duration(i) * 3 * time.Hour).Format(time.RFC3339),
				Thumbnails: provider.Thumbnails{
					Default: thumb("default", 120, 90),
				},
			},
		}
		if language != "" && language != "en" {
			it.Snippet.Title += " [" + language + "]"
		}

		switch i % 4 {
		case 0:
			it.Snippet.Thumbnails.Maxres = thumb("maxresdefault", 1280, 720)
			it.Snippet.Thumbnails.High = thumb("hqdefault", 480, 360)
		case 1:
			it.Snippet.Thumbnails.High = thumb("hqdefault", 480, 360)
			it.Snippet.Thumbnails.Medium = thumb("mqdefault", 320, 180)
		case 2:
			it.Snippet.Thumbnails.Medium = thumb("mqdefault", 320, 180)
		}

		if i%5 != 4 {
			views := int64(950) * pow10(i%8)
			it.Statistics = &provider.Statistics{
				ViewCount: strconv.FormatInt(views+int64(i), 10),
				LikeCount: strconv.FormatInt(views/20, 10),
			}
		}
		if i%6 != 5 {
			it.ContentDetails = &provider.ContentDetails{Duration: sampleDuration(i)}
		}
		items = append(items, it)
	}
	return items
}

func pow10(n int) int64 {
	v := int64(1)
	for ; n > 0; n-- {
		v *= 10
	}
	return v
}

func sampleDuration(i int) string {
	switch {
	case i%7 == 3:
		return fmt.Sprintf("PT1H%dM%dS", i, i*4)
	case i%3 == 0:
		return fmt.Sprintf("PT%dM", i+2)
	default:
		return fmt.Sprintf("PT%dM%dS", i+1, (i*13)%60)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeAPIError mirrors the error envelope of Google APIs.
func writeAPIError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": msg,
		},
	})
}

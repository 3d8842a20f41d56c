package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock HTTP Transport
type RoundTripFunc func(req *http.Request) *http.Response

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func NewMockClient(fn RoundTripFunc) *http.Client {
	return &http.Client{
		Transport: fn,
	}
}

func TestMostPopular_RequestShape(t *testing.T) {
	var seen *http.Request
	client := NewYouTubeClient("apikey", "https://mock.com/youtube/v3/videos", time.Second)
	client.http = NewMockClient(func(req *http.Request) *http.Response {
		seen = req
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(`{"items":[]}`)),
			Header:     make(http.Header),
		}
	})

	body, err := client.MostPopular(context.Background(), "DE", "de")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(body))

	require.NotNil(t, seen)
	q := seen.URL.Query()
	assert.Equal(t, "/youtube/v3/videos", seen.URL.Path)
	assert.Equal(t, "snippet,statistics,contentDetails", q.Get("part"))
	assert.Equal(t, "mostPopular", q.Get("chart"))
	assert.Equal(t, "12", q.Get("maxResults"))
	assert.Equal(t, "DE", q.Get("regionCode"))
	assert.Equal(t, "de", q.Get("hl"))
	assert.Equal(t, "apikey", q.Get("key"))
}

func TestMostPopular_BodyPassedThrough(t *testing.T) {
	raw := `{"kind":"youtube#videoListResponse","nextPageToken":"CAwQAA","items":[{"id":"vid1"}]}`
	client := NewYouTubeClient("apikey", "", time.Second)
	client.http = NewMockClient(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(raw)),
			Header:     make(http.Header),
		}
	})

	body, err := client.MostPopular(context.Background(), "US", "en")
	require.NoError(t, err)
	assert.Equal(t, raw, string(body))
}

func TestMostPopular_UpstreamError(t *testing.T) {
	client := NewYouTubeClient("apikey", "", time.Second)
	client.http = NewMockClient(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: 403,
			Body:       io.NopCloser(strings.NewReader(`{"error":{"message":"quotaExceeded"}}`)),
			Header:     make(http.Header),
		}
	})

	body, err := client.MostPopular(context.Background(), "US", "en")
	assert.Nil(t, body)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 403, se.Code)
	assert.NotContains(t, err.Error(), "quotaExceeded")
}

func TestConfigured(t *testing.T) {
	assert.True(t, NewYouTubeClient("k", "", 0).Configured())
	assert.False(t, NewYouTubeClient("", "", 0).Configured())
}

func TestThumbnailsBest(t *testing.T) {
	tests := []struct {
		name  string
		thumb Thumbnails
		want  string
	}{
		{"maxres first", Thumbnails{Maxres: &Thumbnail{URL: "max"}, High: &Thumbnail{URL: "high"}}, "max"},
		{"standard over high", Thumbnails{Standard: &Thumbnail{URL: "std"}, High: &Thumbnail{URL: "high"}}, "std"},
		{"falls back to high", Thumbnails{High: &Thumbnail{URL: "high"}, Default: &Thumbnail{URL: "def"}}, "high"},
		{"empty url skipped", Thumbnails{Maxres: &Thumbnail{}, Medium: &Thumbnail{URL: "med"}}, "med"},
		{"default only", Thumbnails{Default: &Thumbnail{URL: "def"}}, "def"},
		{"none", Thumbnails{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.thumb.Best())
		})
	}
}

func TestSummarizeAll_KeepsOrderAndOptionalFields(t *testing.T) {
	items := []Item{
		{
			ID: "a",
			Snippet: Snippet{
				Title:        "First",
				ChannelTitle: "Chan A",
				PublishedAt:  "2024-01-01T00:00:00Z",
				Thumbnails:   Thumbnails{High: &Thumbnail{URL: "http://img/a"}},
			},
			Statistics:     &Statistics{ViewCount: "1500"},
			ContentDetails: &ContentDetails{Duration: "PT4M2S"},
		},
		{ID: "b", Snippet: Snippet{Title: "Second"}},
	}

	out := SummarizeAll(items)
	require.Len(t, out, 2)

	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "Chan A", out[0].ChannelName)
	assert.Equal(t, "http://img/a", out[0].ThumbnailURL)
	assert.Equal(t, "1500", out[0].ViewCount)
	assert.Equal(t, "PT4M2S", out[0].DurationToken)

	assert.Equal(t, "b", out[1].ID)
	assert.Empty(t, out[1].ThumbnailURL)
	assert.Empty(t, out[1].ViewCount)
	assert.Empty(t, out[1].DurationToken)
}

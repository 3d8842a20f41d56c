package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultVideosURL is the YouTube Data API videos.list endpoint.
	DefaultVideosURL = "https://www.googleapis.com/youtube/v3/videos"

	// PageSize is the number of trending items requested per region.
	PageSize = 12

	parts = "snippet,statistics,contentDetails"
)

// StatusError reports a non-2xx answer from the upstream API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("youtube status %d", e.Code)
}

type YouTubeClient struct {
	apiKey    string
	videosURL string
	http      *http.Client
}

func NewYouTubeClient(apiKey, videosURL string, timeout time.Duration) *YouTubeClient {
	if videosURL == "" {
		videosURL = DefaultVideosURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &YouTubeClient{
		apiKey:    apiKey,
		videosURL: videosURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether a credential is available.
func (c *YouTubeClient) Configured() bool {
	return c.apiKey != ""
}

// MostPopular fetches the "most popular" chart for a region and returns the
// response body as received.
func (c *YouTubeClient) MostPopular(ctx context.Context, region, language string) ([]byte, error) {
	val := url.Values{}
	val.Set("part", parts)
	val.Set("chart", "mostPopular")
	val.Set("maxResults", strconv.Itoa(PageSize))
	val.Set("regionCode", region)
	val.Set("hl", language)
	val.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.videosURL+"?"+val.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused; the body is never forwarded
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read youtube body: %w", err)
	}
	return body, nil
}

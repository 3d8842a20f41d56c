package provider

// VideoSummary is one entry of the trending list as the frontend needs it.
type VideoSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	ChannelName   string `json:"channelName"`
	PublishedAt   string `json:"publishedAt"`
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`  // best available thumbnail
	ViewCount     string `json:"viewCount,omitempty"`     // decimal string as delivered upstream
	DurationToken string `json:"durationToken,omitempty"` // e.g. PT4M13S
}

// ListResponse is the part of a videos.list response the frontend reads.
// Everything else passes through the proxy untouched.
type ListResponse struct {
	Items []Item `json:"items"`
}

type Item struct {
	ID             string          `json:"id"`
	Snippet        Snippet         `json:"snippet"`
	Statistics     *Statistics     `json:"statistics,omitempty"`
	ContentDetails *ContentDetails `json:"contentDetails,omitempty"`
}

type Snippet struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ChannelTitle string     `json:"channelTitle"`
	PublishedAt  string     `json:"publishedAt"`
	Thumbnails   Thumbnails `json:"thumbnails"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type Thumbnails struct {
	Default  *Thumbnail `json:"default,omitempty"`
	Medium   *Thumbnail `json:"medium,omitempty"`
	High     *Thumbnail `json:"high,omitempty"`
	Standard *Thumbnail `json:"standard,omitempty"`
	Maxres   *Thumbnail `json:"maxres,omitempty"`
}

type Statistics struct {
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount"`
}

type ContentDetails struct {
	Duration string `json:"duration"`
}

// Best returns the highest resolution thumbnail URL that is present.
func (t Thumbnails) Best() string {
	for _, th := range []*Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if th != nil && th.URL != "" {
			return th.URL
		}
	}
	return ""
}

func Summarize(it Item) VideoSummary {
	v := VideoSummary{
		ID:           it.ID,
		Title:        it.Snippet.Title,
		ChannelName:  it.Snippet.ChannelTitle,
		PublishedAt:  it.Snippet.PublishedAt,
		ThumbnailURL: it.Snippet.Thumbnails.Best(),
	}
	if it.Statistics != nil {
		v.ViewCount = it.Statistics.ViewCount
	}
	if it.ContentDetails != nil {
		v.DurationToken = it.ContentDetails.Duration
	}
	return v
}

// SummarizeAll keeps upstream order, which is the trending rank.
func SummarizeAll(items []Item) []VideoSummary {
	out := make([]VideoSummary, 0, len(items))
	for _, it := range items {
		out = append(out, Summarize(it))
	}
	return out
}

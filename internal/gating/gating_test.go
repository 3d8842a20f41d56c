package gating

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/success20242/TrendingVideo/internal/provider"
)

func sample(n int) []provider.VideoSummary {
	out := make([]provider.VideoSummary, n)
	for i := range out {
		out[i] = provider.VideoSummary{
			ID:            fmt.Sprintf("id-%d", i),
			Title:         fmt.Sprintf("Video %d", i),
			ChannelName:   "Channel",
			ThumbnailURL:  "https://i.ytimg.com/vi/x/hqdefault.jpg",
			ViewCount:     "1500000",
			DurationToken: "PT1H2M3S",
		}
	}
	return out
}

func TestUnlockedCount(t *testing.T) {
	for n := 0; n <= 12; n++ {
		free := Build(sample(n), false)
		assert.Equal(t, min(FreeLimit, n), Unlocked(free), "n=%d free", n)

		premium := Build(sample(n), true)
		assert.Equal(t, n, Unlocked(premium), "n=%d premium", n)
	}
}

func TestLockedCardsHideContent(t *testing.T) {
	cards := Build(sample(12), false)
	require.Len(t, cards, 12)

	for i, c := range cards {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, fmt.Sprintf("id-%d", i), c.ID)
		if i < FreeLimit {
			assert.False(t, c.Locked)
			assert.True(t, c.Free)
			assert.Equal(t, fmt.Sprintf("Video %d", i), c.Title)
			assert.Equal(t, "1.5M", c.Views)
			assert.Equal(t, "1:02:03", c.Duration)
			continue
		}
		assert.True(t, c.Locked)
		assert.False(t, c.Free)
		assert.Empty(t, c.Title)
		assert.Empty(t, c.Channel)
		assert.Empty(t, c.Thumbnail)
		assert.Empty(t, c.Views)
		assert.Empty(t, c.Duration)
	}
}

func TestFreeLabelIndependentOfPremium(t *testing.T) {
	for i := 0; i < 6; i++ {
		assert.Equal(t, i < 3, IsFree(i))
		assert.False(t, IsLocked(i, true))
		assert.Equal(t, i >= 3, IsLocked(i, false))
	}

	cards := Build(sample(5), true)
	assert.True(t, cards[0].Free)
	assert.False(t, cards[4].Free)
	assert.False(t, cards[4].Locked)
}

func TestOptionalFields(t *testing.T) {
	cards := Build([]provider.VideoSummary{
		{ID: "a", Title: "No stats"},
		{ID: "b", Title: "Bad stats", ViewCount: "lots", DurationToken: "garbage"},
	}, false)

	assert.Empty(t, cards[0].Views)
	assert.Empty(t, cards[0].Duration)
	assert.Empty(t, cards[1].Views)
	assert.Equal(t, "0:00", cards[1].Duration)
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"))
	assert.Equal(t,
		"https://www.amazon.com/s?k=Rock+%26+Roll+%2F+Live%3F&tag=qualitygood0d-21",
		ShopURL("Rock & Roll / Live?"))
}

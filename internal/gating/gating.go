// Package gating decides which trending items a visitor may open and builds
// the card view model the page renders.
package gating

import (
	"net/url"

	"github.com/success20242/TrendingVideo/internal/format"
	"github.com/success20242/TrendingVideo/internal/provider"
)

// FreeLimit is how many items, by trending rank, are open without premium.
const FreeLimit = 3

const (
	watchBase    = "https://www.youtube.com/watch?v="
	shopBase     = "https://www.amazon.com/s?k="
	affiliateTag = "qualitygood0d-21"
)

func IsLocked(index int, premium bool) bool {
	return !premium && index >= FreeLimit
}

// IsFree is a label only. It does not depend on premium.
func IsFree(index int) bool {
	return index < FreeLimit
}

type Card struct {
	Index  int
	ID     string
	Locked bool
	Free   bool

	// Empty on locked cards.
	Title     string
	Channel   string
	Thumbnail string
	Views     string
	Duration  string
}

// Build keeps upstream order. Locked cards never carry display fields.
func Build(videos []provider.VideoSummary, premium bool) []Card {
	cards := make([]Card, 0, len(videos))
	for i, v := range videos {
		c := Card{
			Index:  i,
			ID:     v.ID,
			Locked: IsLocked(i, premium),
			Free:   IsFree(i),
		}
		if !c.Locked {
			c.Title = v.Title
			c.Channel = v.ChannelName
			c.Thumbnail = v.ThumbnailURL
			if n, ok := format.ParseViewCount(v.ViewCount); ok {
				c.Views = format.ViewCount(n)
			}
			if v.DurationToken != "" {
				c.Duration = format.Duration(v.DurationToken)
			}
		}
		cards = append(cards, c)
	}
	return cards
}

// Unlocked counts the cards a visitor can open.
func Unlocked(cards []Card) int {
	n := 0
	for _, c := range cards {
		if !c.Locked {
			n++
		}
	}
	return n
}

func WatchURL(id string) string {
	return watchBase + url.QueryEscape(id)
}

func ShopURL(title string) string {
	return shopBase + url.QueryEscape(title) + "&tag=" + affiliateTag
}

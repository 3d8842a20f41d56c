// Package analytics records what visitors do on the page. Tracking is fire
// and forget: a sink never reports an error to its caller.
package analytics

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	PageView              = "page_view"
	CountryChanged        = "country_changed"
	LanguageChanged       = "language_changed"
	ThemeChanged          = "theme_changed"
	VideoClicked          = "video_clicked"
	LockedVideoClicked    = "locked_video_clicked"
	AffiliateClicked      = "affiliate_clicked"
	SubscriptionCompleted = "subscription_completed"
)

// Channel is the Redis pub/sub channel events are published on.
const Channel = "analytics"

type Props = map[string]any

type Sink interface {
	Track(event string, props Props)
}

type Noop struct{}

func (Noop) Track(string, Props) {}

// LogSink writes every event to the process log. Used in development.
type LogSink struct{}

func (LogSink) Track(event string, props Props) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		v, _ := json.Marshal(props[k])
		b.Write(v)
	}
	log.Printf("analytics: %s%s", event, b.String())
}

// Message is the payload published for each event.
type Message struct {
	Type       string `json:"type"`
	Event      string `json:"event"`
	Properties Props  `json:"properties"`
	At         string `json:"at"`
}

type RedisSink struct {
	rdb     *redis.Client
	channel string
	timeout time.Duration
	now     func() time.Time
}

func NewRedisSink(rdb *redis.Client) *RedisSink {
	return &RedisSink{
		rdb:     rdb,
		channel: Channel,
		timeout: 2 * time.Second,
		now:     time.Now,
	}
}

// Track publishes in the background and only logs failures.
func (s *RedisSink) Track(event string, props Props) {
	msg := Message{
		Type:       "analytics",
		Event:      event,
		Properties: props,
		At:         s.now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("analytics: marshal %s: %v", event, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.rdb.Publish(ctx, s.channel, string(data)).Err(); err != nil {
			log.Printf("analytics: publish %s: %v", event, err)
		}
	}()
}

// Multi fans every event out to all sinks.
type Multi []Sink

func (m Multi) Track(event string, props Props) {
	for _, s := range m {
		s.Track(event, props)
	}
}

// Package fetch keeps the trending list in step with the selected region and
// language. Only the most recently requested query may change the state.
package fetch

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/success20242/TrendingVideo/internal/provider"
)

type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

type Query struct {
	Region   string
	Language string
}

// State is a snapshot of the controller. Videos is only meaningful for
// Success and Err only for Failed. SettledAt is zero until a fetch ends.
type State struct {
	Status    Status
	Query     Query
	Videos    []provider.VideoSummary
	Err       string
	SettledAt time.Time
}

type Fetcher interface {
	FetchVideos(ctx context.Context, q Query) ([]provider.VideoSummary, error)
}

type Controller struct {
	fetcher Fetcher
	timeout time.Duration
	now     func() time.Time

	mu      sync.Mutex
	state   State
	seq     uint64
	cancel  context.CancelFunc
	changed chan struct{}
}

func NewController(f Fetcher, timeout time.Duration) *Controller {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Controller{
		fetcher: f,
		timeout: timeout,
		now:     time.Now,
		changed: make(chan struct{}),
	}
}

// SetQuery starts a fetch for q unless q is already the current query.
// Nothing happens for an unchanged query, even when the last fetch failed.
func (c *Controller) SetQuery(q Query) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status != Idle && c.state.Query == q {
		return
	}
	c.startLocked(q)
}

// Retry re-issues the fetch for the current query.
func (c *Controller) Retry() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status == Idle {
		return
	}
	c.startLocked(c.state.Query)
}

// RefreshIfStale re-issues the fetch once the settled result is at least
// maxAge old. It reports whether a fetch was started.
func (c *Controller) RefreshIfStale(maxAge time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Status {
	case Success, Failed:
	default:
		return false
	}
	if maxAge <= 0 || c.now().Sub(c.state.SettledAt) < maxAge {
		return false
	}
	c.startLocked(c.state.Query)
	return true
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// WaitSettled blocks until the controller leaves Loading or ctx is done.
func (c *Controller) WaitSettled(ctx context.Context) (State, error) {
	for {
		c.mu.Lock()
		if c.state.Status != Loading {
			st := c.state
			c.mu.Unlock()
			return st, nil
		}
		ch := c.changed
		c.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return c.State(), ctx.Err()
		}
	}
}

// Close cancels the in-flight fetch, if any. Its result is discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) startLocked(q Query) {
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	c.cancel = cancel
	c.setLocked(State{Status: Loading, Query: q})

	go func() {
		defer cancel()
		videos, err := c.fetcher.FetchVideos(ctx, q)
		c.finish(seq, q, videos, err)
	}()
}

func (c *Controller) finish(seq uint64, q Query, videos []provider.VideoSummary, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq || q != c.state.Query {
		return
	}
	c.cancel = nil

	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = FallbackMessage
		}
		log.Printf("fetch: %s/%s failed: %v", q.Region, q.Language, err)
		c.setLocked(State{Status: Failed, Query: q, Err: msg, SettledAt: c.now()})
		return
	}
	if videos == nil {
		videos = []provider.VideoSummary{}
	}
	c.setLocked(State{Status: Success, Query: q, Videos: videos, SettledAt: c.now()})
}

func (c *Controller) setLocked(s State) {
	c.state = s
	close(c.changed)
	c.changed = make(chan struct{})
}

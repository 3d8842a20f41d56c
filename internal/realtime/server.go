// Package realtime streams analytics events to websocket viewers. Events
// arrive on the Redis analytics channel and are relayed unchanged.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/success20242/TrendingVideo/internal/analytics"
)

type Server struct {
	hub      *Hub
	rdb      *redis.Client
	upgrader websocket.Upgrader
}

// NewServer accepts websocket handshakes from allowedOrigin. An empty
// allowedOrigin means same host only.
func NewServer(hub *Hub, rdb *redis.Client, allowedOrigin string) *Server {
	s := &Server{hub: hub, rdb: rdb}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if allowedOrigin != "" {
				return origin == allowedOrigin
			}
			u, err := url.Parse(origin)
			return err == nil && u.Host == r.Host
		},
	}
	return s
}

// Subscribe returns once Redis has confirmed the subscription.
func (s *Server) Subscribe(ctx context.Context) (*redis.PubSub, error) {
	sub := s.rdb.Subscribe(ctx, analytics.Channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}
	return sub, nil
}

// Pump relays messages from sub to the hub until ctx ends.
func (s *Server) Pump(ctx context.Context, sub *redis.PubSub) {
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.hub.Broadcast(ctx, []byte(msg.Payload))
		}
	}
}

func (s *Server) RunRedisSubscriber(ctx context.Context) error {
	sub, err := s.Subscribe(ctx)
	if err != nil {
		return err
	}
	s.Pump(ctx, sub)
	return nil
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("realtime: ws upgrade: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	welcome := map[string]any{
		"type": "welcome",
		"now":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if b, err := json.Marshal(welcome); err == nil {
		client.send <- b
	}

	select {
	case s.hub.register <- client:
	case <-s.hub.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/success20242/TrendingVideo/internal/cache"
	"github.com/success20242/TrendingVideo/internal/config"
	"github.com/success20242/TrendingVideo/internal/provider"
	"github.com/success20242/TrendingVideo/internal/videos"
)

func main() {
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatalf("videos-api: %v", err)
	}

	if cfg.YouTubeAPIKey == "" {
		log.Printf("videos-api: YOUTUBE_API_KEY is not set, /videos will answer 500")
	}

	c, closeCache := openCache(cfg.RedisURL)
	defer closeCache()

	yt := provider.NewYouTubeClient(cfg.YouTubeAPIKey, cfg.YouTubeVideos, cfg.UpstreamTimeout)
	srv := videos.NewServer(yt, c, cfg.CacheTTL)

	r := srv.Router(videos.RouterOptions{
		AllowedOrigin:  cfg.AllowedOrigin,
		RateLimitRPS:   cfg.RateLimitRPS,
		RequestTimeout: cfg.UpstreamTimeout + 5*time.Second,
	})

	log.Printf("videos-api listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("videos-api: %v", err)
	}
}

// openCache prefers Redis and falls back to memory when Redis is not
// configured or not reachable.
func openCache(redisURL string) (cache.Cache, func()) {
	if redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Printf("videos-api: invalid REDIS_URL, using memory cache: %v", err)
		} else {
			rdb := redis.NewClient(opt)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			err := rdb.Ping(ctx).Err()
			cancel()
			if err == nil {
				log.Printf("videos-api: response cache in redis")
				return cache.NewRedis(rdb, ""), func() { _ = rdb.Close() }
			}
			log.Printf("videos-api: redis unreachable, using memory cache: %v", err)
			_ = rdb.Close()
		}
	}

	mem := cache.NewMemory()
	return mem, mem.Stop
}

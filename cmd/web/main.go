package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/success20242/TrendingVideo/internal/analytics"
	"github.com/success20242/TrendingVideo/internal/config"
	"github.com/success20242/TrendingVideo/internal/fetch"
	"github.com/success20242/TrendingVideo/internal/prefs"
	"github.com/success20242/TrendingVideo/internal/profile"
	"github.com/success20242/TrendingVideo/internal/realtime"
	"github.com/success20242/TrendingVideo/internal/web"
)

func main() {
	cfg, err := config.LoadWeb()
	if err != nil {
		log.Fatalf("web: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := openRedis(ctx, cfg.RedisURL)
	if rdb != nil {
		defer rdb.Close()
	}

	backend, closeBackend := openBackend(ctx, cfg, rdb)
	defer closeBackend()

	secret := []byte(cfg.ProfileSecret)
	if len(secret) == 0 {
		log.Printf("web: PROFILE_SECRET is not set, profiles will not survive a restart")
		secret = profile.RandomSecret()
	}

	var sinks analytics.Multi
	if cfg.Development() {
		sinks = append(sinks, analytics.LogSink{})
	}
	var live http.Handler
	if rdb != nil {
		sinks = append(sinks, analytics.NewRedisSink(rdb))

		hub := realtime.NewHub()
		rt := realtime.NewServer(hub, rdb, cfg.WSOrigin)
		go hub.Run(ctx)
		go func() {
			if err := rt.RunRedisSubscriber(ctx); err != nil && ctx.Err() == nil {
				log.Printf("web: analytics subscriber: %v", err)
			}
		}()
		live = http.HandlerFunc(rt.HandleWS)
	}

	srv, err := web.NewServer(web.Options{
		Backend:         backend,
		Fetcher:         fetch.NewClient(cfg.APIURL, cfg.FetchTimeout),
		Profiles:        profile.NewIssuer(secret, cfg.SecureCookies),
		Analytics:       sinks,
		Realtime:        live,
		FetchTimeout:    cfg.FetchTimeout,
		StaleAfter:      cfg.StaleAfter,
		MaxSessions:     cfg.MaxSessions,
		PayPalClientID:  cfg.PayPalClient,
		PayPalPlanID:    cfg.PayPalPlan,
		GAMeasurementID: cfg.GAMeasurement,
		Development:     cfg.Development(),
	})
	if err != nil {
		log.Fatalf("web: templates: %v", err)
	}
	go srv.Run(ctx)

	if !cfg.PayPalConfigured() {
		log.Printf("web: PAYPAL_CLIENT_ID or PAYPAL_PLAN_ID missing, subscriptions disabled")
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Printf("web listening on :%s (API=%s, prefs=%s)", cfg.Port, cfg.APIURL, cfg.PrefsBackend)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("web: %v", err)
	}
}

func openRedis(ctx context.Context, redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("web: invalid REDIS_URL: %v", err)
		return nil
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("web: redis unreachable: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}

// openBackend falls back to memory when the configured backend is not usable.
func openBackend(ctx context.Context, cfg config.Web, rdb *redis.Client) (prefs.Backend, func()) {
	noop := func() {}

	switch cfg.PrefsBackend {
	case config.PrefsRedis:
		if rdb != nil {
			return prefs.NewRedisBackend(rdb), noop
		}
		log.Printf("web: redis preferences unavailable, using memory")

	case config.PrefsPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				err = prefs.AutoMigrate(ctx, pool)
			}
			if err == nil {
				return prefs.NewPostgresBackend(pool), pool.Close
			}
			pool.Close()
		}
		log.Printf("web: postgres preferences unavailable, using memory: %v", err)
	}
	return prefs.NewMemoryBackend(), noop
}

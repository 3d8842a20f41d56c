// Package config reads the environment of the three binaries.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	PrefsMemory   = "memory"
	PrefsRedis    = "redis"
	PrefsPostgres = "postgres"
)

type API struct {
	Port            string
	YouTubeAPIKey   string
	YouTubeVideos   string
	RedisURL        string
	CacheTTL        time.Duration
	UpstreamTimeout time.Duration
	AllowedOrigin   string
	RateLimitRPS    int
}

type Web struct {
	Port          string
	APIURL        string
	RedisURL      string
	DatabaseURL   string
	PrefsBackend  string
	ProfileSecret string
	PayPalClient  string
	PayPalPlan    string
	GAMeasurement string
	Env           string
	FetchTimeout  time.Duration
	WSOrigin      string
	SecureCookies bool
	StaleAfter    time.Duration
	MaxSessions   int
}

func (w Web) Development() bool {
	return w.Env == "development"
}

// PayPalConfigured reports whether both payment ids are present.
func (w Web) PayPalConfigured() bool {
	return w.PayPalClient != "" && w.PayPalPlan != ""
}

type MockUpstream struct {
	Port   string
	APIKey string
}

func LoadAPI() (API, error) {
	cfg := API{
		Port:            getenv("PORT", "3007"),
		YouTubeAPIKey:   getenv("YOUTUBE_API_KEY", ""),
		YouTubeVideos:   getenv("YOUTUBE_VIDEOS_URL", "https://www.googleapis.com/youtube/v3/videos"),
		RedisURL:        getenv("REDIS_URL", ""),
		CacheTTL:        getenvDuration("CACHE_TTL", 300*time.Second),
		UpstreamTimeout: getenvDuration("UPSTREAM_TIMEOUT", 5*time.Second),
		AllowedOrigin:   getenv("CORS_ALLOWED_ORIGIN", "*"),
		RateLimitRPS:    getenvInt("RATE_LIMIT_RPS", 20),
	}
	if err := validPort(cfg.Port); err != nil {
		return API{}, err
	}
	return cfg, nil
}

func LoadWeb() (Web, error) {
	cfg := Web{
		Port:          getenv("PORT", "5175"),
		APIURL:        getenv("API_URL", "http://localhost:3007"),
		RedisURL:      getenv("REDIS_URL", ""),
		DatabaseURL:   getenv("DATABASE_URL", ""),
		PrefsBackend:  strings.ToLower(getenv("PREFS_BACKEND", PrefsMemory)),
		ProfileSecret: getenv("PROFILE_SECRET", ""),
		PayPalClient:  getenv("PAYPAL_CLIENT_ID", ""),
		PayPalPlan:    getenv("PAYPAL_PLAN_ID", ""),
		GAMeasurement: getenv("GA_MEASUREMENT_ID", ""),
		Env:           getenv("APP_ENV", "production"),
		FetchTimeout:  getenvDuration("FETCH_TIMEOUT", 10*time.Second),
		WSOrigin:      getenv("WS_ALLOWED_ORIGIN", ""),
		SecureCookies: getenvBool("COOKIE_SECURE", false),
		StaleAfter:    getenvDuration("STALE_AFTER", 300*time.Second),
		MaxSessions:   getenvInt("MAX_SESSIONS", 10000),
	}
	if err := validPort(cfg.Port); err != nil {
		return Web{}, err
	}
	switch cfg.PrefsBackend {
	case PrefsMemory, PrefsRedis, PrefsPostgres:
	default:
		return Web{}, fmt.Errorf("PREFS_BACKEND must be memory, redis or postgres, got %q", cfg.PrefsBackend)
	}
	if cfg.PrefsBackend == PrefsRedis && cfg.RedisURL == "" {
		return Web{}, fmt.Errorf("PREFS_BACKEND=redis requires REDIS_URL")
	}
	if cfg.PrefsBackend == PrefsPostgres && cfg.DatabaseURL == "" {
		return Web{}, fmt.Errorf("PREFS_BACKEND=postgres requires DATABASE_URL")
	}
	return cfg, nil
}

func LoadMockUpstream() (MockUpstream, error) {
	cfg := MockUpstream{
		Port:   getenv("PORT", "3008"),
		APIKey: getenv("MOCK_API_KEY", ""),
	}
	if err := validPort(cfg.Port); err != nil {
		return MockUpstream{}, err
	}
	return cfg, nil
}

func validPort(p string) error {
	n, err := strconv.Atoi(p)
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("invalid PORT %q", p)
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("config: invalid %s=%q, using %d", k, v, def)
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %t", k, v, def)
		return def
	}
	return b
}

// getenvDuration accepts Go durations ("5s") and plain seconds ("300").
func getenvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s=%q, using %s", k, v, def)
		return def
	}
	return d
}

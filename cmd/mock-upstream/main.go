package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/success20242/TrendingVideo/internal/config"
	"github.com/success20242/TrendingVideo/internal/mockupstream"
)

func main() {
	cfg, err := config.LoadMockUpstream()
	if err != nil {
		log.Fatalf("mock-upstream: %v", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Mount("/", mockupstream.SetupRouter(cfg.APIKey))

	log.Printf("mock-upstream on :%s (region %s always fails)", cfg.Port, mockupstream.FailingRegion)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("mock-upstream: %v", err)
	}
}

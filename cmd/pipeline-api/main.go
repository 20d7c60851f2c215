package main

import (
	"log"

	flag "github.com/spf13/pflag"

	_ "go-sft-pipeline/docs"
	"go-sft-pipeline/internal/api"
	"go-sft-pipeline/internal/config"
	"go-sft-pipeline/internal/store"
	"go-sft-pipeline/pkg/router"
)

// @title SFT Data Pipeline API
// @version 1.0
// @description API for normalizing raw conversational corpora into the canonical fine-tuning schema
// @host localhost:8080
// @BasePath /api/v1
func main() {
	configDir := flag.String("config", "configs", "directory of YAML configuration files")
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "pipeline.db", "run-tracking database path")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := store.InitDB(*dbPath); err != nil {
		log.Fatalf("failed to open run store: %v", err)
	}

	r := router.New()
	api.RegisterRoutes(r, cfg)
	r.Start(*addr)
}

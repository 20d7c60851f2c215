package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	"go-sft-pipeline/internal/api/handler"
	"go-sft-pipeline/internal/config"
	"go-sft-pipeline/pkg/router"
)

// RegisterRoutes wires the dataset-processing API onto the router.
func RegisterRoutes(r *router.Router, cfg *config.Config) {
	h := handler.New(cfg)

	// More specific routes first
	r.POST("/api/v1/datasets/*/runs", h.StartDatasetRun)
	r.GET("/api/v1/datasets/*/output", h.GetDatasetOutput)
	r.POST("/api/v1/aggregate/runs", h.StartAggregateRun)
	r.GET("/api/v1/runs/*/errors", h.GetRunErrors)
	r.GET("/api/v1/runs", h.ListRuns)
	// Generic run route last
	r.GET("/api/v1/runs/*", h.GetRun)

	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}

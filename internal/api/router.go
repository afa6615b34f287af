package api

import (
	"net/http"

	_ "github.com/DouzZ4/checkinc-ml-service/docs"
	"github.com/DouzZ4/checkinc-ml-service/internal/api/handler"
	"github.com/DouzZ4/checkinc-ml-service/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	predictionHandler *handler.PredictionHandler
	syncHandler       *handler.SyncHandler
	systemHandler     *handler.SystemHandler
}

func NewRouter(
	predictionHandler *handler.PredictionHandler,
	syncHandler *handler.SyncHandler,
	systemHandler *handler.SystemHandler,
) *Router {
	return &Router{
		predictionHandler: predictionHandler,
		syncHandler:       syncHandler,
		systemHandler:     systemHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Tracing)
	r.Use(middleware.Metrics)

	// Service endpoints
	r.Get("/health", rt.systemHandler.Health)
	r.Get("/stats", rt.systemHandler.Stats)
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/predictions", func(r chi.Router) {
			r.Post("/next-hours", rt.predictionHandler.PredictNextHours)
			r.Post("/risk-assessment", rt.predictionHandler.AssessRisk)
			r.Get("/recommendations/{userId}", rt.predictionHandler.GetRecommendations)
			r.Get("/history/{userId}", rt.predictionHandler.GetHistory)
		})

		r.Route("/sync", func(r chi.Router) {
			r.Post("/initial", rt.syncHandler.SyncInitial)
			r.Post("/reading", rt.syncHandler.SyncReading)
			r.Post("/batch", rt.syncHandler.SyncBatch)
			r.Get("/status", rt.syncHandler.GetStatus)
			r.Post("/train-model", rt.syncHandler.TrainModel)
		})
	})

	return r
}

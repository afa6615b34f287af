// CheckInc ML Service
//
// Machine learning microservice for glucose level prediction.
//
//	@title			CheckInc ML Service
//	@version		1.0
//	@description	Forecasts glucose levels, assesses glycemic risk and generates recommendations from synchronized readings.
//
//	@BasePath	/api/v1
//
//	@tag.name			predictions
//	@tag.description	Forecasting, risk assessment and recommendations
//
//	@tag.name			synchronization
//	@tag.description	Data sync from the Java application and model training
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/DouzZ4/checkinc-ml-service/internal/api"
	"github.com/DouzZ4/checkinc-ml-service/internal/api/handler"
	"github.com/DouzZ4/checkinc-ml-service/internal/config"
	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
	"github.com/DouzZ4/checkinc-ml-service/internal/ml"
	"github.com/DouzZ4/checkinc-ml-service/internal/repository"
	"github.com/DouzZ4/checkinc-ml-service/internal/seed"
	"github.com/DouzZ4/checkinc-ml-service/internal/service"
	"github.com/DouzZ4/checkinc-ml-service/internal/telemetry"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize tracing (no-op unless OTLP_ENDPOINT is set)
	ctx := context.Background()
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "checkinc-ml-service")
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer shutdownTracer(ctx)

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(&domain.GlucoseReading{}, &domain.Prediction{}, &domain.SyncLog{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Load (or initialize) the model artifact
	store := ml.NewStore(cfg.ModelPath)
	if artifact := store.Current(); artifact.Trained() {
		log.Printf("Model loaded (version %s)", artifact.Version)
	} else {
		log.Println("Warning: model not found - will need training")
	}

	// Initialize repositories
	readingRepo := repository.NewReadingRepository(db)
	predictionRepo := repository.NewPredictionRepository(db)
	syncLogRepo := repository.NewSyncLogRepository(db)

	// Initialize services
	trainingService := service.NewTrainingService(readingRepo, store, cfg.MinTrainingSamples)
	forecastService := service.NewForecastService(readingRepo, predictionRepo, store, cfg.MaxHorizonHours)
	riskService := service.NewRiskService(readingRepo)
	syncService := service.NewSyncService(readingRepo, syncLogRepo)

	// Initialize handlers
	predictionHandler := handler.NewPredictionHandler(forecastService, riskService, readingRepo, predictionRepo)
	syncHandler := handler.NewSyncHandler(syncService, trainingService)
	systemHandler := handler.NewSystemHandler(db, store, readingRepo, predictionRepo, syncLogRepo)

	// Setup router
	router := api.NewRouter(predictionHandler, syncHandler, systemHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trainingRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "training_runs_total",
		Help: "Total number of model training runs by outcome",
	}, []string{"status"})

	trainingR2Score = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "training_r2_score",
		Help: "In-sample R2 of the last successful training run",
	})

	predictionsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "predictions_generated_total",
		Help: "Total number of forecast points generated",
	})

	riskAssessmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "risk_assessments_total",
		Help: "Total number of risk assessments by resulting level",
	}, []string{"level"})
)

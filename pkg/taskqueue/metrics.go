package taskqueue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	enqueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskqueue_enqueued_total",
			Help: "Tasks pushed onto the queue",
		},
		[]string{"task"},
	)
	enqueueErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskqueue_enqueue_errors_total",
			Help: "Tasks that could not be pushed onto the queue",
		},
		[]string{"task"},
	)
	processedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskqueue_processed_total",
			Help: "Tasks executed by workers",
		},
		[]string{"task", "status"},
	)
	processingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskqueue_processing_duration_seconds",
			Help:    "Duration of task execution",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2, 5, 10},
		},
		[]string{"task"},
	)
)

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

type WorkerMetrics struct {
	registry *prometheus.Registry
	service  string

	processTotal     *prometheus.CounterVec
	processDuration  *prometheus.HistogramVec
	processInFlight  prometheus.Gauge
	queueLag         *prometheus.HistogramVec
	chunksProduced   *prometheus.HistogramVec
	splitSections    *prometheus.CounterVec
	droppedFragments *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexmx",
			Subsystem: "worker",
			Name:      "document_process_total",
			Help:      "Total processed documents by status.",
		},
		[]string{"service", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexmx",
			Subsystem: "worker",
			Name:      "document_process_duration_seconds",
			Help:      "Document processing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lexmx",
			Subsystem: "worker",
			Name:      "document_process_in_flight",
			Help:      "Number of in-flight document processing tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexmx",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between document creation and processing start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)
	chunksProduced := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexmx",
			Subsystem: "chunking",
			Name:      "chunks_per_document",
			Help:      "Distribution of chunks produced per document.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"service"},
	)
	splitSections := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexmx",
			Subsystem: "chunking",
			Name:      "split_sections_total",
			Help:      "Total sections split into multiple chunks.",
		},
		[]string{"service"},
	)
	droppedFragments := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexmx",
			Subsystem: "chunking",
			Name:      "dropped_fragments_total",
			Help:      "Total undersized trailing fragments dropped by flow chunking.",
		},
		[]string{"service"},
	)

	registry.MustRegister(
		processTotal,
		processDuration,
		processInFlight,
		queueLag,
		chunksProduced,
		splitSections,
		droppedFragments,
	)

	return &WorkerMetrics{
		registry:         registry,
		service:          service,
		processTotal:     processTotal,
		processDuration:  processDuration,
		processInFlight:  processInFlight,
		queueLag:         queueLag,
		chunksProduced:   chunksProduced,
		splitSections:    splitSections,
		droppedFragments: droppedFragments,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartDocument() {
	m.processInFlight.Inc()
}

func (m *WorkerMetrics) FinishDocument(duration time.Duration, err error) {
	m.processInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.processTotal.WithLabelValues(m.service, status).Inc()
	m.processDuration.WithLabelValues(m.service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(m.service).Observe(lag.Seconds())
}

// ObserveChunking implements the chunking observer port.
func (m *WorkerMetrics) ObserveChunking(stats domain.ChunkStats) {
	m.chunksProduced.WithLabelValues(m.service).Observe(float64(stats.Produced))
	if stats.SplitSections > 0 {
		m.splitSections.WithLabelValues(m.service).Add(float64(stats.SplitSections))
	}
	if stats.DroppedFragments > 0 {
		m.droppedFragments.WithLabelValues(m.service).Add(float64(stats.DroppedFragments))
	}
}

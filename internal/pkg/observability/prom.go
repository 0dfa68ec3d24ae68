package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "yardboard"
)

var (
	IngestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "ingest", "duration_seconds"),
		Help:    "Duration of yard workbook ingestion in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	})
	IngestRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "ingest", "rows_total"),
		Help: "Worksheet rows seen by ingestion, by outcome",
	}, []string{"outcome"})
	ScheduleExtractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "schedule", "extractions_total"),
		Help: "Schedule extraction runs, by whether any vessel was matched",
	}, []string{"matched"})
	SyncFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "sync", "failures_total"),
		Help: "Cloud sync operations that failed and were dropped",
	}, []string{"table", "op"})
)

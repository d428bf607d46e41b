package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	parserBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "parser",
		Name:      "blocks_total",
		Help:      "Number of processed blocks by status.",
	}, []string{"status"})

	parserBlockDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "parser",
		Name:      "block_duration_seconds",
		Help:      "Time spent processing one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	parserLastBlockHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "parser",
		Name:      "last_block_height",
		Help:      "Height of the last successfully processed block.",
	})

	parserOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "parser",
		Name:      "operations_total",
		Help:      "Number of dispatched ledger operations by kind and status.",
	}, []string{"kind", "status"})
)

// Parser records ingestion-loop observations.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (*Parser) ObserveBlock(err error, height uint64, started time.Time) {
	status := statusLabel(err)
	parserBlocksTotal.WithLabelValues(status).Inc()
	parserBlockDurationSeconds.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if err == nil {
		parserLastBlockHeight.Set(float64(height))
	}
}

func (*Parser) ObserveOperation(kind string, err error) {
	parserOperationsTotal.WithLabelValues(kind, statusLabel(err)).Inc()
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "requests_total",
		Help:      "Count of ledger RPC calls.",
	}, []string{"method", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "request_duration_seconds",
		Help:      "Duration of ledger RPC calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})
)

// RPCClient tracks metrics for JSON-RPC calls to ledger nodes.
type RPCClient struct{}

// NewRPCClient constructs a metrics collector for ledger RPC calls.
func NewRPCClient() *RPCClient {
	return &RPCClient{}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(method string, err error, started time.Time) {
	status := statusLabel(err)

	rpcRequestsTotal.WithLabelValues(method, status).Inc()
	rpcRequestDuration.WithLabelValues(method, status).Observe(time.Since(started).Seconds())
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// RPC dispatch
	RPCCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpc_calls_total",
			Help: "Total dispatched RPC calls",
		},
		[]string{"procedure", "kind", "code"}, // code: ok | error code
	)
	RPCLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rpc_call_latency_seconds",
			Help:    "Latency of RPC procedure handlers.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"procedure"},
	)

	// Audit worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(HTTPLatency)
	prometheus.MustRegister(RPCCalls)
	prometheus.MustRegister(RPCLatency)
	prometheus.MustRegister(WorkerQueueDepth)
}

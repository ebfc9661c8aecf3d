package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StoreQueryLatency records store query latency by backend, operation and collection.
var StoreQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "photoshare_store_query_latency_seconds",
	Help:    "Store query latency in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"backend", "operation", "collection"})

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(backend, operation, collection string) func() {
	start := time.Now()
	return func() {
		StoreQueryLatency.WithLabelValues(backend, operation, collection).Observe(time.Since(start).Seconds())
	}
}

var (
	// ActiveWebSockets tracks open live comment connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "photoshare_active_websockets",
		Help: "Number of open live comment websocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photoshare_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)

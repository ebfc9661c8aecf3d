package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photoshare_redis_errors_total",
		Help: "Total number of failed Redis commands",
	}, []string{"command"})

	// LoginAttempts counts login attempts by outcome (success, rejected, error).
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photoshare_login_attempts_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// Uploads counts stored uploads by kind (file, photo).
	Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photoshare_uploads_total",
		Help: "Total number of stored uploads",
	}, []string{"kind"})

	// RateLimited counts requests rejected by a rate limit policy.
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photoshare_rate_limited_total",
		Help: "Total number of requests rejected by rate limiting",
	}, []string{"policy"})
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the process-wide Prometheus middleware. fiberprometheus
// registers its collectors on the default registry, so it is built only once.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware records request metrics through p.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}

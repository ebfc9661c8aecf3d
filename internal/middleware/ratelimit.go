package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"photoshare/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Policy is the request budget for one rate-limited action.
type Policy struct {
	Name   string
	Max    int
	Window time.Duration
}

// Budgets for the write endpoints of the photo API.
var (
	LoginPolicy    = Policy{Name: "login", Max: 10, Window: 5 * time.Minute}
	RegisterPolicy = Policy{Name: "register", Max: 3, Window: 10 * time.Minute}
	CommentPolicy  = Policy{Name: "comment", Max: 30, Window: time.Minute}
	UploadPolicy   = Policy{Name: "upload", Max: 10, Window: time.Minute}
)

var errNoRedis = errors.New("rate limiting needs redis")

// Limiter counts actions per caller in fixed Redis windows keyed
// "rl:<policy>:<caller>".
type Limiter struct {
	rdb     *redis.Client
	enabled bool
}

// NewLimiter returns a limiter for env. Development and test never count.
func NewLimiter(rdb *redis.Client, env string) *Limiter {
	switch env {
	case "", "development", "test":
		return &Limiter{rdb: rdb}
	}
	return &Limiter{rdb: rdb, enabled: true}
}

// Allow records one action by caller and reports whether it is within p.
func (l *Limiter) Allow(ctx context.Context, p Policy, caller string) (bool, error) {
	if !l.enabled {
		return true, nil
	}
	if l.rdb == nil {
		return false, errNoRedis
	}

	key := "rl:" + p.Name + ":" + caller
	cnt, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		RedisErrors.WithLabelValues("incr").Inc()
		return false, err
	}
	if cnt == 1 {
		l.rdb.Expire(ctx, key, p.Window)
	}
	return cnt <= int64(p.Max), nil
}

// Handler enforces p per session user, or per remote IP for anonymous
// callers. A failing Redis lets requests through.
func (l *Limiter) Handler(p Policy) fiber.Handler {
	retryAfter := strconv.Itoa(int(p.Window.Seconds()))

	return func(c *fiber.Ctx) error {
		caller := "ip:" + c.IP()
		if uid, ok := c.Locals("userID").(string); ok && uid != "" {
			caller = "user:" + uid
		}

		allowed, err := l.Allow(c.UserContext(), p, caller)
		if err != nil {
			Logger.WarnContext(c.UserContext(), "rate limit unavailable",
				slog.String("policy", p.Name),
				slog.String("error", err.Error()),
			)
			return c.Next()
		}
		if !allowed {
			RateLimited.WithLabelValues(p.Name).Inc()
			c.Set(fiber.HeaderRetryAfter, retryAfter)
			return models.RespondWithText(c, fiber.StatusTooManyRequests, "Too many requests")
		}
		return c.Next()
	}
}

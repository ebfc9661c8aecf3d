package server

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"log"
	"path/filepath"
	"time"

	_ "photoshare/docs" // swagger docs
	"photoshare/internal/auth"
	"photoshare/internal/bootstrap"
	"photoshare/internal/cache"
	"photoshare/internal/config"
	"photoshare/internal/featureflags"
	"photoshare/internal/middleware"
	"photoshare/internal/models"
	"photoshare/internal/notifications"
	"photoshare/internal/observability"
	"photoshare/internal/repository"
	"photoshare/internal/service"
	"photoshare/internal/upload"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
)

// LoginPath is where anonymous browsers are sent from protected views.
const LoginPath = "/login-register"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	store          *repository.Store
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	sessions       *auth.Sessions
	hasher         auth.PasswordHasher
	hub            *notifications.Hub
	uploads        *upload.Store
	featureFlags   *featureflags.Manager
	limiter        *middleware.Limiter
	userService    *service.UserService
	photoService   *service.PhotoService
	schemaService  *service.SchemaService
}

// NewServer connects the configured store and Redis, then builds the server.
func NewServer(cfg *config.Config) (*Server, error) {
	store, redisClient, err := bootstrap.InitRuntime(context.Background(), cfg, bootstrap.Options{
		SeedFixtures: cfg.SeedFixtures,
	})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, store, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// A nil redisClient keeps sessions in memory and live comments in-process.
func NewServerWithDeps(cfg *config.Config, store *repository.Store, redisClient *redis.Client) (*Server, error) {
	observability.Logger = middleware.Logger
	if redisClient != nil {
		cache.SetClient(redisClient)
	}

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHashing)
	if err != nil {
		return nil, err
	}

	uploadDir := cfg.UploadDir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	maxMB := cfg.UploadMaxMB
	if maxMB <= 0 {
		maxMB = 10
	}
	uploads, err := upload.NewStore(uploadDir, maxMB)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	var sessionStorage fiber.Storage
	if redisClient != nil {
		sessionStorage = cache.NewSessionStorage(redisClient)
	}
	tokens := auth.NewTokens(cfg.SessionSecret, ttl)

	ctx, cancel := context.WithCancel(context.Background())
	server := &Server{
		config:         cfg,
		store:          store,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics(observability.ServiceName),
		shutdownCtx:    ctx,
		shutdownFn:     cancel,
		sessions:       auth.NewSessions(sessionStorage, ttl, cfg.IsProduction(), tokens),
		hasher:         hasher,
		hub:            notifications.NewHub(redisClient),
		uploads:        uploads,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		limiter:        middleware.NewLimiter(redisClient, cfg.Env),
		userService:    service.NewUserService(store.Users, store.Photos, hasher),
		photoService:   service.NewPhotoService(store.Photos, store.Users),
		schemaService:  service.NewSchemaService(store),
	}

	if err := server.hub.Start(ctx); err != nil {
		middleware.Logger.Warn("live comment fan-out unavailable, delivering in-process only", "error", err)
	}

	return server, nil
}

// App builds the Fiber application on first use.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}
	maxMB := s.config.UploadMaxMB
	if maxMB <= 0 {
		maxMB = 10
	}
	app := fiber.New(fiber.Config{
		AppName: "PhotoShare API",
		// Room for the multipart envelope around a maximum-size upload.
		BodyLimit:    (maxMB + 1) * 1024 * 1024,
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// cookieKey derives the 32-byte encryptcookie key from the session secret.
func cookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Tracing first so the trace id is in locals for the context middleware.
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	// Session cookies are opaque ids; encrypting them keeps them unforgeable
	// across instances sharing SESSION_SECRET.
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: cookieKey(s.config.SessionSecret),
	}))

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://127.0.0.1:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: origins != "*",
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || s.config.Env == "test"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return models.RespondWithText(c, fiber.StatusTooManyRequests, "Too many requests")
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "PhotoShare Metrics Dashboard",
	}))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	admin := app.Group("/admin")
	admin.Post("/login", s.limiter.Handler(middleware.LoginPolicy), s.Login)
	admin.Post("/token", s.limiter.Handler(middleware.LoginPolicy), s.IssueToken)
	admin.Post("/logout", s.Logout)
	admin.Get("/status", s.Status)
	admin.Get("/feature-flags", s.sessions.SessionRequired(), s.GetFeatureFlags)

	// Registration is public
	app.Post("/user", s.limiter.Handler(middleware.RegisterPolicy), s.Register)

	// Schema info
	app.Get("/test", s.SchemaTest)
	app.Get("/test/:p1", s.SchemaTest)

	// Protected API routes. The guard is attached per route: a group without a
	// prefix would install it in front of every later route.
	guard := s.sessions.SessionRequired()
	app.Get("/user/list", guard, s.ListUsers)
	app.Get("/user/:id", guard, s.GetUser)
	app.Get("/photosOfUser/:id", guard, s.PhotosOfUser)
	app.Get("/commentsOfUser/:id", guard, s.CommentsOfUser)
	app.Get("/photoDetail/:photoId", guard, s.PhotoDetail)
	app.Post("/commentsOfPhoto/:photoId", guard,
		s.limiter.Handler(middleware.CommentPolicy), s.AddComment)
	app.Post("/photos/new", guard,
		s.limiter.Handler(middleware.UploadPolicy), s.NewPhoto)
	app.Post("/upload", guard,
		s.limiter.Handler(middleware.UploadPolicy), s.Upload)

	// Live comments over websocket
	app.Get("/ws/photos/:photoId", guard, s.LiveCommentsUpgrade, s.LiveCommentsHandler())

	// Uploaded images
	app.Static("/images", s.uploads.Dir())

	// Browser views: anonymous visitors go to the login page
	views := []string{"/", "/users", "/users/:userId", "/photos/:userId"}
	for _, path := range views {
		app.Get(path, s.sessions.ViewGuard(LoginPath), s.serveIndex)
	}
	app.Get(LoginPath, s.serveIndex)
	if s.config.StaticDir != "" {
		app.Static("/", s.config.StaticDir)
	}

	app.Use(notFound)
}

// serveIndex returns the single-page UI entry point when STATIC_DIR is set.
func (s *Server) serveIndex(c *fiber.Ctx) error {
	if s.config.StaticDir == "" {
		return notFound(c)
	}
	return c.SendFile(filepath.Join(s.config.StaticDir, "index.html"))
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports the store and Redis. Redis is optional: without it
// the API degrades to in-memory sessions, so it never fails readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	storeStatus := "healthy"
	if err := s.store.Ping(ctx); err != nil {
		storeStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if storeStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Server is running",
		"status":  overallStatus,
		"checks": fiber.Map{
			"store":   storeStatus,
			"backend": s.store.Backend,
			"redis":   redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := s.App()
	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Cancel the server-scoped context to stop the pub/sub subscriber
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	// Shutdown the HTTP/WS server
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Close WebSocket connections gracefully
	if err := s.hub.Shutdown(ctx); err != nil {
		log.Printf("error shutting down live comments hub: %v", err)
	}

	if err := s.store.Close(ctx); err != nil {
		log.Printf("error closing %s store: %v", s.store.Backend, err)
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}


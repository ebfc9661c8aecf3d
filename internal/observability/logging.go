package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger is the logger repositories report through. The server replaces it
// with the request-aware logger at startup.
var Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// RepoLogger provides structured logging for repository operations.
type RepoLogger struct {
	backend    string
	collection string
}

// NewRepoLogger creates a new RepoLogger for the given backend and collection.
func NewRepoLogger(backend, collection string) *RepoLogger {
	return &RepoLogger{backend: backend, collection: collection}
}

// LogError logs a repository error.
func (l *RepoLogger) LogError(ctx context.Context, err error, operation string) {
	Logger.ErrorContext(ctx, "repository error",
		slog.String("backend", l.backend),
		slog.String("collection", l.collection),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// LogWrite logs a repository write.
func (l *RepoLogger) LogWrite(ctx context.Context, operation string, fields map[string]any) {
	attrs := []any{
		slog.String("backend", l.backend),
		slog.String("collection", l.collection),
		slog.String("operation", operation),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	Logger.InfoContext(ctx, "repository write", attrs...)
}

// Package repository implements the data access layer for the application.
// Every repository has a GORM implementation (postgres, sqlite) and a MongoDB
// implementation; both speak 24-hex object ids.
package repository

import (
	"context"
	"strings"

	"photoshare/internal/models"
)

// Backend labels used for metrics and logs.
const (
	BackendGorm  = "gorm"
	BackendMongo = "mongo"
)

const loginNameTaken = "login_name already exists"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// GetByID returns a NOT_FOUND AppError when no user has id.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByLoginName returns nil, nil when no user has loginName.
	GetByLoginName(ctx context.Context, loginName string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}

// PhotoRepository defines persistence operations for photos and their comments.
type PhotoRepository interface {
	// GetByID returns the photo with its comments in posting order.
	GetByID(ctx context.Context, id string) (*models.Photo, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Photo, error)
	CountByOwner(ctx context.Context, userID string) (int64, error)
	// CountCommentsByOwner counts the comments on every photo userID owns.
	CountCommentsByOwner(ctx context.Context, userID string) (int64, error)
	Create(ctx context.Context, photo *models.Photo) error
	AddComment(ctx context.Context, photoID string, comment *models.Comment) error
	Count(ctx context.Context) (int64, error)
}

// SchemaInfoRepository stores the dataset version marker.
type SchemaInfoRepository interface {
	Get(ctx context.Context) (*models.SchemaInfo, error)
	Save(ctx context.Context, info *models.SchemaInfo) error
	Count(ctx context.Context) (int64, error)
}

// Store bundles the repositories of one backend with its lifecycle hooks.
type Store struct {
	Backend    string
	Users      UserRepository
	Photos     PhotoRepository
	SchemaInfo SchemaInfoRepository

	ping  func(ctx context.Context) error
	clear func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Clear removes every user, photo and schema info record.
func (s *Store) Clear(ctx context.Context) error {
	if s.clear == nil {
		return nil
	}
	return s.clear(ctx)
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite reports "UNIQUE constraint failed".
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

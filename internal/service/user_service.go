// Package service holds the use cases behind the HTTP handlers: user listing
// with aggregated counts, photo views with resolved comment authors,
// registration and login.
package service

import (
	"context"
	"strings"

	"photoshare/internal/auth"
	"photoshare/internal/models"
	"photoshare/internal/observability"
	"photoshare/internal/repository"

	"golang.org/x/sync/errgroup"
)

// maxFanOut bounds the store queries one request runs in parallel.
const maxFanOut = 16

type UserService struct {
	users  repository.UserRepository
	photos repository.PhotoRepository
	hasher auth.PasswordHasher
}

type RegisterInput struct {
	LoginName   string
	Password    string
	FirstName   string
	LastName    string
	Location    string
	Description string
	Occupation  string
}

func NewUserService(users repository.UserRepository, photos repository.PhotoRepository, hasher auth.PasswordHasher) *UserService {
	return &UserService{users: users, photos: photos, hasher: hasher}
}

// ListUsers returns every user with the number of photos they own and the
// number of comments across those photos. All counts run concurrently and the
// first failure fails the whole list.
func (s *UserService) ListUsers(ctx context.Context) (items []models.UserListItem, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "ListUsers")
	defer func() { observability.EndSpan(span, err) }()

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	items = make([]models.UserListItem, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFanOut)

	for i := range users {
		u := users[i]
		items[i] = models.UserListItem{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}

		g.Go(func() error {
			n, err := s.photos.CountByOwner(gctx, u.ID)
			if err != nil {
				return err
			}
			items[i].PhotoCount = n
			return nil
		})
		g.Go(func() error {
			n, err := s.photos.CountCommentsByOwner(gctx, u.ID)
			if err != nil {
				return err
			}
			items[i].CommentCount = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if !models.IsValidID(id) {
		return nil, models.NewValidationError("Invalid User ID")
	}
	return s.users.GetByID(ctx, id)
}

// Register creates an account. It does not log the new user in.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (user *models.User, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "Register")
	defer func() { observability.EndSpan(span, err) }()

	in.LoginName = strings.TrimSpace(in.LoginName)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if in.LoginName == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return nil, models.NewValidationError("login_name, password, first_name and last_name are required")
	}

	existing, err := s.users.GetByLoginName(ctx, in.LoginName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("login_name already exists")
	}

	stored, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user = &models.User{
		LoginName:   in.LoginName,
		Password:    stored,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
		Occupation:  strings.TrimSpace(in.Occupation),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user whose login name and password both match, or
// an UNAUTHORIZED error that does not say which one was wrong.
func (s *UserService) Authenticate(ctx context.Context, loginName, password string) (user *models.User, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "Authenticate")
	defer func() { observability.EndSpan(span, err) }()

	if loginName == "" || password == "" {
		return nil, models.NewValidationError("login_name and password are required")
	}

	user, err = s.users.GetByLoginName(ctx, loginName)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Compare(user.Password, password) {
		return nil, models.NewUnauthorizedError("Not found")
	}
	return user, nil
}

package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"photoshare/internal/models"
	"photoshare/internal/observability"
	"photoshare/internal/repository"

	"golang.org/x/sync/errgroup"
)

type PhotoService struct {
	photos repository.PhotoRepository
	users  repository.UserRepository
}

type AddCommentInput struct {
	PhotoID string
	UserID  string
	Text    string
}

const maxCommentLen = 10000

func NewPhotoService(photos repository.PhotoRepository, users repository.UserRepository) *PhotoService {
	return &PhotoService{photos: photos, users: users}
}

// PhotosOfUser returns the user's photos with every comment author resolved.
func (s *PhotoService) PhotosOfUser(ctx context.Context, userID string) (views []models.PhotoView, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PhotoService", "PhotosOfUser")
	defer func() { observability.EndSpan(span, err) }()

	if !models.IsValidID(userID) {
		return nil, models.NewValidationError("Invalid User ID")
	}

	photos, err := s.photos.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		return nil, models.NewNotFoundError("No photos found for this user")
	}

	authors, err := s.resolveAuthors(ctx, photos...)
	if err != nil {
		return nil, err
	}

	views = make([]models.PhotoView, 0, len(photos))
	for i := range photos {
		views = append(views, photoView(&photos[i], authors))
	}
	return views, nil
}

// PhotoDetail returns one photo with its comment authors resolved.
func (s *PhotoService) PhotoDetail(ctx context.Context, photoID string) (view *models.PhotoView, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PhotoService", "PhotoDetail")
	defer func() { observability.EndSpan(span, err) }()

	if !models.IsValidID(photoID) {
		return nil, models.NewValidationError("Invalid Photo ID")
	}

	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}

	authors, err := s.resolveAuthors(ctx, *photo)
	if err != nil {
		return nil, err
	}
	v := photoView(photo, authors)
	return &v, nil
}

// CommentsOfUser flattens the comments left on the user's photos.
func (s *PhotoService) CommentsOfUser(ctx context.Context, userID string) (comments []models.UserComment, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PhotoService", "CommentsOfUser")
	defer func() { observability.EndSpan(span, err) }()

	if !models.IsValidID(userID) {
		return nil, models.NewValidationError("Invalid User ID")
	}

	photos, err := s.photos.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	authors, err := s.resolveAuthors(ctx, photos...)
	if err != nil {
		return nil, err
	}

	for _, p := range photos {
		for _, c := range p.Comments {
			comments = append(comments, models.UserComment{
				PhotoID: p.ID,
				Text:    c.Comment,
				Date:    c.DateTime,
				User:    authors[c.UserID],
			})
		}
	}
	if len(comments) == 0 {
		return nil, models.NewNotFoundError("No comments found for this user")
	}
	return comments, nil
}

// AddComment appends a comment by in.UserID. It returns the updated photo and
// the comment it created, which need not be the photo's last one when other
// comments land concurrently.
func (s *PhotoService) AddComment(ctx context.Context, in AddCommentInput) (view *models.PhotoView, created *models.CommentView, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PhotoService", "AddComment")
	defer func() { observability.EndSpan(span, err) }()

	if !models.IsValidID(in.PhotoID) {
		return nil, nil, models.NewValidationError("Invalid Photo ID")
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, nil, models.NewValidationError("Comment cannot be empty")
	}
	if len(text) > maxCommentLen {
		return nil, nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Comment:  text,
		DateTime: time.Now().UTC(),
		UserID:   in.UserID,
	}
	if err := s.photos.AddComment(ctx, in.PhotoID, comment); err != nil {
		return nil, nil, err
	}
	view, err = s.PhotoDetail(ctx, in.PhotoID)
	if err != nil {
		return nil, nil, err
	}

	for i := range view.Comments {
		if view.Comments[i].ID == comment.ID {
			cv := view.Comments[i]
			return view, &cv, nil
		}
	}
	// The photo was re-read without the new comment; describe it on its own.
	cv := models.CommentView{ID: comment.ID, Comment: comment.Comment, DateTime: comment.DateTime}
	authors, err := s.resolveAuthors(ctx, models.Photo{Comments: []models.Comment{*comment}})
	if err != nil {
		return nil, nil, err
	}
	if author, ok := authors[comment.UserID]; ok {
		cv.User = author
	} else {
		cv.UserID = comment.UserID
	}
	return view, &cv, nil
}

// CreatePhoto records an uploaded file as a photo owned by userID.
func (s *PhotoService) CreatePhoto(ctx context.Context, userID, fileName string) (view *models.PhotoView, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PhotoService", "CreatePhoto")
	defer func() { observability.EndSpan(span, err) }()

	if !models.IsValidID(userID) {
		return nil, models.NewValidationError("Invalid User ID")
	}

	photo := &models.Photo{
		FileName: fileName,
		DateTime: time.Now().UTC(),
		UserID:   userID,
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, err
	}
	v := photoView(photo, nil)
	return &v, nil
}

// resolveAuthors looks up every distinct comment author concurrently. Authors
// that no longer exist are left out of the map; any other failure aborts.
func (s *PhotoService) resolveAuthors(ctx context.Context, photos ...models.Photo) (map[string]*models.UserSummary, error) {
	seen := make(map[string]struct{})
	for _, p := range photos {
		for _, c := range p.Comments {
			seen[c.UserID] = struct{}{}
		}
	}

	var mu sync.Mutex
	authors := make(map[string]*models.UserSummary, len(seen))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFanOut)
	for id := range seen {
		if !models.IsValidID(id) {
			continue
		}
		g.Go(func() error {
			u, err := s.users.GetByID(gctx, id)
			if err != nil {
				if models.IsNotFound(err) {
					return nil
				}
				return err
			}
			mu.Lock()
			authors[id] = u.Summary()
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return authors, nil
}

func photoView(p *models.Photo, authors map[string]*models.UserSummary) models.PhotoView {
	view := models.PhotoView{
		ID:       p.ID,
		FileName: p.FileName,
		DateTime: p.DateTime,
		UserID:   p.UserID,
		Comments: make([]models.CommentView, 0, len(p.Comments)),
	}
	for _, c := range p.Comments {
		cv := models.CommentView{ID: c.ID, Comment: c.Comment, DateTime: c.DateTime}
		if author, ok := authors[c.UserID]; ok {
			cv.User = author
		} else {
			cv.UserID = c.UserID
		}
		view.Comments = append(view.Comments, cv)
	}
	return view
}

package service

import (
	"context"

	"photoshare/internal/models"
	"photoshare/internal/repository"

	"golang.org/x/sync/errgroup"
)

// SchemaService answers the diagnostic /test endpoints.
type SchemaService struct {
	store *repository.Store
}

func NewSchemaService(store *repository.Store) *SchemaService {
	return &SchemaService{store: store}
}

func (s *SchemaService) Info(ctx context.Context) (*models.SchemaInfo, error) {
	return s.store.SchemaInfo.Get(ctx)
}

// Counts returns the size of every collection, counted concurrently.
func (s *SchemaService) Counts(ctx context.Context) (*models.CollectionCounts, error) {
	var counts models.CollectionCounts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		counts.User, err = s.store.Users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Photo, err = s.store.Photos.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.SchemaInfo, err = s.store.SchemaInfo.Count(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &counts, nil
}

package favourites

import (
	"context"

	"github.com/curalink/curalink/backend/api/internal/models"
	"github.com/curalink/curalink/backend/api/pkg/metrics"
)

// Service is the favourite ledger. All operations take the already-resolved
// user id; identity resolution happens before the ledger is touched.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Add records a favourite. A second add of the same triple is not an error:
// it reports created=false and leaves the single existing row in place.
func (s *Service) Add(ctx context.Context, userID int64, contentType string, contentID int64) (bool, error) {
	f := &models.Favourite{UserID: userID, ContentType: contentType, ContentID: contentID}
	created, err := s.repo.Insert(ctx, f)
	if err != nil {
		return false, err
	}
	if created {
		metrics.FavouriteOps.WithLabelValues("added").Inc()
	} else {
		metrics.FavouriteOps.WithLabelValues("duplicate").Inc()
	}
	return created, nil
}

// Remove deletes a favourite; ErrNotFound when no matching row exists.
func (s *Service) Remove(ctx context.Context, userID int64, contentType string, contentID int64) error {
	deleted, err := s.repo.Delete(ctx, userID, contentType, contentID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	metrics.FavouriteOps.WithLabelValues("removed").Inc()
	return nil
}

// StatusOf reports whether the triple is favourited. Never fails on absence.
func (s *Service) StatusOf(ctx context.Context, userID int64, contentType string, contentID int64) (bool, error) {
	return s.repo.Exists(ctx, userID, contentType, contentID)
}

// ListForUser returns all of the user's favourites.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]*models.Favourite, error) {
	return s.repo.ListByUser(ctx, userID)
}

package users

import (
	"context"
	"time"

	"github.com/curalink/curalink/backend/api/internal/models"
)

// Service encapsulates account business logic on top of the repository.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) Repository() Repository { return s.repo }

// Register creates a new account. A registration against an existing email
// fails with ErrEmailTaken; the repository's unique index covers the race
// between the pre-check and the insert.
func (s *Service) Register(ctx context.Context, email, password, name string, role int) (*models.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:          email,
		HashedPassword: hash,
		Name:           name,
		Role:           role,
		CreatedAt:      time.Now().UTC(),
	}
	return s.repo.Create(ctx, u)
}

// Authenticate verifies a login. Unknown email and wrong password both fail
// with ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !CheckPassword(password, u.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.List(ctx)
}

// MarkOnboarded flips the user's onboarding flag after a profile is created.
func (s *Service) MarkOnboarded(ctx context.Context, id int64) error {
	return s.repo.SetHasOnboarded(ctx, id, true)
}

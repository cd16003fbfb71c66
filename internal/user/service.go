package user

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/cost-manager/internal"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID int64) (*User, error)
	List(ctx context.Context) ([]User, error)
}

// ExpenseTotaler supplies the all-time expense total shown on a user.
type ExpenseTotaler interface {
	SumByUser(ctx context.Context, userID int64) (float64, error)
}

type Service struct {
	repo    Repository
	totaler ExpenseTotaler
	logger  *slog.Logger
}

func NewService(repo Repository, totaler ExpenseTotaler, logger *slog.Logger) *Service {
	return &Service{repo: repo, totaler: totaler, logger: logger}
}

func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByID(ctx, dto.ID); err == nil && existing != nil {
		return nil, internal.NewValidationError("user already exists")
	}

	u := &User{
		ID:        dto.ID,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Birthday:  dto.Birthday,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("failed to create user", "error", err, "user_id", dto.ID)
		return nil, internal.NewInternalError("failed to store user", err)
	}

	s.logger.Info("user created", "user_id", u.ID)
	return u, nil
}

// GetByID returns the user with their all-time expense total.
func (s *Service) GetByID(ctx context.Context, userID int64) (*UserWithTotal, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}

	total, err := s.totaler.SumByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to total user expenses", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to compute user total", err)
	}

	return &UserWithTotal{User: *u, Total: total}, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

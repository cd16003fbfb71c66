package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/cost-manager/internal"
)

// Repository defines the data access methods for expenses
type Repository interface {
	Create(ctx context.Context, exp *Expense) error
	FindForPeriod(ctx context.Context, userID int64, from, to time.Time) ([]Expense, error)
	SumByUser(ctx context.Context, userID int64) (float64, error)
}

// UserVerifier checks a user id against the users service.
type UserVerifier interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// Service handles expense business logic
type Service struct {
	repo     Repository
	verifier UserVerifier
	now      func() time.Time
	logger   *slog.Logger
}

func NewService(repo Repository, verifier UserVerifier, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		verifier: verifier,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock overrides the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// AddExpense validates and stores a new cost record.
func (s *Service) AddExpense(ctx context.Context, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	createdAt, appErr := dto.ParseCreatedAt(s.now())
	if appErr != nil {
		return nil, appErr
	}

	if err := s.verifyUser(ctx, dto.UserID); err != nil {
		return nil, err
	}

	exp := &Expense{
		UserID:      dto.UserID,
		Sum:         dto.Sum,
		Category:    dto.Category,
		Description: dto.Description,
		CreatedAt:   createdAt,
	}

	if err := s.repo.Create(ctx, exp); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", dto.UserID)
		return nil, internal.NewInternalError("failed to store expense", err)
	}

	s.logger.Info("expense created",
		"expense_id", exp.ID,
		"user_id", exp.UserID,
		"category", exp.Category,
		"sum", exp.Sum)

	return exp, nil
}

// Total returns the all-time sum of a user's expenses, 0 when none exist.
func (s *Service) Total(ctx context.Context, userID int64) (float64, error) {
	if userID < 1 {
		return 0, internal.NewValidationError("userid must be a positive integer")
	}

	if err := s.verifyUser(ctx, userID); err != nil {
		return 0, err
	}

	total, err := s.repo.SumByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to sum expenses", "error", err, "user_id", userID)
		return 0, internal.NewInternalError("failed to compute total", err)
	}
	return total, nil
}

func (s *Service) verifyUser(ctx context.Context, userID int64) error {
	exists, err := s.verifier.Exists(ctx, userID)
	if err != nil {
		s.logger.Error("user verification failed", "error", err, "user_id", userID)
		return internal.ErrUserVerification.WithCause(err)
	}
	if !exists {
		return internal.ErrUserNotFound
	}
	return nil
}

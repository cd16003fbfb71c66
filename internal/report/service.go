package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/cost-manager/internal"
	"github.com/frahmantamala/cost-manager/internal/expense"
)

// ExpenseReader is the slice of the expense store the report path needs.
type ExpenseReader interface {
	FindForPeriod(ctx context.Context, userID int64, from, to time.Time) ([]expense.Expense, error)
}

// Cache stores computed reports for closed months.
type Cache interface {
	Lookup(ctx context.Context, userID int64, year, month int) (CategorizedReport, bool, error)
	Store(ctx context.Context, userID int64, year, month int, rep CategorizedReport) error
}

// UserVerifier checks a user id against the users service.
type UserVerifier interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// Envelope is the /api/report response body.
type Envelope struct {
	UserID int64             `json:"userid"`
	Year   int               `json:"year"`
	Month  int               `json:"month"`
	Costs  CategorizedReport `json:"costs"`
}

// Service orchestrates monthly report requests: validate, verify the user,
// classify the period, then serve from cache or recompute.
type Service struct {
	expenses ExpenseReader
	cache    Cache
	verifier UserVerifier
	now      func() time.Time
	logger   *slog.Logger
}

func NewService(expenses ExpenseReader, cache Cache, verifier UserVerifier, logger *slog.Logger) *Service {
	return &Service{
		expenses: expenses,
		cache:    cache,
		verifier: verifier,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock overrides the service clock, used by tests to pin "now".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// MonthlyReport returns the categorized report for one (user, year, month).
// Closed months are served from the cache when present and written to it
// after a first computation; the current and future months are always
// recomputed and never cached.
func (s *Service) MonthlyReport(ctx context.Context, userID int64, year, month int) (*Envelope, error) {
	if userID < 1 {
		return nil, internal.NewValidationError("userid must be a positive integer")
	}
	if month < 1 || month > 12 {
		return nil, internal.NewValidationError("month must be between 1 and 12")
	}

	exists, err := s.verifier.Exists(ctx, userID)
	if err != nil {
		s.logger.Error("user verification failed", "error", err, "user_id", userID)
		return nil, internal.ErrUserVerification.WithCause(err)
	}
	if !exists {
		return nil, internal.ErrUserNotFound
	}

	// Classified once per request from the service clock. A request that
	// straddles the month rollover may compute a just-closed month without
	// caching it; the next request caches it.
	past := s.isPast(year, month)

	if past {
		cached, ok, err := s.cache.Lookup(ctx, userID, year, month)
		if err != nil {
			s.logger.Error("report cache lookup failed", "error", err,
				"user_id", userID, "year", year, "month", month)
			return nil, internal.NewInternalError("failed to read report cache", err)
		}
		if ok {
			s.logger.Debug("report cache hit", "user_id", userID, "year", year, "month", month)
			return &Envelope{UserID: userID, Year: year, Month: month, Costs: cached}, nil
		}
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	records, err := s.expenses.FindForPeriod(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("failed to load expenses for report", "error", err,
			"user_id", userID, "year", year, "month", month)
		return nil, internal.NewInternalError("failed to load expenses", err)
	}

	costs := Build(records)

	if past {
		// Concurrent first requests may race here; Store is an idempotent
		// upsert and the builder is deterministic, so last write wins with
		// identical content. A failed write is not fatal: the report in
		// hand is correct, the next request just recomputes.
		if err := s.cache.Store(ctx, userID, year, month, costs); err != nil {
			s.logger.Error("report cache write failed", "error", err,
				"user_id", userID, "year", year, "month", month)
		} else {
			s.logger.Info("report cached", "user_id", userID, "year", year, "month", month)
		}
	}

	return &Envelope{UserID: userID, Year: year, Month: month, Costs: costs}, nil
}

// isPast reports whether (year, month) is strictly before the current
// month of the service wall clock.
func (s *Service) isPast(year, month int) bool {
	now := s.now()
	return year < now.Year() || (year == now.Year() && month < int(now.Month()))
}

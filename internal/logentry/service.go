package logentry

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/cost-manager/internal"
	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, entry *LogEntry) error
	List(ctx context.Context) ([]LogEntry, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Record(ctx context.Context, dto CreateLogDTO) (*LogEntry, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	entry := &LogEntry{
		ID:        uuid.NewString(),
		Service:   dto.Service,
		Endpoint:  dto.Endpoint,
		Method:    dto.Method,
		Message:   dto.Message,
		Level:     dto.Level,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error("failed to insert log entry", "error", err, "service", dto.Service)
		return nil, internal.NewInternalError("failed to store log entry", err)
	}
	return entry, nil
}

// List returns all stored entries, oldest first.
func (s *Service) List(ctx context.Context) ([]LogEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list log entries", "error", err)
		return nil, internal.NewInternalError("failed to list log entries", err)
	}
	if entries == nil {
		entries = []LogEntry{}
	}
	return entries, nil
}

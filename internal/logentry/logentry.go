package logentry

import (
	"strings"
	"time"

	"github.com/frahmantamala/cost-manager/internal"
)

// LogEntry is one shipped log line from another service.
type LogEntry struct {
	ID        string    `json:"id" db:"id"`
	Service   string    `json:"service" db:"service"`
	Endpoint  string    `json:"endpoint" db:"endpoint"`
	Method    string    `json:"method" db:"method"`
	Message   string    `json:"message" db:"message"`
	Level     string    `json:"level" db:"level"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateLogDTO is the POST /api/logs payload.
type CreateLogDTO struct {
	Service  string `json:"service"`
	Endpoint string `json:"endpoint"`
	Method   string `json:"method"`
	Message  string `json:"message"`
	Level    string `json:"level,omitempty"`
}

func (dto *CreateLogDTO) Validate() *internal.AppError {
	if strings.TrimSpace(dto.Service) == "" {
		return internal.NewValidationError("service is required")
	}
	if strings.TrimSpace(dto.Message) == "" {
		return internal.NewValidationError("message is required")
	}
	if dto.Level == "" {
		dto.Level = "info"
	}
	return nil
}

package events

import (
	"time"

	"github.com/google/uuid"
)

const TypeRequestAudit = "request.audit"

// RequestAudit describes the outcome of a handled HTTP request. It is
// published after the response is decided and shipped to the logs service
// by a subscriber.
type RequestAudit struct {
	ID        string    `json:"id"`
	Service   string    `json:"service"`
	Endpoint  string    `json:"endpoint"`
	Method    string    `json:"method"`
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRequestAudit(service, endpoint, method, message, level string) RequestAudit {
	return RequestAudit{
		ID:        uuid.NewString(),
		Service:   service,
		Endpoint:  endpoint,
		Method:    method,
		Message:   message,
		Level:     level,
		Timestamp: time.Now(),
	}
}

func (e RequestAudit) EventType() string     { return TypeRequestAudit }
func (e RequestAudit) EventID() string       { return e.ID }
func (e RequestAudit) OccurredAt() time.Time { return e.Timestamp }
func (e RequestAudit) Payload() interface{}  { return e }

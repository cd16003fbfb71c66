package logclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/frahmantamala/cost-manager/internal/core/events"
)

// Shipper forwards request-audit events to the logs service. It runs as an
// event bus subscriber, so every error it returns is logged and discarded
// by the bus; shipping can never block or fail a request.
type Shipper struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewShipper(baseURL string, timeout time.Duration, logger *slog.Logger) *Shipper {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Shipper{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Register subscribes the shipper to audit events on the bus.
func (s *Shipper) Register(bus *events.EventBus) {
	bus.Subscribe(events.TypeRequestAudit, s.HandleAudit)
}

func (s *Shipper) HandleAudit(ctx context.Context, event events.Event) error {
	audit, ok := event.Payload().(events.RequestAudit)
	if !ok {
		return fmt.Errorf("unexpected payload for %s event", event.EventType())
	}

	body, err := json.Marshal(map[string]string{
		"service":  audit.Service,
		"endpoint": audit.Endpoint,
		"method":   audit.Method,
		"message":  audit.Message,
		"level":    audit.Level,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/logs", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("logs service returned status %d", resp.StatusCode)
	}

	s.logger.Debug("audit log shipped", "event_id", audit.ID, "service", audit.Service)
	return nil
}

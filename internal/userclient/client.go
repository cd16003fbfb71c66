package userclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client checks user existence against the users service over HTTP. It is
// the only remote call whose failure affects a costs-service response.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Exists reports whether the user id is known to the users service. A 404
// and an empty 200 body both mean "not found" (the upstream has been seen
// returning the latter). Any other failure is a verification error, never
// conflated with "not found".
func (c *Client) Exists(ctx context.Context, userID int64) (bool, error) {
	url := fmt.Sprintf("%s/api/users/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("users service request failed", "error", err, "user_id", userID)
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return false, err
		}
		trimmed := strings.TrimSpace(string(body))
		if trimmed == "" || trimmed == "null" {
			c.logger.Warn("users service returned 200 with empty body", "user_id", userID)
			return false, nil
		}
		return true, nil
	default:
		return false, fmt.Errorf("users service returned status %d", resp.StatusCode)
	}
}

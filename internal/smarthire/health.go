package smarthire

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

const (
	healthPath    = "/health"
	statusHealthy = "healthy"
	statusError   = "error"

	msgCannotConnect = "Cannot connect to backend service"
)

// Health describes backend availability.
type Health struct {
	Status      string `json:"status" yaml:"status"`
	ModelLoaded bool   `json:"model_loaded" yaml:"model_loaded"`
	Message     string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Online reports whether the backend answered as healthy.
func (h *Health) Online() bool {
	return h != nil && strings.EqualFold(h.Status, statusHealthy)
}

// ModelStatus is the dashboard wording for the model indicator.
func (h *Health) ModelStatus() string {
	if h.Online() {
		return "Ready"
	}
	return "Offline"
}

// APIStatus is the dashboard wording for the connection indicator.
func (h *Health) APIStatus() string {
	if h.Online() {
		return "Connected"
	}
	return "Disconnected"
}

// Health checks the backend. It never fails: an unreachable or unhealthy backend is
// reported through the returned status.
func (c *Client) Health(ctx context.Context) *Health {
	// Any 2xx answer means the dashboard backend is up, whatever the body.
	if c.profile == ProfileDashboard {
		if err := c.getJSON(ctx, healthPath, nil, nil); err != nil {
			c.logger.Debug("status check failed", zap.Error(err))
			return &Health{Status: statusError, Message: msgCannotConnect}
		}
		return &Health{Status: statusHealthy, ModelLoaded: true}
	}

	var health Health
	if err := c.getJSON(ctx, healthPath, nil, &health); err != nil {
		c.logger.Debug("status check failed", zap.Error(err))
		return &Health{Status: statusError, Message: msgCannotConnect}
	}

	return &health
}

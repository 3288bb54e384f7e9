package sdk

import (
	"context"
	"fmt"
	"net/http"
)

// ActionType enumerates the threat responses a user can request. The
// oracle enforces its own command whitelist; anything else is rejected
// server-side.
type ActionType string

const (
	ActionBlockIP  ActionType = "block_ip"
	ActionAllowIP  ActionType = "allow_ip"
	ActionDismiss  ActionType = "dismiss"
	ActionMonitor  ActionType = "monitor"
	ActionLockdown ActionType = "lockdown"
)

// ActionRequest describes a user decision to execute against a Sentry.
type ActionRequest struct {
	ActionType ActionType `json:"action_type"`
	Target     string     `json:"target,omitempty"`
	AlertIDs   []int64    `json:"alert_ids,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	DeviceID   string     `json:"device_id,omitempty"`
}

// ActionResult is the oracle's outcome report for an executed action.
type ActionResult struct {
	Success    bool           `json:"success"`
	ActionType string         `json:"action_type"`
	Message    string         `json:"message"`
	ExecutedAt string         `json:"executed_at"`
	Details    map[string]any `json:"details,omitempty"`
}

// ExecuteAction runs a threat-response action through the oracle's
// safety checks and on to the target Sentry where applicable.
func (c *Client) ExecuteAction(ctx context.Context, req ActionRequest) (*ActionResult, error) {
	if req.ActionType == "" {
		return nil, fmt.Errorf("action type is required")
	}
	var result ActionResult
	if err := c.do(ctx, http.MethodPost, "api/actions/execute", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DismissedState lists alerts the user marked safe and IPs they trust.
type DismissedState struct {
	DismissedAlertIDs []int64  `json:"dismissed_alert_ids"`
	SafeIPs           []string `json:"safe_ips"`
}

// ListDismissed returns the current dismissed alerts and safe IPs.
func (c *Client) ListDismissed(ctx context.Context) (*DismissedState, error) {
	var state DismissedState
	if err := c.do(ctx, http.MethodGet, "api/actions/dismissed", nil, &state); err != nil {
		return nil, classify(err, ErrServiceUnavailable)
	}
	return &state, nil
}

// UndismissAlert puts a previously dismissed alert back under watch.
func (c *Client) UndismissAlert(ctx context.Context, alertID int64) error {
	path := fmt.Sprintf("api/actions/dismissed/%d", alertID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

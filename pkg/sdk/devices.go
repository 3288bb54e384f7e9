package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Device is a claimed Sentry appliance as reported by the oracle.
type Device struct {
	ID           string `json:"id"`
	HardwareID   string `json:"hardware_id"`
	FriendlyName string `json:"friendly_name"`
	Status       string `json:"status"`
	LastSeen     string `json:"last_seen"`
	IPAddress    string `json:"ip_address"`
	Version      string `json:"version"`
}

// ListDevices returns the authenticated user's claimed devices, most
// recently seen first.
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	var devices []Device
	if err := c.do(ctx, http.MethodGet, "api/devices/list", nil, &devices); err != nil {
		return nil, classify(err, ErrServiceUnavailable)
	}
	return devices, nil
}

// ClaimResult is the outcome of claiming a device with a pairing code.
type ClaimResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ClaimDevice claims an unclaimed Sentry using the pairing code shown
// on the device (e.g. "A3K-9M2").
func (c *Client) ClaimDevice(ctx context.Context, pairingCode string) (*ClaimResult, error) {
	req := struct {
		ClaimToken string `json:"claim_token"`
	}{ClaimToken: pairingCode}

	var result ClaimResult
	if err := c.do(ctx, http.MethodPost, "api/devices/claim", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveDevice unregisters a device by id.
func (c *Client) RemoveDevice(ctx context.Context, deviceID string) error {
	if deviceID == "" {
		return fmt.Errorf("device id is required")
	}
	return c.do(ctx, http.MethodDelete, "api/devices/"+url.PathEscape(deviceID), nil, nil)
}

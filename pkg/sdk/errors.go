package sdk

import (
	"errors"
	"fmt"
)

// Sentinel errors for the auth flows; callers map them to user-facing
// behavior (retry prompt, resend offer, disabled login option, silence).
var (
	// ErrInvalidCredentials means the backend rejected the email/password
	// pair. Recoverable; the user retries.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidOrExpiredCode means the one-time code was wrong, expired,
	// or presented against the wrong registration session.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired verification code")
	// ErrBackendValidationFailed means the interactive provider login
	// succeeded but the backend refused to exchange the identity token.
	ErrBackendValidationFailed = errors.New("backend rejected the provider token")
	// ErrProviderNotConfigured means an adapter is missing required
	// configuration; the corresponding login option should be disabled.
	ErrProviderNotConfigured = errors.New("identity provider not configured")
	// ErrUserCancelled means the user dismissed the interactive login.
	// Callers surface nothing for it.
	ErrUserCancelled = errors.New("login cancelled by user")
	// ErrServiceUnavailable covers network-level failures and backend 5xx.
	ErrServiceUnavailable = errors.New("authentication service unavailable")
	// ErrCorruptLocalState means a persisted credential record could not
	// be decoded. The store is cleared and resolution continues.
	ErrCorruptLocalState = errors.New("corrupt local credential state")
)

// APIError is a non-2xx response from the oracle backend, carrying the
// backend's detail message verbatim so the UI can show it unchanged.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// classify maps a transport or API error to the sentinel taxonomy:
// network failures and 5xx become ErrServiceUnavailable, other non-2xx
// become badRequest with the backend detail preserved in the message.
func classify(err error, badRequest error) error {
	var api *APIError
	if errors.As(err, &api) {
		if api.Status >= 500 {
			return fmt.Errorf("%w: %s", ErrServiceUnavailable, api.Error())
		}
		return fmt.Errorf("%w: %s", badRequest, api.Error())
	}
	return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
}

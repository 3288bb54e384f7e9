package sdk

import (
	"context"
	"fmt"
	"net/http"
)

// LoginResult is the backend's response to a credential login: a bearer
// token for the data API plus the user record it belongs to.
type LoginResult struct {
	AccessToken string     `json:"access_token"`
	User        UserRecord `json:"user"`
}

// Login authenticates with email and password against the backend's
// credential endpoint. The backend's rejection message is preserved
// verbatim in the returned error.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: email, Password: password}

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "api/auth/login", req, &result); err != nil {
		return nil, classify(err, ErrInvalidCredentials)
	}
	if result.AccessToken == "" {
		return nil, fmt.Errorf("%w: backend returned no access token", ErrServiceUnavailable)
	}
	return &result, nil
}

// StartRegistration begins the three-phase registration flow. The
// backend sends a one-time code out of band and returns an opaque
// session handle that must be threaded unchanged through the verify and
// complete phases.
func (c *Client) StartRegistration(ctx context.Context, email, givenName, familyName string) (string, error) {
	req := struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}{Email: email, GivenName: givenName, FamilyName: familyName}

	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := c.do(ctx, http.MethodPost, "api/auth/register", req, &resp); err != nil {
		return "", classify(err, ErrInvalidCredentials)
	}
	if resp.SessionID == "" {
		return "", fmt.Errorf("%w: backend returned no session handle", ErrServiceUnavailable)
	}
	return resp.SessionID, nil
}

// VerifyOTP submits the one-time code against the session handle from
// StartRegistration. A wrong code, an expired session, or a handle from
// a different initiate call all surface as ErrInvalidOrExpiredCode.
func (c *Client) VerifyOTP(ctx context.Context, sessionID, code string) error {
	req := struct {
		SessionID string `json:"session_id"`
		OTPCode   string `json:"otp_code"`
	}{SessionID: sessionID, OTPCode: code}

	if err := c.do(ctx, http.MethodPost, "api/auth/verify-otp", req, nil); err != nil {
		return classify(err, ErrInvalidOrExpiredCode)
	}
	return nil
}

// CompleteRegistration submits the password against the verified session
// handle and returns the final bearer token.
func (c *Client) CompleteRegistration(ctx context.Context, sessionID, password, givenName, familyName string) (string, error) {
	req := struct {
		SessionID  string `json:"session_id"`
		Password   string `json:"password"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}{SessionID: sessionID, Password: password, GivenName: givenName, FamilyName: familyName}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "api/auth/complete-registration", req, &resp); err != nil {
		return "", classify(err, ErrInvalidOrExpiredCode)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: backend returned no access token", ErrServiceUnavailable)
	}
	return resp.AccessToken, nil
}

// ResendOTP asks the backend to resend the one-time code. The backend
// may rotate the session handle; the returned handle is the one to use
// from here on (the old one when no rotation happened).
func (c *Client) ResendOTP(ctx context.Context, sessionID string) (string, error) {
	req := struct {
		SessionID string `json:"session_id"`
	}{SessionID: sessionID}

	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := c.do(ctx, http.MethodPost, "api/auth/resend-otp", req, &resp); err != nil {
		return "", classify(err, ErrInvalidOrExpiredCode)
	}
	if resp.SessionID != "" {
		return resp.SessionID, nil
	}
	return sessionID, nil
}

// ExchangeMicrosoftToken trades a Microsoft identity token (the token
// carrying user claims, not the API access token) for a backend-issued
// bearer token. A rejection here is a hard login failure even though
// the provider-side login already succeeded.
func (c *Client) ExchangeMicrosoftToken(ctx context.Context, identityToken string) (string, error) {
	req := struct {
		AccessToken string `json:"access_token"`
	}{AccessToken: identityToken}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "api/auth/azure/login", req, &resp); err != nil {
		return "", classify(err, ErrBackendValidationFailed)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: backend returned no access token", ErrBackendValidationFailed)
	}
	return resp.AccessToken, nil
}

// Package localcred adapts the custom backend's email/password login
// and three-phase registration flow, persisting the bearer token and
// user record it is issued.
package localcred

import (
	"context"
	"fmt"

	"github.com/gauciv/cardea/internal/store"
	"github.com/gauciv/cardea/pkg/sdk"
)

// MinPasswordLength is enforced client-side before the complete phase.
const MinPasswordLength = 8

// Adapter drives the local-credential login path.
type Adapter struct {
	api   *sdk.Client
	store *store.Store
}

// New returns an Adapter backed by the given API client and store.
func New(api *sdk.Client, st *store.Store) *Adapter {
	return &Adapter{api: api, store: st}
}

// Login authenticates with email/password, persists the issued bearer
// token and user record, and returns the mapped identity.
func (a *Adapter) Login(ctx context.Context, email, password string) (*sdk.Identity, error) {
	result, err := a.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.store.SetBearerToken(result.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to persist bearer token: %w", err)
	}
	if err := a.store.SetUserRecord(&result.User); err != nil {
		return nil, fmt.Errorf("failed to persist user record: %w", err)
	}
	return result.User.Identity(sdk.ProviderLocalCredential), nil
}

// Logout clears only this adapter's credential records. The backend is
// stateless bearer-token based, so no network call is involved.
func (a *Adapter) Logout() error {
	return a.store.ClearLocalCredential()
}

// Registration is an in-progress three-phase registration. The session
// handle from Start threads through Verify and Complete unchanged;
// Resend may rotate it.
type Registration struct {
	api        *sdk.Client
	sessionID  string
	email      string
	givenName  string
	familyName string
	verified   bool
}

// StartRegistration begins the flow and triggers the out-of-band
// one-time code send.
func (a *Adapter) StartRegistration(ctx context.Context, email, givenName, familyName string) (*Registration, error) {
	sessionID, err := a.api.StartRegistration(ctx, email, givenName, familyName)
	if err != nil {
		return nil, err
	}
	return &Registration{
		api:        a.api,
		sessionID:  sessionID,
		email:      email,
		givenName:  givenName,
		familyName: familyName,
	}, nil
}

// SessionID exposes the current opaque session handle.
func (r *Registration) SessionID() string {
	return r.sessionID
}

// Verify submits the one-time code for this registration's session.
func (r *Registration) Verify(ctx context.Context, code string) error {
	if err := r.api.VerifyOTP(ctx, r.sessionID, code); err != nil {
		return err
	}
	r.verified = true
	return nil
}

// Resend asks for a fresh one-time code, adopting a rotated session
// handle when the backend returns one.
func (r *Registration) Resend(ctx context.Context) error {
	sessionID, err := r.api.ResendOTP(ctx, r.sessionID)
	if err != nil {
		return err
	}
	r.sessionID = sessionID
	r.verified = false
	return nil
}

// Complete submits the password and finishes registration, persisting
// the final bearer token so the user is logged in immediately.
func (a *Adapter) Complete(ctx context.Context, r *Registration, password, confirm string) (*sdk.Identity, error) {
	if !r.verified {
		return nil, fmt.Errorf("%w: email not verified yet", sdk.ErrInvalidOrExpiredCode)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if password != confirm {
		return nil, fmt.Errorf("passwords do not match")
	}

	token, err := a.api.CompleteRegistration(ctx, r.sessionID, password, r.givenName, r.familyName)
	if err != nil {
		return nil, err
	}

	user := sdk.UserRecord{
		Email:    r.email,
		FullName: joinName(r.givenName, r.familyName),
	}
	if err := a.store.SetBearerToken(token); err != nil {
		return nil, fmt.Errorf("failed to persist bearer token: %w", err)
	}
	if err := a.store.SetUserRecord(&user); err != nil {
		return nil, fmt.Errorf("failed to persist user record: %w", err)
	}
	return user.Identity(sdk.ProviderLocalCredential), nil
}

func joinName(given, family string) string {
	switch {
	case given == "":
		return family
	case family == "":
		return given
	default:
		return given + " " + family
	}
}

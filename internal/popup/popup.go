// Package popup adapts the interactive Microsoft login: a third-party
// OIDC library drives the provider's own authorization UI, and the
// resulting identity token is exchanged at the backend for a Cardea
// bearer token. A successful provider login is necessary but not
// sufficient; the backend has the final word.
package popup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zitadel/oidc/v3/pkg/client/rp"
	"github.com/zitadel/oidc/v3/pkg/client/rp/cli"
	"github.com/zitadel/oidc/v3/pkg/oidc"

	"github.com/gauciv/cardea/internal/store"
	"github.com/gauciv/cardea/pkg/sdk"
)

// Config locates the Microsoft identity platform tenant.
type Config struct {
	// Issuer is the tenant authority URL, e.g.
	// https://login.microsoftonline.com/{tenant}/v2.0.
	Issuer string
	// ClientID is the application (client) id registered for Cardea.
	ClientID string
}

// providerResult is what the interactive step yields: the identity
// token (claims-bearing, the one the backend validates) plus the
// claims needed for the local user record.
type providerResult struct {
	IdentityToken string
	Subject       string
	Email         string
	Name          string
}

// Adapter drives the interactive login flow. Construct it once at
// application start and inject it; a missing configuration makes the
// adapter unavailable rather than failing construction.
type Adapter struct {
	api     *sdk.Client
	store   *store.Store
	initErr error

	// authorize runs the interactive provider step. Swapped in tests.
	authorize func(ctx context.Context) (*providerResult, error)
}

// New builds an Adapter. It never fails: with incomplete configuration
// the adapter reports itself unavailable and any login attempt fails
// immediately with ErrProviderNotConfigured, without any interaction.
func New(cfg Config, api *sdk.Client, st *store.Store) *Adapter {
	a := &Adapter{api: api, store: st}
	if cfg.Issuer == "" || cfg.ClientID == "" {
		a.initErr = fmt.Errorf("%w: microsoft issuer and client id are required", sdk.ErrProviderNotConfigured)
		return a
	}
	a.authorize = func(ctx context.Context) (*providerResult, error) {
		return deviceFlow(ctx, cfg)
	}
	return a
}

// Available reports whether the adapter is configured. Callers disable
// the Microsoft login option when it is not, instead of offering a
// button that will always fail.
func (a *Adapter) Available() bool {
	return a.initErr == nil
}

// Login runs the interactive provider flow, exchanges the identity
// token at the backend, persists the backend-issued bearer token
// through the shared store, and returns the mapped identity.
func (a *Adapter) Login(ctx context.Context) (*sdk.Identity, error) {
	if a.initErr != nil {
		return nil, a.initErr
	}

	result, err := a.authorize(ctx)
	if err != nil {
		if cancelled(ctx, err) {
			return nil, fmt.Errorf("%w: %v", sdk.ErrUserCancelled, err)
		}
		return nil, fmt.Errorf("%w: %v", sdk.ErrServiceUnavailable, err)
	}

	token, err := a.api.ExchangeMicrosoftToken(ctx, result.IdentityToken)
	if err != nil {
		return nil, err
	}

	user := sdk.UserRecord{
		ID:       result.Subject,
		Email:    result.Email,
		FullName: result.Name,
	}
	if err := a.store.SetBearerToken(token); err != nil {
		return nil, fmt.Errorf("failed to persist bearer token: %w", err)
	}
	if err := a.store.SetUserRecord(&user); err != nil {
		return nil, fmt.Errorf("failed to persist user record: %w", err)
	}

	identity := user.Identity(sdk.ProviderManagedMicrosoft)
	return identity, nil
}

// cancelled distinguishes the user closing or denying the provider UI
// from everything else; that outcome is silent, never an error banner,
// and never conflated with bad credentials.
func cancelled(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.Canceled) {
		return true
	}
	var oidcErr *oidc.Error
	if errors.As(err, &oidcErr) && oidcErr.ErrorType == oidc.AccessDenied {
		return true
	}
	return strings.Contains(err.Error(), "access_denied")
}

// deviceFlow performs the OIDC device-authorization flow against the
// Microsoft identity platform: discover, request a user code, open the
// browser, poll for tokens, verify the ID token.
func deviceFlow(ctx context.Context, cfg Config) (*providerResult, error) {
	scopes := []string{oidc.ScopeOpenID, oidc.ScopeProfile, oidc.ScopeEmail}

	relyingParty, err := rp.NewRelyingPartyOIDC(
		ctx,
		cfg.Issuer,
		cfg.ClientID,
		"", // public client, no secret
		"", // no redirect URI for device flow
		scopes,
		rp.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to discover provider at %s: %w", cfg.Issuer, err)
	}

	authResponse, err := rp.DeviceAuthorization(ctx, scopes, relyingParty, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start device authorization: %w", err)
	}

	printInstructions(authResponse)
	if authResponse.VerificationURIComplete != "" {
		cli.OpenBrowser(authResponse.VerificationURIComplete)
	}

	interval := time.Duration(authResponse.Interval) * time.Second
	if interval == 0 {
		interval = 5 * time.Second
	}

	token, err := rp.DeviceAccessToken(ctx, authResponse.DeviceCode, interval, relyingParty)
	if err != nil {
		return nil, err
	}
	if token.IDToken == "" {
		return nil, fmt.Errorf("provider returned no identity token")
	}

	claims, err := rp.VerifyIDToken[*oidc.IDTokenClaims](ctx, token.IDToken, relyingParty.IDTokenVerifier())
	if err != nil {
		return nil, fmt.Errorf("identity token verification failed: %w", err)
	}

	email := claims.Email
	if email == "" {
		email = claims.PreferredUsername
	}

	return &providerResult{
		IdentityToken: token.IDToken,
		Subject:       claims.Subject,
		Email:         email,
		Name:          claims.Name,
	}, nil
}

func printInstructions(authResponse *oidc.DeviceAuthorizationResponse) {
	fmt.Println("============================================================")
	fmt.Printf("Your code is: %s\n", authResponse.UserCode)
	fmt.Println("")
	fmt.Println("Visit the following URL in your browser to sign in with Microsoft:")
	fmt.Printf("  %s\n", authResponse.VerificationURI)
	fmt.Println("============================================================")
	fmt.Println("Waiting for sign-in...")
}

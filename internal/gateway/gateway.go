// Package gateway adapts the hosting platform's built-in auth proxy.
// The platform owns the session cookie; there is no client-side state
// to manage, so the adapter is a single "who am I" query plus redirect
// URL builders for full-page login and logout navigation.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gauciv/cardea/pkg/sdk"
)

const (
	mePath     = "/.auth/me"
	loginPath  = "/.auth/login/"
	logoutPath = "/.auth/logout"

	defaultTimeout = 5 * time.Second
)

// Principal is the platform's verified view of the current user.
type Principal struct {
	UserID           string   `json:"userId"`
	UserDetails      string   `json:"userDetails"`
	UserRoles        []string `json:"userRoles"`
	IdentityProvider string   `json:"identityProvider"`
	Claims           []Claim  `json:"claims"`
}

// Claim is a single claim forwarded by the platform.
type Claim struct {
	Typ string `json:"typ"`
	Val string `json:"val"`
}

// Adapter queries the managed gateway at a fixed origin.
type Adapter struct {
	origin string
	http   *http.Client
}

// New creates an Adapter for the managed origin (scheme + host).
func New(origin string) *Adapter {
	return &Adapter{
		origin: strings.TrimRight(origin, "/"),
		http:   &http.Client{Timeout: defaultTimeout},
	}
}

// NewWithClient creates an Adapter with a caller-supplied HTTP client.
func NewWithClient(origin string, client *http.Client) *Adapter {
	return &Adapter{origin: strings.TrimRight(origin, "/"), http: client}
}

// CurrentPrincipal asks the gateway who the current user is. A nil
// principal with nil error means the gateway answered "nobody". Errors
// are for the caller to swallow; a transient failure here must degrade
// to the next identity source, never hard-fail resolution.
func (a *Adapter) CurrentPrincipal(ctx context.Context) (*Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.origin+mePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build who-am-i request: %w", err)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("who-am-i request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("who-am-i endpoint returned %s", resp.Status)
	}

	var payload struct {
		ClientPrincipal *Principal `json:"clientPrincipal"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode who-am-i response: %w", err)
	}
	if payload.ClientPrincipal == nil || payload.ClientPrincipal.UserID == "" {
		return nil, nil
	}
	return payload.ClientPrincipal, nil
}

// LoginURL builds the full-page login redirect for the given platform
// provider code ("aad", "google", "github"). The caller navigates and
// never gets a response; there is nothing to await.
func (a *Adapter) LoginURL(providerCode, target string) string {
	q := url.Values{"post_login_redirect_uri": {a.origin + target}}
	return a.origin + loginPath + url.PathEscape(providerCode) + "?" + q.Encode()
}

// LogoutURL builds the full-page logout redirect.
func (a *Adapter) LogoutURL(target string) string {
	q := url.Values{"post_logout_redirect_uri": {a.origin + target}}
	return a.origin + logoutPath + "?" + q.Encode()
}

// Identity maps a platform principal to a normalized Identity. The
// platform's provider code decides which managed provider tag applies;
// unrecognized codes default to Microsoft, the tenant's primary IdP.
func (p *Principal) Identity() *sdk.Identity {
	provider := sdk.ProviderManagedMicrosoft
	switch p.IdentityProvider {
	case "google":
		provider = sdk.ProviderManagedGoogle
	case "github":
		provider = sdk.ProviderManagedGitHub
	}

	attrs := map[string]string{}
	for _, c := range p.Claims {
		switch c.Typ {
		case "name", "given_name", "family_name", "email":
			attrs[c.Typ] = c.Val
		}
	}

	label := attrs["name"]
	if label == "" {
		label = p.UserDetails
	}

	return &sdk.Identity{
		SubjectID:    p.UserID,
		DisplayLabel: label,
		Roles:        sdk.NormalizeRoles(filterAnonymous(p.UserRoles)),
		Provider:     provider,
		Attributes:   attrs,
	}
}

// filterAnonymous drops the platform's implicit "anonymous" role, which
// every visitor carries and which is not a grant.
func filterAnonymous(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if strings.EqualFold(r, "anonymous") {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Package resolver derives the current identity from whichever source
// has valid state, in a fixed priority order: the managed gateway is
// platform-verified and cannot be forged client-side, so it wins over
// any stale local token; the local-credential record is the fallback;
// the developer bypass comes last and is hard-disabled under managed
// hosting.
package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gauciv/cardea/internal/gateway"
	"github.com/gauciv/cardea/internal/store"
	"github.com/gauciv/cardea/pkg/sdk"
)

// PrincipalSource is the slice of the gateway adapter the resolver
// needs.
type PrincipalSource interface {
	CurrentPrincipal(ctx context.Context) (*gateway.Principal, error)
}

// Resolver runs the identity cascade.
type Resolver struct {
	store   *store.Store
	gateway PrincipalSource
	managed bool
	now     func() time.Time
}

// New builds a Resolver. gw may be nil when the app is not running
// under managed hosting; managed reports whether it is.
func New(st *store.Store, gw PrincipalSource, managed bool) *Resolver {
	return &Resolver{store: st, gateway: gw, managed: managed, now: time.Now}
}

// Resolve returns the highest-priority identity available, or nil when
// every source is exhausted. Errors along the way are swallowed per
// source: a transient gateway failure degrades to the local token, a
// corrupt local record is cleared and resolution continues. The caller
// never sees a resolution-time error, only an eventual nil.
func (r *Resolver) Resolve(ctx context.Context) *sdk.Identity {
	if r.managed && r.gateway != nil {
		principal, err := r.gateway.CurrentPrincipal(ctx)
		if err == nil && principal != nil {
			return principal.Identity()
		}
	}

	if identity := r.resolveLocal(); identity != nil {
		return identity
	}

	if !r.managed {
		if identity := r.resolveBypass(); identity != nil {
			return identity
		}
	}

	return nil
}

func (r *Resolver) resolveLocal() *sdk.Identity {
	token, err := r.store.BearerToken()
	if err != nil || token == "" {
		return nil
	}
	if r.expired(token) {
		_ = r.store.ClearLocalCredential()
		return nil
	}

	user, err := r.store.UserRecord()
	if err != nil {
		if errors.Is(err, sdk.ErrCorruptLocalState) {
			// Self-heal: a record we cannot decode will never become
			// readable again, so clear it and fall through the cascade.
			_ = r.store.ClearLocalCredential()
		}
		return nil
	}
	if user == nil || (user.ID == "" && user.Email == "") {
		return nil
	}

	return user.Identity(sdk.ProviderLocalCredential)
}

func (r *Resolver) resolveBypass() *sdk.Identity {
	rec, err := r.store.Bypass()
	if err != nil || rec == nil || !rec.Enabled {
		return nil
	}

	user := rec.SimulatedUser
	if user == nil {
		user = &sdk.UserRecord{
			ID:       "dev-" + uuid.NewString(),
			Email:    "dev@localhost",
			FullName: "Local Developer",
		}
	}

	identity := user.Identity(sdk.ProviderDeveloperBypass)
	identity.Roles = sdk.NormalizeRoles([]string{"authenticated", "admin"})
	if rec.SimulatedProvider != "" {
		identity.Attributes["simulated_provider"] = rec.SimulatedProvider
	}
	return identity
}

// expired peeks at the bearer token's exp claim without verifying the
// signature; verification is the backend's job. Opaque (non-JWT)
// tokens are accepted as-is. Only a token that parses as a JWT and is
// past its expiry is treated as absent.
func (r *Resolver) expired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(r.now())
}

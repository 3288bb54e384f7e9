// Package session holds the resolved identity for the life of the
// process and mediates login, logout, and re-resolution. It is the
// only writer of the current identity; command code reads it and
// never constructs one.
package session

import (
	"context"
	"sync"

	"github.com/gauciv/cardea/internal/gateway"
	"github.com/gauciv/cardea/internal/localcred"
	"github.com/gauciv/cardea/internal/popup"
	"github.com/gauciv/cardea/internal/resolver"
	"github.com/gauciv/cardea/internal/store"
	"github.com/gauciv/cardea/pkg/sdk"
)

// Manager owns the current identity. The resolver cascade runs at most
// once, on first access; successful logins replace the identity
// directly from the adapter's result, since the adapter already knows
// the authoritative outcome of the action it just performed.
type Manager struct {
	store    *store.Store
	resolver *resolver.Resolver
	gateway  *gateway.Adapter
	local    *localcred.Adapter
	popup    *popup.Adapter

	resolveOnce sync.Once
	mu          sync.Mutex
	current     *sdk.Identity
}

// New wires a Manager from its collaborators. gw may be nil outside
// managed hosting.
func New(st *store.Store, res *resolver.Resolver, gw *gateway.Adapter, local *localcred.Adapter, pop *popup.Adapter) *Manager {
	return &Manager{
		store:    st,
		resolver: res,
		gateway:  gw,
		local:    local,
		popup:    pop,
	}
}

// Current returns the resolved identity, running the cascade on first
// call. Resolution failures are invisible; they only mean nil here.
func (m *Manager) Current(ctx context.Context) *sdk.Identity {
	m.resolveOnce.Do(func() {
		identity := m.resolver.Resolve(ctx)
		m.mu.Lock()
		m.current = identity
		m.mu.Unlock()
	})
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsAuthenticated reports whether a current identity exists.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	return m.Current(ctx) != nil
}

// Login authenticates through the local-credential adapter and adopts
// its identity without re-resolving. Errors propagate verbatim for the
// caller to surface.
func (m *Manager) Login(ctx context.Context, email, password string) (*sdk.Identity, error) {
	identity, err := m.local.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.adopt(identity)
	return identity, nil
}

// LoginWithMicrosoft authenticates through the interactive adapter.
func (m *Manager) LoginWithMicrosoft(ctx context.Context) (*sdk.Identity, error) {
	identity, err := m.popup.Login(ctx)
	if err != nil {
		return nil, err
	}
	m.adopt(identity)
	return identity, nil
}

// MicrosoftAvailable reports whether the interactive login option
// should be offered at all.
func (m *Manager) MicrosoftAvailable() bool {
	return m.popup != nil && m.popup.Available()
}

// ManagedLoginURL returns the gateway's full-page login redirect for
// the given platform provider code, or "" when not under managed
// hosting. The navigation never returns; callers fire and forget.
func (m *Manager) ManagedLoginURL(providerCode string) string {
	if m.gateway == nil {
		return ""
	}
	return m.gateway.LoginURL(providerCode, "/")
}

// Adopt installs an identity produced by an adapter. Exposed for the
// registration flow, which logs the user in on completion.
func (m *Manager) Adopt(identity *sdk.Identity) {
	m.adopt(identity)
}

func (m *Manager) adopt(identity *sdk.Identity) {
	// Make sure a later Current() does not overwrite the fresher
	// adapter result with a resolver pass.
	m.resolveOnce.Do(func() {})
	m.mu.Lock()
	m.current = identity
	m.mu.Unlock()
}

// Logout clears every adapter's credential records synchronously. When
// the departing identity belonged to a managed provider it also returns
// the gateway logout URL for the caller to navigate. The wipe is total
// because nothing tracks which adapter produced the current identity
// once resolved.
func (m *Manager) Logout(ctx context.Context) (redirectURL string, err error) {
	current := m.Current(ctx)

	if err := m.store.Wipe(); err != nil {
		return "", err
	}
	m.adopt(nil)

	if current != nil && current.Provider.Managed() && m.gateway != nil {
		return m.gateway.LogoutURL("/"), nil
	}
	return "", nil
}

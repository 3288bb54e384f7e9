// Package app wires the auth subsystem from configuration and hands
// commands their shared collaborators, each constructed lazily and at
// most once per process.
package app

import (
	"context"
	"sync"

	"github.com/gauciv/cardea/internal/config"
	"github.com/gauciv/cardea/internal/gateway"
	"github.com/gauciv/cardea/internal/guard"
	"github.com/gauciv/cardea/internal/localcred"
	"github.com/gauciv/cardea/internal/popup"
	"github.com/gauciv/cardea/internal/resolver"
	"github.com/gauciv/cardea/internal/session"
	"github.com/gauciv/cardea/internal/store"
	"github.com/gauciv/cardea/pkg/sdk"
)

// App owns the wired auth subsystem for one cardeactl invocation.
type App struct {
	Config *config.Config

	storeOnce sync.Once
	store     *store.Store
	storeErr  error

	sessionOnce sync.Once
	session     *session.Manager
	sessionErr  error

	guardOnce sync.Once
	guard     *guard.Guard
	guardErr  error
}

// New creates an App for the given configuration.
func New(cfg *config.Config) *App {
	return &App{Config: cfg}
}

// Store returns the credential store.
func (a *App) Store() (*store.Store, error) {
	a.storeOnce.Do(func() {
		if a.Config.CredentialDir != "" {
			a.store, a.storeErr = store.NewAt(a.Config.CredentialDir)
			return
		}
		a.store, a.storeErr = store.New()
	})
	return a.store, a.storeErr
}

// API returns an unauthenticated SDK client for the auth endpoints.
func (a *App) API() *sdk.Client {
	return sdk.NewClient(a.Config.Server, sdk.WithTimeout(a.Config.Timeout))
}

// Session returns the session manager, wiring the resolver and all
// three adapters on first use.
func (a *App) Session() (*session.Manager, error) {
	a.sessionOnce.Do(func() {
		st, err := a.Store()
		if err != nil {
			a.sessionErr = err
			return
		}

		api := a.API()
		managed := a.Config.Managed()

		var gw *gateway.Adapter
		if managed {
			gw = gateway.New(a.Config.GatewayOrigin())
		}

		res := resolver.New(st, gw, managed)
		local := localcred.New(api, st)
		pop := popup.New(popup.Config{
			Issuer:   a.Config.MicrosoftIssuer,
			ClientID: a.Config.MicrosoftClientID,
		}, api, st)

		a.session = session.New(st, res, gw, local, pop)
	})
	return a.session, a.sessionErr
}

// Guard returns the route guard for protected commands.
func (a *App) Guard() (*guard.Guard, error) {
	a.guardOnce.Do(func() {
		sess, err := a.Session()
		if err != nil {
			a.guardErr = err
			return
		}
		st, err := a.Store()
		if err != nil {
			a.guardErr = err
			return
		}
		a.guard = guard.New(a.Config.Server, sess, st, a.Config.DevBypass && !a.Config.Managed())
	})
	return a.guard, a.guardErr
}

type contextKey string

const appKey contextKey = "cardeactl-app"

// IntoContext adds the app to the cobra command context.
func IntoContext(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// MustFromContext retrieves the app or panics; for use inside RunE
// funcs where the root command is known to have injected it.
func MustFromContext(ctx context.Context) *App {
	a, ok := ctx.Value(appKey).(*App)
	if !ok {
		panic("cardeactl: app not found in context - this is a bug in cardeactl")
	}
	return a
}

// Package guard gates protected views on the session state and yields
// authenticated API clients for the ones that pass.
package guard

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"golang.org/x/oauth2"

	"github.com/gauciv/cardea/internal/session"
	"github.com/gauciv/cardea/internal/store"
	"github.com/gauciv/cardea/pkg/sdk"
)

// State is the guard's decision for a protected view.
type State int

const (
	// Checking means the first resolution has not completed yet.
	Checking State = iota
	// Granted renders the protected view.
	Granted
	// Denied routes to the login view.
	Denied
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	}
	return "unknown"
}

// ErrNotAuthenticated is returned for protected access without a
// session; the message is the login hint the user sees.
var ErrNotAuthenticated = errors.New("not logged in; run `cardeactl auth login`")

// Guard decides access for protected commands and lazily builds the
// authenticated clients they use. The decision is made once per
// Guard: Checking transitions to exactly one of Granted or Denied.
type Guard struct {
	serverURL string
	session   *session.Manager
	store     *store.Store
	devMode   bool

	checkOnce sync.Once
	state     State

	httpOnce sync.Once
	httpCli  *http.Client
	httpErr  error

	sdkOnce   sync.Once
	sdkClient *sdk.Client
	sdkErr    error
}

// New builds a Guard. devMode designates the local-development bypass
// that skips auth checks entirely.
func New(serverURL string, sess *session.Manager, st *store.Store, devMode bool) *Guard {
	return &Guard{
		serverURL: serverURL,
		session:   sess,
		store:     st,
		devMode:   devMode,
		state:     Checking,
	}
}

// State returns the current decision without forcing one.
func (g *Guard) State() State {
	return g.state
}

// Check transitions Checking to Granted or Denied, exactly once. The
// designated local-development mode grants without consulting the
// session at all.
func (g *Guard) Check(ctx context.Context) State {
	g.checkOnce.Do(func() {
		if g.devMode {
			g.state = Granted
			return
		}
		if g.session.IsAuthenticated(ctx) {
			g.state = Granted
		} else {
			g.state = Denied
		}
	})
	return g.state
}

// HTTPClient returns an http.Client carrying the stored bearer token.
// Denied access returns ErrNotAuthenticated with the login hint.
func (g *Guard) HTTPClient(ctx context.Context) (*http.Client, error) {
	g.httpOnce.Do(func() {
		if g.Check(ctx) != Granted {
			g.httpErr = ErrNotAuthenticated
			return
		}

		token, err := g.store.BearerToken()
		if err != nil {
			g.httpErr = err
			return
		}
		if token == "" {
			// Managed-gateway and developer-bypass sessions carry no
			// local bearer token; data calls go out unauthenticated and
			// the backend decides.
			g.httpCli = http.DefaultClient
			return
		}

		source := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		})
		g.httpCli = oauth2.NewClient(context.Background(), source)
	})

	if g.httpErr != nil {
		return nil, g.httpErr
	}
	return g.httpCli, nil
}

// SDKClient returns an authenticated Cardea SDK client backed by
// HTTPClient.
func (g *Guard) SDKClient(ctx context.Context) (*sdk.Client, error) {
	g.sdkOnce.Do(func() {
		httpClient, err := g.HTTPClient(ctx)
		if err != nil {
			g.sdkErr = err
			return
		}
		g.sdkClient = sdk.NewClient(g.serverURL, sdk.WithHTTPClient(httpClient))
	})

	if g.sdkErr != nil {
		return nil, g.sdkErr
	}
	return g.sdkClient, nil
}

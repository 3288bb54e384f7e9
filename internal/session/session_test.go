package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauciv/cardea/internal/gateway"
	"github.com/gauciv/cardea/internal/localcred"
	"github.com/gauciv/cardea/internal/resolver"
	"github.com/gauciv/cardea/internal/store"
	"github.com/gauciv/cardea/pkg/sdk"
)

func loginHandler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Password string }
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "correct-horse" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"user":         map[string]string{"id": "1", "email": req.Username, "full_name": "A B"},
		})
	})
	return mux
}

func newTestManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()
	srv := httptest.NewServer(loginHandler(t))
	t.Cleanup(srv.Close)

	st, err := store.NewAt(t.TempDir())
	require.NoError(t, err)

	api := sdk.NewClient(srv.URL)
	res := resolver.New(st, nil, false)
	local := localcred.New(api, st)
	return New(st, res, nil, local, nil), st
}

func TestCurrentOnEmptyStore(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Nil(t, m.Current(context.Background()))
	assert.False(t, m.IsAuthenticated(context.Background()))
}

func TestLoginAdoptsIdentity(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	id, err := m.Login(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, id, m.Current(ctx))
	assert.True(t, m.IsAuthenticated(ctx))
}

func TestLoginAfterFailedResolution(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	// A resolution pass that finds nothing must not pin the session to
	// nil; a subsequent login installs the fresh identity.
	require.Nil(t, m.Current(ctx))

	id, err := m.Login(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, id, m.Current(ctx))
}

func TestRepeatLoginIsIdempotent(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	first, err := m.Login(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)

	// Logging in again with the same credentials lands in the same
	// session: same subject, same provider.
	second, err := m.Login(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, first.SubjectID, second.SubjectID)
	assert.Equal(t, first.Provider, second.Provider)
	assert.Equal(t, second, m.Current(ctx))
}

func TestLoginReplacesIdentity(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Login(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)

	id2, err := m.Login(ctx, "other@b.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, id2, m.Current(ctx))
	assert.Equal(t, "other@b.com", m.Current(ctx).Attributes["email"])
}

func TestFailedLoginKeepsSession(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Login(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)

	_, err = m.Login(ctx, "a@b.com", "wrong")
	require.ErrorIs(t, err, sdk.ErrInvalidCredentials)
	assert.True(t, m.IsAuthenticated(ctx), "failed re-login must not end the existing session")
}

func TestLogoutIsTotal(t *testing.T) {
	m, st := newTestManager(t)
	ctx := context.Background()

	_, err := m.Login(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)
	require.NoError(t, st.SetBypass(&store.BypassRecord{Enabled: true}))

	redirect, err := m.Logout(ctx)
	require.NoError(t, err)
	assert.Empty(t, redirect, "no gateway, no redirect")
	assert.False(t, m.IsAuthenticated(ctx))

	token, err := st.BearerToken()
	require.NoError(t, err)
	assert.Empty(t, token)
	rec, err := st.Bypass()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestLogoutFromManagedSessionYieldsRedirect(t *testing.T) {
	gwSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"clientPrincipal":{"userId":"u-1","userDetails":"a@b.com","identityProvider":"aad"}}`))
	}))
	defer gwSrv.Close()

	st, err := store.NewAt(t.TempDir())
	require.NoError(t, err)

	gw := gateway.New(gwSrv.URL)
	res := resolver.New(st, gw, true)
	m := New(st, res, gw, nil, nil)
	ctx := context.Background()

	require.True(t, m.IsAuthenticated(ctx))

	redirect, err := m.Logout(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(redirect, gwSrv.URL+"/.auth/logout"), "got %q", redirect)
	assert.False(t, m.IsAuthenticated(ctx))
}

func TestManagedLoginURL(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Empty(t, m.ManagedLoginURL("aad"), "no gateway outside managed hosting")
}

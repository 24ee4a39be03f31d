package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"petcare-web/internal/adapters/storage/memory"
	"petcare-web/internal/ports/auth"
	"petcare-web/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDecoder struct {
	claims auth.Claims
	err    error
}

func (f fakeDecoder) Decode(string) (auth.Claims, error) { return f.claims, f.err }

func guardedRequest(t *testing.T, method, target, sid string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	return req
}

func chain(dec auth.TokenDecoder, store session.Store, next http.Handler) http.Handler {
	mgr := session.NewManager(store, false)
	return Sessions(mgr)(RequireSession(dec, "/login", zap.NewNop())(next))
}

const sid = "4b1f6c1e-8f67-4c57-9a43-6d0f3d2c9a11"

func TestRequireSession_NoTokenRedirectsWithoutRunningHandler(t *testing.T) {
	store := memory.NewSessionStore()
	called := false
	h := chain(fakeDecoder{}, store, http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, guardedRequest(t, http.MethodGet, "/my-reports?skip=20", sid))

	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	target, ok, err := store.Get(context.Background(), sid, session.KeyRedirectAfterLogin)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/my-reports?skip=20", target)
}

func TestRequireSession_PostWithoutTokenDoesNotStoreTarget(t *testing.T) {
	store := memory.NewSessionStore()
	h := chain(fakeDecoder{}, store, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, guardedRequest(t, http.MethodPost, "/my-reports/3/delete", sid))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	_, ok, _ := store.Get(context.Background(), sid, session.KeyRedirectAfterLogin)
	assert.False(t, ok)
}

func TestRequireSession_UndecodableTokenClearsSession(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, sid, session.KeyAccessToken, "garbage"))
	require.NoError(t, store.Set(ctx, sid, session.KeyRefreshToken, "refresh"))
	require.NoError(t, store.Set(ctx, sid, session.KeyViewMode, "map"))

	called := false
	h := chain(fakeDecoder{err: errors.New("bad token")}, store, http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, guardedRequest(t, http.MethodGet, "/user", sid))

	assert.False(t, called)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	for _, k := range []session.Key{session.KeyAccessToken, session.KeyRefreshToken, session.KeyViewMode} {
		_, ok, _ := store.Get(ctx, sid, k)
		assert.False(t, ok, "key %s should be cleared", k)
	}
}

func TestRequireSession_ValidTokenSetsIdentity(t *testing.T) {
	store := memory.NewSessionStore()
	require.NoError(t, store.Set(context.Background(), sid, session.KeyAccessToken, "tok"))

	var got Identity
	h := chain(fakeDecoder{claims: auth.Claims{UserID: "9", Email: "a@b.c"}}, store,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = GetIdentity(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, guardedRequest(t, http.MethodGet, "/user", sid))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "9", got.Claims.UserID)
}

func TestAuthContext_AnonymousPassThrough(t *testing.T) {
	store := memory.NewSessionStore()
	mgr := session.NewManager(store, false)

	var anon bool
	h := Sessions(mgr)(AuthContext(fakeDecoder{err: errors.New("x")})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := GetIdentity(r.Context())
		anon = !ok
	})))

	require.NoError(t, store.Set(context.Background(), sid, session.KeyAccessToken, "garbage"))
	h.ServeHTTP(httptest.NewRecorder(), guardedRequest(t, http.MethodGet, "/reports", sid))

	assert.True(t, anon)
	// AuthContext nunca limpia
	v, _, _ := store.Get(context.Background(), sid, session.KeyAccessToken)
	assert.Equal(t, "garbage", v)
}

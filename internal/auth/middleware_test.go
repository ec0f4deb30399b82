package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dom "github.com/smowhabuth/SKBday/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeUserFinder struct {
	users map[int64]dom.User
	err   error // forced infrastructure failure
}

func (f *fakeUserFinder) GetByID(_ context.Context, id int64) (dom.User, error) {
	if f.err != nil {
		return dom.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *Store, *fakeUserFinder, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := NewStore(rdb, time.Hour, "test-secret")

	finder := &fakeUserFinder{users: map[int64]dom.User{
		1: {ID: 1, AccessCode: "SZA42", Name: "Sarah"},
	}}

	r := gin.New()
	r.Use(LoadUser(store, finder))
	r.GET("/page", RequirePage(), func(c *gin.Context) {
		c.String(http.StatusOK, "hi "+UserFromContext(c).Name)
	})
	r.POST("/action", RequireAction(), func(c *gin.Context) {
		c.String(http.StatusOK, "done")
	})
	r.GET("/open", func(c *gin.Context) {
		if UserFromContext(c) == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, "known")
	})
	return r, store, finder, mr
}

func loginCookie(t *testing.T, store *Store, userID int64) *http.Cookie {
	t.Helper()
	id, err := store.Create(context.Background(), userID)
	require.NoError(t, err)
	return &http.Cookie{Name: "session_id", Value: store.Sign(id)}
}

func TestRequirePageRedirectsAnonymous(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireActionRejectsAnonymous(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/action", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoadUserAttachesSessionUser(t *testing.T) {
	r, store, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(loginCookie(t, store, 1))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "hi Sarah", w.Body.String())
}

func TestStaleSessionDowngradesToAnonymous(t *testing.T) {
	r, store, finder, _ := newTestRouter(t)

	cookie := loginCookie(t, store, 1)
	delete(finder.users, 1) // user removed after login

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "anonymous", w.Body.String())
}

func TestUserStoreFaultIsServerFault(t *testing.T) {
	r, store, finder, _ := newTestRouter(t)

	cookie := loginCookie(t, store, 1)
	finder.err = errors.New("connection refused")

	// An unavailable identity store is not a logout: the request must
	// fail, not bounce to the login form.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Empty(t, w.Header().Get("Location"))
}

func TestSessionStoreFaultIsServerFault(t *testing.T) {
	r, store, _, mr := newTestRouter(t)

	cookie := loginCookie(t, store, 1)
	mr.SetError("connection refused")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTamperedCookieIsAnonymous(t *testing.T) {
	r, store, _, _ := newTestRouter(t)

	id, err := store.Create(context.Background(), 1)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	// Raw session ID without a valid signature.
	req.AddCookie(&http.Cookie{Name: "session_id", Value: id + ".deadbeef"})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "anonymous", w.Body.String())
}

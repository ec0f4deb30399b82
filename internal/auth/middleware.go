package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	dom "github.com/smowhabuth/SKBday/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

const sessionCookieName = "session_id"

const contextKeyUser = "current_user"

// UserFinder is the slice of the user repo the middleware needs.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (dom.User, error)
}

// UserFromContext returns the authenticated user set by LoadUser, or nil
// for anonymous requests.
func UserFromContext(c *gin.Context) *dom.User {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return nil
	}
	u, ok := v.(*dom.User)
	if !ok {
		return nil
	}
	return u
}

// LoadUser returns a middleware that rehydrates the session user once per
// request and attaches it to the context. A missing, tampered or stale
// session leaves the request anonymous; a session or user store that is
// unavailable is a server fault, not a logout.
func LoadUser(sessions *Store, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(sessionCookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}
		sessionID, ok := sessions.Verify(cookie)
		if !ok {
			c.Next()
			return
		}
		userID, ok, err := sessions.GetUserID(c.Request.Context(), sessionID)
		if err != nil {
			log.Printf("session lookup: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if !ok {
			c.Next()
			return
		}
		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			// User deleted since login: log out silently.
			if errors.Is(err, pgx.ErrNoRows) {
				c.Next()
				return
			}
			log.Printf("session user lookup: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Set(contextKeyUser, &u)
		c.Next()
	}
}

// RequirePage gates browsable pages: anonymous requests are redirected to
// the login form.
func RequirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFromContext(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAction gates write actions: anonymous requests get a 401 instead
// of a redirect.
func RequireAction() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFromContext(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.Next()
	}
}

package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	CookieName  = "itook_session"
	ctxStateKey = "session_state"
)

// Middleware resolves the caller's session from the signed cookie,
// creating a fresh one (and setting the cookie) when the cookie is
// missing, invalid, or points at an expired session.
func Middleware(store *Store, tokens TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var state *State

		if raw, err := c.Cookie(CookieName); err == nil && raw != "" {
			if claims, err := tokens.Parse(raw); err == nil {
				state = store.Get(claims.SessionID)
			}
		}

		if state == nil {
			id, fresh := store.Create()
			signed, exp, err := tokens.Sign(id)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "session setup failed"})
				c.Abort()
				return
			}
			maxAge := int(time.Until(exp).Seconds())
			c.SetCookie(CookieName, signed, maxAge, "/", "", false, true)
			state = fresh
		}

		c.Set(ctxStateKey, state)
		c.Next()
	}
}

// MustGetState returns the session state the middleware attached.
func MustGetState(c *gin.Context) *State {
	v, ok := c.Get(ctxStateKey)
	if !ok {
		return nil
	}
	state, _ := v.(*State)
	return state
}

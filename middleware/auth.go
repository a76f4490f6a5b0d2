package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/JeffersonNayron/Turma-B/config"
	"github.com/JeffersonNayron/Turma-B/models"
	"github.com/JeffersonNayron/Turma-B/services"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// Authenticator resolves a session token to its live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (services.Session, error)
}

// SessionAuth attaches the caller's session to the context. Requests without
// a usable token continue anonymously; a stale session cookie is cleared on
// the way so the browser stops sending it. Only RequireRole and the session
// endpoint turn a missing session into a 401.
func SessionAuth(auth Authenticator, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ReadSessionToken(c)
		if !ok {
			c.Next()
			return
		}

		session, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				config.Logger.Debugw("ignoring stale session token", "error", err, "path", c.Request.URL.Path)
				if _, cookieErr := c.Cookie(SessionCookieName); cookieErr == nil {
					ClearSessionCookie(c, secureCookie)
				}
				c.Next()
				return
			}
			config.Logger.Errorw("session lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireRole lets through only sessions holding one of roles. It must run
// after SessionAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}

		for _, role := range roles {
			if session.Role == role {
				c.Next()
				return
			}
		}

		config.Logger.Warnw("role check failed",
			"sessionID", session.ID,
			"role", session.Role,
			"path", c.Request.URL.Path,
		)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// CurrentSession returns the session SessionAuth attached, if any.
func CurrentSession(c *gin.Context) (services.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return services.Session{}, false
	}
	session, ok := value.(services.Session)
	return session, ok
}

package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"chat_relay/internal/config"
	"chat_relay/internal/domain"
	"chat_relay/internal/service"
	apperrors "chat_relay/pkg/errors"
	"chat_relay/pkg/logger"
)

// SessionMiddleware makes sure every request has a browser identity. A
// missing or unreadable cookie gets a fresh identity and a new cookie;
// a valid one is reused as-is, so identities are never rotated.
func SessionMiddleware(identity service.IdentityProvider, cfg config.SessionConfig, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cfg.CookieName)

		id, err := identity.Resolve(token)
		isNew := false
		if err != nil {
			id, token, err = identity.Issue()
			if err != nil {
				_ = c.Error(fmt.Errorf("issue session: %v: %w", err, apperrors.ErrInternalServer))
				c.Abort()
				return
			}
			isNew = true

			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(cfg.MaxAge.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			log.Debug("Issued new session", "session_id", id)
		}

		c.Set(domain.SessionContextKey, domain.Session{ID: id, IsNew: isNew})
		c.Next()
	}
}

// CurrentSession returns the identity SessionMiddleware stored on c.
func CurrentSession(c *gin.Context) (domain.Session, bool) {
	value, exists := c.Get(domain.SessionContextKey)
	if !exists {
		return domain.Session{}, false
	}
	session, ok := value.(domain.Session)
	return session, ok
}

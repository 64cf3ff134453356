package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/ikkim/jewel-storefront/internal/errors"
	"github.com/ikkim/jewel-storefront/pkg/util"
)

const (
	SessionIDKey       = "session_id"
	SessionTokenHeader = "X-Session-Token"
	sessionTokenQuery  = "token"
)

// SessionMiddleware resolves the caller's storage session from a signed
// token. A request without a usable token starts a fresh session.
type SessionMiddleware struct {
	secret string
	expiry time.Duration
}

func NewSessionMiddleware(secret string, expiry time.Duration) *SessionMiddleware {
	return &SessionMiddleware{secret: secret, expiry: expiry}
}

// Resolve sets the session id on the context and echoes the token in the
// response header
func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token := c.GetHeader(SessionTokenHeader)
		if token == "" {
			// websocket clients cannot set headers
			token = c.Query(sessionTokenQuery)
		}

		var sessionID string
		if token != "" {
			claims, err := util.ValidateSessionToken(token, m.secret)
			switch {
			case err == nil:
				sessionID = claims.SessionID
			case errors.Is(err, util.ErrExpiredToken):
				log.Info("Session token expired, starting new session")
			default:
				log.Warn("Invalid session token, starting new session", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		if sessionID == "" {
			sessionID = util.NewSessionID()
			issued, err := util.GenerateSessionToken(sessionID, m.secret, m.expiry)
			if err != nil {
				log.Error("Failed to issue session token", err)
				apperrors.InternalError(c, "Failed to start session")
				return
			}
			token = issued
			log.Debug("Issued new session", map[string]interface{}{
				"session_id": sessionID,
			})
		}

		c.Set(SessionIDKey, sessionID)
		c.Header(SessionTokenHeader, token)
		c.Next()
	}
}

// GetSessionID returns the session resolved for the request
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID := c.GetString(SessionIDKey)
	return sessionID, sessionID != ""
}

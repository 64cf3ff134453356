package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/jewel-storefront/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "test-session-secret"

func setupSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LoggingMiddleware())
	router.Use(NewSessionMiddleware(testSessionSecret, time.Hour).Resolve())
	router.GET("/test", func(c *gin.Context) {
		sessionID, _ := GetSessionID(c)
		c.JSON(http.StatusOK, gin.H{"session_id": sessionID})
	})
	return router
}

func TestSessionMiddleware_IssuesTokenWhenMissing(t *testing.T) {
	router := setupSessionRouter()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	token := w.Header().Get(SessionTokenHeader)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	claims, err := util.ValidateSessionToken(token, testSessionSecret)
	require.NoError(t, err)
	assert.Contains(t, w.Body.String(), claims.SessionID)
}

func TestSessionMiddleware_ReusesValidToken(t *testing.T) {
	router := setupSessionRouter()
	token, err := util.GenerateSessionToken("session-abc", testSessionSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(SessionTokenHeader, token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, token, w.Header().Get(SessionTokenHeader))
	assert.JSONEq(t, `{"session_id":"session-abc"}`, w.Body.String())
}

func TestSessionMiddleware_AcceptsQueryToken(t *testing.T) {
	router := setupSessionRouter()
	token, err := util.GenerateSessionToken("session-ws", testSessionSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test?token="+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.JSONEq(t, `{"session_id":"session-ws"}`, w.Body.String())
}

func TestSessionMiddleware_ReplacesInvalidToken(t *testing.T) {
	router := setupSessionRouter()
	foreign, err := util.GenerateSessionToken("session-x", "other-secret", time.Hour)
	require.NoError(t, err)

	for _, token := range []string{"garbage", foreign} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(SessionTokenHeader, token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		issued := w.Header().Get(SessionTokenHeader)
		assert.NotEqual(t, token, issued)
		_, err := util.ValidateSessionToken(issued, testSessionSecret)
		assert.NoError(t, err)
		assert.NotContains(t, w.Body.String(), "session-x")
	}
}

func TestSessionMiddleware_ReplacesExpiredToken(t *testing.T) {
	router := setupSessionRouter()
	expired, err := util.GenerateSessionToken("session-old", testSessionSecret, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(SessionTokenHeader, expired)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEqual(t, expired, w.Header().Get(SessionTokenHeader))
	assert.NotContains(t, w.Body.String(), "session-old")
}

func TestLoggingMiddleware_KeepsIncomingRequestID(t *testing.T) {
	router := setupSessionRouter()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

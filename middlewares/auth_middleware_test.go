package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdarmaan6204/nutri-tracker/services"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *services.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := services.NewTokenService("test-secret", time.Hour)

	r := gin.New()
	r.GET("/whoami", AuthMiddleware(tokens), func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return r, tokens
}

func do(r *gin.Engine, modify func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if modify != nil {
		modify(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_NoCredential(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := do(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	r, tokens := newAuthRouter(t)
	token, err := tokens.Issue(7, "alice")
	require.NoError(t, err)

	w := do(r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	r, tokens := newAuthRouter(t)
	token, err := tokens.Issue(7, "alice")
	require.NoError(t, err)

	w := do(r, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_CookieWinsOverHeader(t *testing.T) {
	r, tokens := newAuthRouter(t)
	token, err := tokens.Issue(7, "alice")
	require.NoError(t, err)

	// Valid cookie with a garbage header still authenticates.
	w := do(r, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		req.Header.Set("Authorization", "Bearer garbage")
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// An invalid cookie is not rescued by a valid header.
	w = do(r, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	r, tokens := newAuthRouter(t)
	token, err := tokens.Issue(7, "alice")
	require.NoError(t, err)

	// Token without the Bearer prefix is not accepted.
	w := do(r, func(req *http.Request) {
		req.Header.Set("Authorization", token)
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekremsevim/studiohub/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthTestSetup(t *testing.T) (*auth.JWTService, *gin.Engine) {
	t.Helper()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "studiohub-test",
	})

	router := gin.New()
	authMiddleware := NewAuthMiddleware(jwtService)
	router.GET("/protected", authMiddleware.JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":   GetUserID(c),
			"username": c.GetString(ContextUsername),
			"role":     c.GetString(ContextRole),
		})
	})
	return jwtService, router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService, router := newAuthTestSetup(t)

	accessToken, _, _, err := jwtService.GenerateTokenPair(42, "selin", "TEACHER")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"userId":42`)
	assert.Contains(t, recorder.Body.String(), `"username":"selin"`)
	assert.Contains(t, recorder.Body.String(), `"role":"TEACHER"`)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	_, router := newAuthTestSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestJWTAuth_TamperedToken(t *testing.T) {
	_, router := newAuthTestSetup(t)

	other := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "different-secret",
		AccessTokenExp: time.Hour,
	})
	accessToken, _, _, err := other.GenerateTokenPair(42, "selin", "MEMBER")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRoleRequired(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenExp: time.Hour,
	})
	authMiddleware := NewAuthMiddleware(jwtService)

	router := gin.New()
	router.GET("/teachers-only",
		authMiddleware.JWTAuth(),
		authMiddleware.RoleRequired("TEACHER"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	memberToken, _, _, err := jwtService.GenerateTokenPair(1, "member", "MEMBER")
	require.NoError(t, err)
	teacherToken, _, _, err := jwtService.GenerateTokenPair(2, "teacher", "TEACHER")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/teachers-only", nil)
	req.Header.Set("Authorization", "Bearer "+memberToken)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	req = httptest.NewRequest(http.MethodGet, "/teachers-only", nil)
	req.Header.Set("Authorization", "Bearer "+teacherToken)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

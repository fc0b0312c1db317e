package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clubgate/backend/internal/infrastructure/auth"
	"github.com/clubgate/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testTokenConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
}

func issueToken(t *testing.T, svc *auth.JWTService, username, role string) (*auth.TokenPair, auth.GenerateTokenInput) {
	t.Helper()
	input := auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: username,
		Role:     role,
	}
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)
	return pair, input
}

// guardedRouter mounts handler on GET /guests behind the given middleware.
func guardedRouter(mw gin.HandlerFunc, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	router.GET("/guests", handler)
	return router
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getGuests issues GET /guests with the given Authorization header value
// ("" sends no header).
func getGuests(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guests", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error.Code
}

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	svc := auth.NewJWTService(testTokenConfig())
	pair, input := issueToken(t, svc, "reception1", "reception")

	router := guardedRouter(JWTAuthMiddleware(svc), func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, input.UserID.String(), claims.UserID)
		assert.Equal(t, "reception", claims.Role)
		okHandler(c)
	})

	rec := getGuests(router, "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddlewareRejections(t *testing.T) {
	svc := auth.NewJWTService(testTokenConfig())

	expiredCfg := testTokenConfig()
	expiredCfg.AccessTokenExpiration = -1 * time.Hour
	expiredPair, _ := issueToken(t, auth.NewJWTService(expiredCfg), "reception1", "reception")

	refreshPair, _ := issueToken(t, svc, "reception1", "reception")

	cases := []struct {
		name       string
		authHeader string
		wantCode   string
	}{
		{"missing header", "", "INVALID_TOKEN"},
		{"not a bearer token", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"empty bearer token", "Bearer ", "INVALID_TOKEN"},
		{"garbage token", "Bearer not-a-jwt", "INVALID_TOKEN"},
		{"expired token", "Bearer " + expiredPair.AccessToken, "TOKEN_EXPIRED"},
		// Refresh tokens are signed with a different secret, so this fails
		// signature verification before the token type is even inspected.
		{"refresh token used as access", "Bearer " + refreshPair.RefreshToken, "INVALID_TOKEN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := guardedRouter(JWTAuthMiddleware(svc), okHandler)

			rec := getGuests(router, tc.authHeader)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tc.wantCode, errorCode(t, rec.Body.Bytes()))
		})
	}
}

func TestJWTAuthMiddlewareSkipPaths(t *testing.T) {
	svc := auth.NewJWTService(testTokenConfig())

	t.Run("custom skip path", func(t *testing.T) {
		cfg := DefaultJWTConfig(svc)
		cfg.SkipPaths = append(cfg.SkipPaths, "/public")

		router := gin.New()
		router.Use(JWTAuthMiddlewareWithConfig(cfg))
		router.GET("/public", okHandler)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/public", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("skip path prefix", func(t *testing.T) {
		cfg := DefaultJWTConfig(svc)
		cfg.SkipPathPrefixes = []string{"/docs"}

		router := gin.New()
		router.Use(JWTAuthMiddlewareWithConfig(cfg))
		router.GET("/docs/openapi.json", okHandler)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("default skip paths", func(t *testing.T) {
		router := gin.New()
		router.Use(JWTAuthMiddleware(svc))

		paths := []string{
			"/health",
			"/healthz",
			"/ready",
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		}
		for _, path := range paths {
			router.GET(path, okHandler)
		}

		for _, path := range paths {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code, "path %s should not require a token", path)
		}
	})
}

func TestJWTAuthMiddlewareContextValues(t *testing.T) {
	svc := auth.NewJWTService(testTokenConfig())
	pair, input := issueToken(t, svc, "reception1", "reception")

	var gotUserID, gotUsername, gotRole string
	router := guardedRouter(JWTAuthMiddleware(svc), func(c *gin.Context) {
		gotUserID = GetJWTUserID(c)
		gotUsername = GetJWTUsername(c)
		gotRole = GetJWTRole(c)
		okHandler(c)
	})

	rec := getGuests(router, "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, input.UserID.String(), gotUserID)
	assert.Equal(t, "reception1", gotUsername)
	assert.Equal(t, "reception", gotRole)
}

func TestRequireRole(t *testing.T) {
	svc := auth.NewJWTService(testTokenConfig())

	deleteGuest := func(allowed ...string) *gin.Engine {
		router := gin.New()
		router.Use(JWTAuthMiddleware(svc))
		router.DELETE("/guests/:id", RequireRole(allowed...), okHandler)
		return router
	}

	send := func(router *gin.Engine, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/guests/"+uuid.NewString(), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allows matching role", func(t *testing.T) {
		pair, _ := issueToken(t, svc, "admin1", "admin")
		rec := send(deleteGuest("admin"), pair.AccessToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects wrong role", func(t *testing.T) {
		pair, _ := issueToken(t, svc, "reception1", "reception")
		rec := send(deleteGuest("admin"), pair.AccessToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(t, rec.Body.Bytes()))
	})

	t.Run("allows any of several roles", func(t *testing.T) {
		pair, _ := issueToken(t, svc, "lawyer1", "lawyer")
		rec := send(deleteGuest("admin", "lawyer"), pair.AccessToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestClaimAccessorsOutsideAuthenticatedRequest(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetJWTClaims(c))
	assert.Empty(t, GetJWTUserID(c))
	assert.Empty(t, GetJWTUsername(c))
	assert.Empty(t, GetJWTRole(c))
	assert.Panics(t, func() { MustGetJWTClaims(c) })
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	svc := auth.NewJWTService(testTokenConfig())
	pair, input := issueToken(t, svc, "reception1", "reception")

	var got *auth.Claims
	router := guardedRouter(OptionalJWTAuthMiddleware(svc), func(c *gin.Context) {
		got = GetJWTClaims(c)
		okHandler(c)
	})

	t.Run("no token passes through anonymously", func(t *testing.T) {
		got = nil
		rec := getGuests(router, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, got)
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		got = nil
		rec := getGuests(router, "Bearer "+pair.AccessToken)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, input.UserID.String(), got.UserID)
	})

	t.Run("invalid token passes through anonymously", func(t *testing.T) {
		got = nil
		rec := getGuests(router, "Bearer not-a-jwt")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, got)
	})
}

func TestJWTAuthMiddlewareCustomOnError(t *testing.T) {
	svc := auth.NewJWTService(testTokenConfig())

	called := false
	cfg := DefaultJWTConfig(svc)
	cfg.OnError = func(c *gin.Context, err error) {
		called = true
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"custom": "error"})
	}

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/guests", okHandler)

	rec := getGuests(router, "")

	assert.True(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"custom":"error"}`, rec.Body.String())
}

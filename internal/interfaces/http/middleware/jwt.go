package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/clubgate/backend/internal/infrastructure/auth"
	"github.com/clubgate/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Keys under which the middleware leaves claims on the gin context
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTMiddlewareConfig configures token enforcement
type JWTMiddlewareConfig struct {
	// JWTService validates access tokens
	JWTService *auth.JWTService
	// SkipPaths bypass authentication entirely (login, health)
	SkipPaths []string
	// SkipPathPrefixes bypass authentication by prefix match
	SkipPathPrefixes []string
	// OnError replaces the default 401 response when set
	OnError func(c *gin.Context, err error)
	// Logger, when set, records auth failures and successes
	Logger *zap.Logger
}

// DefaultJWTConfig skips the endpoints a client must reach before it can
// hold a token
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}
}

// JWTAuthMiddleware enforces JWT authentication with the default config
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

func (cfg JWTMiddlewareConfig) skips(path string) bool {
	for _, skip := range cfg.SkipPaths {
		if path == skip {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader(AuthHeaderKey)
	switch {
	case header == "":
		return "", errors.New("missing authorization header")
	case !strings.HasPrefix(header, BearerPrefix):
		return "", errors.New("authorization header is not a bearer token")
	}

	token := strings.TrimPrefix(header, BearerPrefix)
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}

func storeClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTUsernameKey, claims.Username)
	c.Set(JWTRoleKey, claims.Role)
}

// JWTAuthMiddlewareWithConfig enforces JWT authentication with a custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.skips(c.Request.URL.Path) {
			c.Next()
			return
		}

		token, err := bearerToken(c)
		if err != nil {
			rejectUnauthenticated(c, cfg, auth.ErrInvalidToken, err.Error())
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			rejectUnauthenticated(c, cfg, err, "token validation failed")
			return
		}

		storeClaims(c, claims)

		// Propagate the user into the request context so SQL and service
		// logs correlate with the operator
		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		if cfg.Logger != nil {
			cfg.Logger.Debug("JWT authentication successful",
				zap.String("user_id", claims.UserID),
				zap.String("username", claims.Username),
				zap.String("role", claims.Role),
			)
		}

		c.Next()
	}
}

// RequireRole rejects requests whose token carries none of the allowed
// roles. Must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetJWTRole(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient role for this operation",
			},
		})
	}
}

func rejectUnauthenticated(c *gin.Context, cfg JWTMiddlewareConfig, err error, detail string) {
	if cfg.OnError != nil {
		cfg.OnError(c, err)
		return
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("detail", detail),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code, message := "UNAUTHORIZED", "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = "TOKEN_EXPIRED", "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken):
		code, message = "INVALID_TOKEN", "Invalid token"
	case errors.Is(err, auth.ErrInvalidTokenType):
		code, message = "INVALID_TOKEN_TYPE", "Invalid token type"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		code, message = "TOKEN_NOT_VALID", "Token is not yet valid"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// GetJWTClaims returns the validated claims, or nil outside an
// authenticated request
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// MustGetJWTClaims returns the validated claims or panics. Only for handlers
// that are provably behind JWTAuthMiddleware.
func MustGetJWTClaims(c *gin.Context) *auth.Claims {
	claims := GetJWTClaims(c)
	if claims == nil {
		panic("jwt claims not found in context")
	}
	return claims
}

func contextString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetJWTUserID returns the authenticated user ID, or ""
func GetJWTUserID(c *gin.Context) string {
	return contextString(c, JWTUserIDKey)
}

// GetJWTUsername returns the authenticated username, or ""
func GetJWTUsername(c *gin.Context) string {
	return contextString(c, JWTUsernameKey)
}

// GetJWTRole returns the authenticated role, or ""
func GetJWTRole(c *gin.Context) string {
	return contextString(c, JWTRoleKey)
}

// OptionalJWTAuthMiddleware extracts claims when a valid token is present
// but never rejects the request. Used where anonymous access is fine and a
// token only enriches logging.
func OptionalJWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			c.Next()
			return
		}

		if claims, err := jwtService.ValidateAccessToken(token); err == nil {
			storeClaims(c, claims)
		}
		c.Next()
	}
}

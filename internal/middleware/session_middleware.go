package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/podstore/podstore/internal/service"
	"github.com/podstore/podstore/internal/utils"
)

// SessionMiddleware authenticates requests with a bearer session token.
// Revoked (signed-out) tokens are rejected like any other invalid token.
type SessionMiddleware struct {
	authService *service.AuthService
	rateLimiter *InvalidAuthRateLimiter
}

// NewSessionMiddleware constructs a SessionMiddleware.
func NewSessionMiddleware(authService *service.AuthService) *SessionMiddleware {
	return &SessionMiddleware{
		authService: authService,
		rateLimiter: NewInvalidAuthRateLimiter(),
	}
}

// Handle returns a Gin middleware function that enforces a valid session.
func (m *SessionMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			m.handleAuthError(c, "UNAUTHORIZED", "Missing authorization header")
			return
		}

		claims, err := m.authService.ValidateSession(c.Request.Context(), token)
		if err != nil {
			m.handleAuthError(c, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("claims", claims)
		c.Next()
	}
}

func (m *SessionMiddleware) handleAuthError(c *gin.Context, code, message string) {
	// Apply rate limit for invalid auth attempts
	ip := c.ClientIP()
	if !m.rateLimiter.Allow(ip) {
		utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many invalid authentication attempts")
		c.Abort()
		return
	}

	utils.Error(c, 401, code, message)
	c.Abort()
}

// BearerToken extracts the bearer token from the Authorization header, or
// returns an empty string.
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// SessionClaims returns the validated claims from context, if any.
func SessionClaims(c *gin.Context) *utils.SessionClaims {
	v, _ := c.Get("claims")
	if v == nil {
		return nil
	}
	return v.(*utils.SessionClaims)
}

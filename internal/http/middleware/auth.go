package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/phoneauth/domain"
)

// Context keys set by the gate for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "user_role"
)

// TokenCookie is the cookie name used as the fallback token carrier.
const TokenCookie = "token"

// AuthMW wraps the token service for the authorization gate
type AuthMW struct {
	tokenSvc domain.TokenService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc}
}

// Authorize verifies the bearer token and enforces the required role set.
// An empty set admits any authenticated user. The resolved identity (id and
// role, always both) is attached to the request context.
func (mw *AuthMW) Authorize(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthenticated(c)
			return
		}

		// Signature and expiry failures look identical to the client.
		claims, err := mw.tokenSvc.Validate(token)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		if len(requiredRoles) > 0 && !roleAllowed(claims.Role, requiredRoles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Forbidden: Insufficient permissions",
			})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// Identity returns the identity the gate attached to the context.
func Identity(c *gin.Context) (domain.Identity, bool) {
	userID, ok := c.Get(CtxUserID)
	if !ok {
		return domain.Identity{}, false
	}
	role, ok := c.Get(CtxRole)
	if !ok {
		return domain.Identity{}, false
	}
	return domain.Identity{UserID: userID.(uint), Role: role.(string)}, true
}

// extractToken reads the token from the Authorization header, falling back
// to the cookie carrier.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return cookie
}

func roleAllowed(role string, required []string) bool {
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Unauthenticated",
	})
}

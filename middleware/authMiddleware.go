package middleware

import (
	"net/http"
	"strings"

	"go-restaurant-booking/helpers"

	"github.com/gin-gonic/gin"
)

// Context keys set by the authentication middleware.
const (
	ContextUID   = "uid"
	ContextEmail = "email"
	ContextName  = "name"
	ContextRole  = "user_role"
)

func clientToken(c *gin.Context) string {
	if token := helpers.ExtractBearerToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	return strings.TrimSpace(c.GetHeader("token"))
}

func setClaims(c *gin.Context, claims *helpers.SignedDetails) {
	c.Set(ContextUID, claims.Uid)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextName, claims.Name)
	c.Set(ContextRole, claims.User_role)
}

// Authentication rejects requests without a valid token.
func Authentication(tokens *helpers.TokenHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := tokens.ValidateToken(clientToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthentication lets anonymous requests through but still rejects a
// token that is present and invalid.
func OptionalAuthentication(tokens *helpers.TokenHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := clientToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := tokens.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

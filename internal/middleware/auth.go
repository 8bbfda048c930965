package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gamenight/backend/internal/auth"
	"github.com/gamenight/backend/internal/models"
)

// identityKey is the gin context key carrying the requester identity.
const identityKey = "identity"

// GetIdentity extracts the requester identity from the context. Returns the
// anonymous sentinel when no valid session was presented.
func GetIdentity(c *gin.Context) models.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(models.Identity); ok {
			return id
		}
	}
	return models.Identity{}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// OptionalAuth decodes a session token if one is present and stores the
// identity in the context. Missing or invalid tokens leave the request
// anonymous instead of rejecting it; endpoints that render differently for
// logged-in users rely on this.
func OptionalAuth(creds *auth.CredentialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if identity, err := creds.ParseSession(token); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects requests without a valid session.
func RequireAuth(creds *auth.CredentialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "authorization token required",
			})
			return
		}
		identity, err := creds.ParseSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid or expired token",
			})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authClaimsKey = "auth_claims"

// AuthOptional decodes a bearer token when one is sent and stores its
// claims for handlers that care. The desk runs without login, so a missing
// or invalid token still passes through.
func AuthOptional(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if strings.HasPrefix(header, "Bearer ") {
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err == nil && token.Valid {
				if claims, ok := token.Claims.(jwt.MapClaims); ok {
					c.Set(authClaimsKey, claims)
				}
			}
		}
		c.Next()
	}
}

// GetAuthClaims returns the decoded token claims, if any.
func GetAuthClaims(c *gin.Context) (jwt.MapClaims, bool) {
	if v, ok := c.Get(authClaimsKey); ok {
		if claims, ok := v.(jwt.MapClaims); ok {
			return claims, true
		}
	}
	return nil, false
}

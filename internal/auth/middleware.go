package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const claimsKey = "auth.claims"

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// Authenticate rejects requests without a valid bearer token.
func Authenticate(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication credentials were not provided."})
			return
		}
		claims, err := tm.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token."})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Identify attaches the claims of a valid token and lets anonymous
// requests through.
func Identify(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := tm.Parse(token); err == nil {
				c.Set(claimsKey, claims)
			}
		}
		c.Next()
	}
}

// RequirePermission must run after Authenticate.
func RequirePermission(codename string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication credentials were not provided."})
			return
		}
		if !claims.HasPermission(codename) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "You do not have permission to perform this action."})
			return
		}
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// ThrottleKey counts authenticated users by id and everyone else by ip.
func ThrottleKey(c *gin.Context) string {
	if claims, ok := ClaimsFrom(c); ok {
		return "user:" + strconv.FormatUint(uint64(claims.UserID), 10)
	}
	return "ip:" + c.ClientIP()
}

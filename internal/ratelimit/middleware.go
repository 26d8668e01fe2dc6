package ratelimit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(c *gin.Context) string

func Middleware(l Limiter, keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		key := c.FullPath() + "|" + keyFn(c)
		if !l.Allow(c.Request.Context(), key) {
			logrus.WithFields(logrus.Fields{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			}).Warn("request throttled")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Request was throttled."})
			return
		}
		c.Next()
	}
}

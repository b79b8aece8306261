package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/simulator"
)

// ContextUserID is the gin context key holding the verified token subject.
const ContextUserID = "userId"

// bearerAuth rejects requests without a valid simulator token.
func bearerAuth(backend *simulator.Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(c, errors.NewUnauthorizedError("Missing or invalid Authorization header"))
			return
		}
		claims, err := backend.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set(ContextUserID, claims.Subject)
		c.Next()
	}
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("HTTP request", map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}

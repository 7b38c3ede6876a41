package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/petcare/internal/server/handlers"
	"github.com/mamadbah2/petcare/pkg/clients/auth"
)

// New wires the Gin engine with required routes and middlewares. A nil auth
// client enables the header-based development fallback.
func New(handler *handlers.SupplyHandler, authClient auth.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api", authMiddleware(authClient, logger))
	api.POST("/pets/:petId/supplies", handler.Create)
	api.GET("/pets/:petId/supplies", handler.List)
	api.GET("/supplies/:id", handler.Get)
	api.PATCH("/supplies/:id", handler.Update)
	api.POST("/supplies/:id/finish", handler.MarkFinished)
	api.PATCH("/supplies/:id/finish-date", handler.UpdateFinishDate)
	api.DELETE("/supplies/:id", handler.Delete)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

// authMiddleware resolves the caller identity before any supply operation
// runs. With a configured auth client it verifies the bearer token; without
// one it trusts the X-User-ID header, for local development only.
func authMiddleware(authClient auth.Client, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		if authClient == nil {
			userID := c.GetHeader("X-User-ID")
			if userID == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
				return
			}
			c.Set(handlers.CallerIDKey, userID)
			c.Next()
			return
		}

		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || token == c.GetHeader("Authorization") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, err := authClient.VerifySession(c.Request.Context(), token)
		if err != nil {
			logger.Warn("session verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		c.Set(handlers.CallerIDKey, userID)
		c.Next()
	}
}

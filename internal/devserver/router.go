// Package devserver is a local, in-memory GraphQL-shaped endpoint that
// answers the documents the client sends. It is meant for development and
// integration tests, not as a GraphQL engine.
package devserver

import (
	"net/http"
	"time"

	"evently-client/internal/shared/config"
	"evently-client/internal/shared/middleware"
	"evently-client/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the endpoint's middleware and routes
func NewRouter(cfg *config.Config, store *Store, l *logger.Logger) *gin.Engine {
	tokens := NewTokens(cfg.DevServer.JWT.Secret, cfg.DevServer.JWT.JWTExpiresIn)
	controller := NewController(NewResolvers(store, tokens), l)

	engine := gin.New()
	engine.Use(middleware.RequestLogger(l), gin.Recovery())
	engine.Use(cors.New(corsConfig(cfg.DevServer.AllowedOrigins)))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})
	engine.POST("/graphql", middleware.OptionalAuth(tokens), controller.GraphQL)

	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"POST", "GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	return cfg
}

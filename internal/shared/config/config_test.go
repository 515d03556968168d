package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("GRAPHQL_URL", "")
		t.Setenv("JWT_EXPIRES_IN", "")
		t.Setenv("CORS_ALLOWED_ORIGINS", "")

		cfg := Load()

		assert.Equal(t, "http://localhost:8000/graphql", cfg.GraphQLURL)
		assert.Equal(t, time.Hour, cfg.DevServer.JWT.JWTExpiresIn)
		assert.Empty(t, cfg.DevServer.AllowedOrigins)
		assert.Equal(t, ":8000", cfg.GetServerAddress())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("GRAPHQL_URL", "https://api.example.com/graphql")
		t.Setenv("JWT_EXPIRES_IN", "120")
		t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
		t.Setenv("GIN_MODE", "release")

		cfg := Load()

		assert.Equal(t, "https://api.example.com/graphql", cfg.GraphQLURL)
		assert.Equal(t, 2*time.Minute, cfg.DevServer.JWT.JWTExpiresIn)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.DevServer.AllowedOrigins)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("malformed numbers fall back", func(t *testing.T) {
		t.Setenv("JWT_EXPIRES_IN", "soon")
		t.Setenv("READ_TIMEOUT", "later")

		cfg := Load()

		assert.Equal(t, time.Hour, cfg.DevServer.JWT.JWTExpiresIn)
		assert.Equal(t, 15*time.Second, cfg.DevServer.ReadTimeout)
	})
}

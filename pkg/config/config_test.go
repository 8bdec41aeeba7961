package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvList_TrimsAndSkipsEmpty(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,http://localhost:5173,")
	assert.Equal(t, []string{"https://a.example", "http://localhost:5173"}, envList("ALLOWED_ORIGINS", ""))
}

func TestEnvList_Fallback(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")
	assert.Equal(t, []string{"http://x"}, envList("ALLOWED_ORIGINS", "http://x"))
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("STORE_TIMEOUT", "3s")
	assert.Equal(t, 3*time.Second, envDuration("STORE_TIMEOUT", time.Second))

	t.Setenv("STORE_TIMEOUT", "garbage")
	assert.Equal(t, time.Second, envDuration("STORE_TIMEOUT", time.Second))

	t.Setenv("STORE_TIMEOUT", "-5s")
	assert.Equal(t, time.Second, envDuration("STORE_TIMEOUT", time.Second))
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "9090")
	cfg := Load()
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "authenticated", cfg.Supabase.JWTAudience)
}

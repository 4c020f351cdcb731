package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "STORE_DRIVER", "POSTGRES_URL", "MONGO_URL", "LLM_PROVIDER", "CORS_ORIGINS",
		"LLM_TIMEOUT", "TRANSCRIBE_TIMEOUT", "SUGGESTION_CACHE_TTL", "SESSION_TTL",
		"RATE_LIMIT_PER_MINUTE", "MAX_UPLOAD_MB", "APP_BASE_URL", "TRUSTED_PROXIES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreFile, cfg.StoreDriver)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 120*time.Second, cfg.TranscribeTimeout)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 20, cfg.RateLimitPerMinute)
	assert.Equal(t, int64(100<<20), cfg.MaxUploadBytes)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("POSTGRES_URL", "postgres://voya:voya@db:5432/voya")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://voya.app")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("MAX_UPLOAD_MB", "10")
	t.Setenv("APP_BASE_URL", "https://voya.app/")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, []string{"http://localhost:3000", "https://voya.app"}, cfg.CORSOrigins)
	assert.Equal(t, 15*time.Second, cfg.LLMTimeout)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "https://voya.app", cfg.AppBaseURL)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"STORE_DRIVER": "postgres"}},
		{"mongo without url", map[string]string{"STORE_DRIVER": "mongo"}},
		{"unknown driver", map[string]string{"STORE_DRIVER": "sqlite"}},
		{"unknown provider", map[string]string{"LLM_PROVIDER": "llama"}},
		{"bad duration", map[string]string{"SESSION_TTL": "soon"}},
		{"bad int", map[string]string{"RATE_LIMIT_PER_MINUTE": "many"}},
		{"bad trusted proxy", map[string]string{"TRUSTED_PROXIES": "proxy.internal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Port    string
	GinMode string

	StoreDriver string
	DataDir     string
	UploadDir   string
	PostgresURL string
	MongoURL    string
	MongoDB     string

	RedisURL      string
	RedisPassword string

	LLMProvider   string
	OpenAIKey     string
	OpenAIModel   string
	GeminiKey     string
	GeminiModel   string
	GoogleMapsKey string

	JWTSecret   string
	CORSOrigins []string
	AppBaseURL  string

	// TrustedProxies lists the proxy IPs/CIDRs allowed to set X-Forwarded-For.
	// Empty means the client address is always the socket peer.
	TrustedProxies []string

	LLMTimeout         time.Duration
	TranscribeTimeout  time.Duration
	SuggestionCacheTTL time.Duration
	SessionTTL         time.Duration
	RateLimitPerMinute int
	MaxUploadBytes     int64

	LogLevel  string
	LogFormat string
	LogOutput string
	LogFile   string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvWithDefault("PORT", "8080"),
		GinMode:        getEnvWithDefault("GIN_MODE", "release"),
		StoreDriver:    strings.ToLower(getEnvWithDefault("STORE_DRIVER", StoreFile)),
		DataDir:        getEnvWithDefault("DATA_DIR", "data"),
		UploadDir:      getEnvWithDefault("UPLOAD_DIR", "uploads"),
		PostgresURL:    os.Getenv("POSTGRES_URL"),
		MongoURL:       os.Getenv("MONGO_URL"),
		MongoDB:        getEnvWithDefault("MONGO_DB", "voya"),
		RedisURL:       os.Getenv("REDIS_URL"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		LLMProvider:    strings.ToLower(getEnvWithDefault("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		GoogleMapsKey:  os.Getenv("GOOGLE_MAPS_API_KEY"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		CORSOrigins:    splitCSV(os.Getenv("CORS_ORIGINS")),
		TrustedProxies: splitCSV(os.Getenv("TRUSTED_PROXIES")),
		AppBaseURL:     strings.TrimRight(getEnvWithDefault("APP_BASE_URL", "http://localhost:3000"), "/"),
		LogLevel:       getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvWithDefault("LOG_FORMAT", "text"),
		LogOutput:      getEnvWithDefault("LOG_OUTPUT", "stdout"),
		LogFile:        getEnvWithDefault("LOG_FILE", "logs/voya.log"),
	}

	var err error
	if cfg.LLMTimeout, err = getDuration("LLM_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.TranscribeTimeout, err = getDuration("TRANSCRIBE_TIMEOUT", 120*time.Second); err != nil {
		return nil, err
	}
	if cfg.SuggestionCacheTTL, err = getDuration("SUGGESTION_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 2*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = getInt("RATE_LIMIT_PER_MINUTE", 20); err != nil {
		return nil, err
	}
	maxUploadMB, err := getInt("MAX_UPLOAD_MB", 100)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUploadMB) << 20

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreFile:
	case StorePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("STORE_DRIVER=postgres requires POSTGRES_URL")
		}
	case StoreMongo:
		if c.MongoURL == "" {
			return fmt.Errorf("STORE_DRIVER=mongo requires MONGO_URL")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.LLMProvider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			return fmt.Errorf("invalid TRUSTED_PROXIES entry %q", proxy)
		}
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

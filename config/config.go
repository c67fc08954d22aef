package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string

	HTTP      HTTPConfig
	RateLimit RateLimitConfig

	DatabaseURL string
	Redis       RedisConfig
	CacheTTL    time.Duration

	OpenAI OpenAIConfig
}

type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type RateLimitConfig struct {
	Capacity int
	Refill   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type OpenAIConfig struct {
	APIKey string
	Model  string
	APIURL string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	p := &parser{}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "production"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTP: HTTPConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ReadTimeout:     p.duration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    p.duration("HTTP_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     p.duration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: p.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			Capacity: p.int("RATE_LIMIT_CAPACITY", 5),
			Refill:   p.duration("RATE_LIMIT_REFILL", time.Minute),
		},
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       p.int("REDIS_DB", 0),
		},
		CacheTTL: p.duration("CACHE_TTL", 24*time.Hour),
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIURL: getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		},
	}

	if p.err != nil {
		return nil, p.err
	}
	if cfg.RateLimit.Capacity <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_CAPACITY must be positive, got %d", cfg.RateLimit.Capacity)
	}
	return cfg, nil
}

// getEnv returns the environment value for key or defaultValue when unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parser keeps the first conversion error so FromEnv can report it once.
type parser struct {
	err error
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d
}

func (p *parser) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n
}

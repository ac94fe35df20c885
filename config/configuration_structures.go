package config

import (
	"fmt"
	"time"
)

type APIConfig struct {
	BaseURL       string `yaml:"base_url"`
	Timeout       string `yaml:"timeout"`
	UploadTimeout string `yaml:"upload_timeout"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SessionConfig : имена cookie и время жизни сессии.
// TokenCookie хранится долго (аналог localStorage), SessionCookie живет до закрытия вкладки (аналог sessionStorage)
type SessionConfig struct {
	TokenCookie         string `yaml:"token_cookie"`
	SessionCookie       string `yaml:"session_cookie"`
	UserCookie          string `yaml:"user_cookie"`
	RegisterEmailCookie string `yaml:"register_email_cookie"`
	DurableTTL          string `yaml:"durable_ttl"`
	ProfileCacheTTL     string `yaml:"profile_cache_ttl"`
	Secure              bool   `yaml:"secure"`
}

type UploadConfig struct {
	MaxSizeBytes int64    `yaml:"max_size_bytes"`
	AllowedTypes []string `yaml:"allowed_types"`
}

type SearchConfig struct {
	Debounce  string `yaml:"debounce"`
	MinLength int    `yaml:"min_length"`
}

// PagesConfig : адреса страниц, на которые перенаправляет guard
type PagesConfig struct {
	Entry     string `yaml:"entry"`
	Verify    string `yaml:"verify"`
	Guest     string `yaml:"guest"`
	Dashboard string `yaml:"dashboard"`
}

func parseDuration(name, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("неверное значение %s (%q): %w", name, value, err)
	}
	return d, nil
}

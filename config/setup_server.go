package config

import (
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultMaxUploadBytes = 25 * 1024 * 1024
	DefaultDebounce       = 500 * time.Millisecond
	DefaultMinQueryLength = 2
)

// DefaultAllowedTypes : PDF, DOC и DOCX
var DefaultAllowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type AppConfig struct {
	ServerAddr     string         `yaml:"serverAddr"`
	API            APIConfig      `yaml:"api"`
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	Session        SessionConfig  `yaml:"session"`
	Upload         UploadConfig   `yaml:"upload"`
	Search         SearchConfig   `yaml:"search"`
	Pages          PagesConfig    `yaml:"pages"`
}

// LoadConfig : читает config.yaml, затем .env и переменные окружения PORTAL_*.
// Отсутствующий yaml файл не является ошибкой, если все нужное задано через окружение
func LoadConfig(path string) (*AppConfig, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("[Config] файл .env не найден, используются переменные окружения: %v", err)
	}

	var cfg AppConfig

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("ошибка разбора %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("[Config] файл %s не найден, используются значения по умолчанию", path)
	default:
		return nil, err
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setString(&cfg.ServerAddr, "PORTAL_SERVER_ADDR")
	setString(&cfg.API.BaseURL, "PORTAL_API_BASE_URL")
	setString(&cfg.API.Timeout, "PORTAL_API_TIMEOUT")
	setString(&cfg.DatabaseConfig.DSN, "PORTAL_DATABASE_DSN")
	setString(&cfg.RedisConfig.Addr, "PORTAL_REDIS_ADDR")
	setString(&cfg.RedisConfig.Password, "PORTAL_REDIS_PASSWORD")
	setString(&cfg.Session.ProfileCacheTTL, "PORTAL_PROFILE_CACHE_TTL")

	if v := os.Getenv("PORTAL_SESSION_SECURE"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.Session.Secure = parsed
		}
	}
}

func setString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// Validate : проверяет обязательные поля и заполняет значения по умолчанию
func (c *AppConfig) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("не задан api.base_url")
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")

	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}

	if c.Session.TokenCookie == "" {
		c.Session.TokenCookie = "rpg_auth_token"
	}
	if c.Session.SessionCookie == "" {
		c.Session.SessionCookie = "rpg_auth_token_session"
	}
	if c.Session.UserCookie == "" {
		c.Session.UserCookie = "rpg_user_data"
	}
	if c.Session.RegisterEmailCookie == "" {
		c.Session.RegisterEmailCookie = "registerEmail"
	}

	if c.Upload.MaxSizeBytes <= 0 {
		c.Upload.MaxSizeBytes = DefaultMaxUploadBytes
	}
	if len(c.Upload.AllowedTypes) == 0 {
		c.Upload.AllowedTypes = DefaultAllowedTypes
	}
	if c.Search.MinLength <= 0 {
		c.Search.MinLength = DefaultMinQueryLength
	}

	if c.Pages.Entry == "" {
		c.Pages.Entry = "/index"
	}
	if c.Pages.Verify == "" {
		c.Pages.Verify = "/verify-email"
	}
	if c.Pages.Guest == "" {
		c.Pages.Guest = "/guest"
	}
	if c.Pages.Dashboard == "" {
		c.Pages.Dashboard = "/dashboard"
	}

	durations := []struct {
		name  string
		value string
	}{
		{"api.timeout", c.API.Timeout},
		{"api.upload_timeout", c.API.UploadTimeout},
		{"session.durable_ttl", c.Session.DurableTTL},
		{"session.profile_cache_ttl", c.Session.ProfileCacheTTL},
		{"search.debounce", c.Search.Debounce},
	}
	for _, d := range durations {
		if _, err := parseDuration(d.name, d.value, 0); err != nil {
			return err
		}
	}

	return nil
}

func (c *AppConfig) APITimeout() time.Duration {
	d, _ := parseDuration("api.timeout", c.API.Timeout, 10*time.Second)
	return d
}

func (c *AppConfig) UploadTimeout() time.Duration {
	d, _ := parseDuration("api.upload_timeout", c.API.UploadTimeout, 30*time.Minute)
	return d
}

func (c *AppConfig) DurableTTL() time.Duration {
	d, _ := parseDuration("session.durable_ttl", c.Session.DurableTTL, 7*24*time.Hour)
	return d
}

// ProfileCacheTTL : 0 отключает кэширование профиля
func (c *AppConfig) ProfileCacheTTL() time.Duration {
	d, _ := parseDuration("session.profile_cache_ttl", c.Session.ProfileCacheTTL, 0)
	return d
}

func (c *AppConfig) SearchDebounce() time.Duration {
	d, _ := parseDuration("search.debounce", c.Search.Debounce, DefaultDebounce)
	return d
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:              serverAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}

package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	EnvDevelopment = "DEV"
	EnvProduction  = "PROD"
)

const (
	defaultCatalog          = "Solo Leveling,Chainsaw Man,Jujutsu Kaisen"
	defaultRequestTimeoutMs = 10000
)

type AppConfig struct {
	ListenAddr                  string  `validate:"required"`
	APIBaseURL                  string  `validate:"required,url"`
	SubscribeEndpoint           string  `validate:"required,url"`
	UnsubscribeEndpointTemplate string  `validate:"required,url,contains={token}"`
	ProxyURL                    string  `validate:"omitempty,url"`
	DefaultLanguage             string  `validate:"required"`
	Catalog                     Catalog `validate:"min=1,dive,required"`
	RequestTimeout              time.Duration
	LogLevel                    slog.Level
	AppEnv                      string // EnvDevelopment or EnvProduction
}

var Config AppConfig

func LoadConfig() {
	cfg := AppConfig{}

	cfg.AppEnv = os.Getenv("APP_ENV")
	cfg.ListenAddr = loadOptional("LISTEN_ADDR", ":8080")
	cfg.APIBaseURL = strings.TrimRight(loadRequired("API_BASE_URL"), "/")
	cfg.SubscribeEndpoint = loadOptional("SUBSCRIBE_ENDPOINT", cfg.APIBaseURL+"/subscribe")
	cfg.UnsubscribeEndpointTemplate = loadOptional("UNSUBSCRIBE_ENDPOINT_TEMPLATE", cfg.APIBaseURL+"/unsubscribe/{token}")
	cfg.ProxyURL = os.Getenv("PROXY_URL")
	cfg.DefaultLanguage = loadOptional("DEFAULT_LANGUAGE", "it")
	cfg.Catalog = ParseCatalog(loadOptional("CATALOG", defaultCatalog))

	timeoutMs, err := strconv.Atoi(loadOptional("REQUEST_TIMEOUT_MS", strconv.Itoa(defaultRequestTimeoutMs)))
	if err != nil || timeoutMs <= 0 {
		slog.Error("Invalid REQUEST_TIMEOUT_MS, using default", "error", err)
		timeoutMs = defaultRequestTimeoutMs
	}
	cfg.RequestTimeout = time.Duration(timeoutMs) * time.Millisecond

	lvlString := loadOptional("LOG_LEVEL", "INFO")
	cfg.LogLevel, err = parseLogLevel(lvlString)
	if err != nil {
		slog.Error("Invalid LOG_LEVEL", "error", err)
		cfg.LogLevel = slog.LevelInfo
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	Config = cfg
}

func (c AppConfig) Validate() error {
	return validator.New().Struct(c)
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

func loadRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Required env var not set", "key", key)
		os.Exit(1)
	}
	return value
}

func loadOptional(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c AppConfig) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

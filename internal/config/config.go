package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// StaticDir holds the built browser client. An empty value disables
	// static serving.
	StaticDir              string `mapstructure:"static_dir"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// ShutdownTimeout returns the graceful shutdown budget.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Database drivers accepted by DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite memory"`
	// URL is a Postgres connection string or a SQLite file path.
	URL string `mapstructure:"url" validate:"required_unless=Driver memory"`
}

// LLM providers accepted by LLMConfig.Provider.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider           string `mapstructure:"provider" validate:"required,oneof=gemini ollama"`
	GeminiAPIKey       string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	ModelName          string `mapstructure:"model_name" validate:"required"`
	OllamaURL          string `mapstructure:"ollama_url" validate:"omitempty,url"`
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds" validate:"gt=0"`
	// RequestsPerMinute caps outbound model calls. Zero disables the limit.
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"gte=0"`
	// CacheSize bounds the enrichment result cache. Zero disables caching.
	CacheSize int `mapstructure:"cache_size" validate:"gte=0"`
}

// Timeout returns the per-call enrichment budget.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

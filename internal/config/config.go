package config

// Config holds all server configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Edit     EditConfig     `mapstructure:"edit"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
}

// AuthConfig contains identity token settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0,lte=43200"`
}

// LLMConfig contains settings for AI card generation.
// Generation is disabled when GeminiAPIKey is empty.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name" validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0,lte=60"`
	CardCount         int    `mapstructure:"card_count" validate:"gt=0,lte=100"`
}

// Enabled reports whether a generation backend is configured.
func (c LLMConfig) Enabled() bool {
	return c.GeminiAPIKey != ""
}

// EditConfig tunes bulk card edits.
type EditConfig struct {
	// MaxConcurrency caps simultaneous writes in one bulk commit. Zero means unlimited.
	MaxConcurrency int `mapstructure:"max_concurrency" validate:"gte=0"`
}

// ClientConfig holds settings for the command line client.
type ClientConfig struct {
	ServerURL      string `mapstructure:"server_url" validate:"required,url"`
	Token          string `mapstructure:"token" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gt=0"`
	MaxConcurrency int    `mapstructure:"max_concurrency" validate:"gte=0"`
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for every environment variable read by Load.
const EnvPrefix = "FLASHDECK"

// Load configuration from environment variables and optionally a
// config.yaml in the working directory. Environment variables take
// precedence over values from the file.
func Load() (*Config, error) {
	v := newViper()
	setServerDefaults(v)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadAuth loads only the identity token settings. Tools that mint tokens
// use it so they do not need database or server settings.
func LoadAuth() (*AuthConfig, error) {
	v := newViper()
	setServerDefaults(v)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var wrapper struct {
		Auth AuthConfig `mapstructure:"auth"`
	}
	if err := v.Unmarshal(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth config: %w", err)
	}

	if err := validate(&wrapper.Auth); err != nil {
		return nil, err
	}

	return &wrapper.Auth, nil
}

// LoadClient loads client settings from the environment, config.yaml and
// flags. Flags are bound by name: server-url, token, timeout and
// max-concurrency. A nil flag set is allowed.
func LoadClient(flags *pflag.FlagSet) (*ClientConfig, error) {
	v := newViper()
	v.SetDefault("client.server_url", "http://localhost:8080")
	v.SetDefault("client.token", "")
	v.SetDefault("client.timeout_seconds", 15)
	v.SetDefault("client.max_concurrency", 8)

	if flags != nil {
		bindings := map[string]string{
			"client.server_url":      "server-url",
			"client.token":           "token",
			"client.timeout_seconds": "timeout",
			"client.max_concurrency": "max-concurrency",
		}
		for key, name := range bindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	// Unmarshal walks every key, so env and flag overrides on nested keys apply.
	var wrapper struct {
		Client ClientConfig `mapstructure:"client"`
	}
	if err := v.Unmarshal(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal client config: %w", err)
	}

	if err := validate(&wrapper.Client); err != nil {
		return nil, err
	}

	return &wrapper.Client, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	return v
}

// setServerDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func setServerDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("llm.card_count", 20)

	v.SetDefault("edit.max_concurrency", 8)
}

func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func validate(cfg any) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

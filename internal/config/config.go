// Package config loads service configuration from bowerbird.yml with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full service configuration.
type Config struct {
	OutputDir string        `mapstructure:"output_dir"`
	Force     bool          `mapstructure:"force"`
	Server    ServerConfig  `mapstructure:"server"`
	Cleanup   CleanupConfig `mapstructure:"cleanup"`
	Log       LogConfig     `mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CleanupConfig configures project retention.
type CleanupConfig struct {
	Keep int `mapstructure:"keep"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads bowerbird.yml from dir (or the working directory when dir is
// empty) and applies BOWERBIRD_* environment overrides. A missing config
// file is fine: defaults apply.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("bowerbird")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	} else {
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BOWERBIRD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", "./generated_projects")
	v.SetDefault("force", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("cleanup.keep", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

func (c *Config) validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Cleanup.Keep < 0 {
		return fmt.Errorf("cleanup.keep must not be negative: %d", c.Cleanup.Keep)
	}
	return nil
}

// Package config provides configuration management for pagekit using Viper
// for loading from files, environment variables, and command-line flags.
//
// Settings live in three namespaces: html (document defaults), server (the
// preview server), and log. Environment variables use the PAGEKIT_ prefix
// with dots replaced by underscores, e.g. PAGEKIT_HTML_LANG.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/conneroisu/pagekit/internal/document"
	perrors "github.com/conneroisu/pagekit/internal/errors"
)

// EnvPrefix is the environment variable prefix.
const EnvPrefix = "PAGEKIT"

// DefaultConfigFile is looked up in the working directory when no
// --config flag or PAGEKIT_CONFIG_FILE is given.
const DefaultConfigFile = ".pagekit.yml"

type Config struct {
	HTML   document.Config `mapstructure:"html" yaml:"html"`
	Server ServerConfig    `mapstructure:"server" yaml:"server"`
	Log    LogConfig       `mapstructure:"log" yaml:"log"`
}

type ServerConfig struct {
	Host       string `mapstructure:"host" yaml:"host"`
	Port       int    `mapstructure:"port" yaml:"port"`
	Pages      string `mapstructure:"pages" yaml:"pages"`
	LiveReload bool   `mapstructure:"live_reload" yaml:"live_reload"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HTML: document.DefaultConfig(),
		Server: ServerConfig{
			Host:       "localhost",
			Port:       8080,
			Pages:      "./pages",
			LiveReload: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// SetDefaults registers every default on v so unset keys unmarshal to the
// built-in values and show up in AllSettings.
func SetDefaults(v *viper.Viper) {
	for key, value := range document.Defaults() {
		v.SetDefault("html."+key, value)
	}

	d := Default()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.pages", d.Server.Pages)
	v.SetDefault("server.live_reload", d.Server.LiveReload)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// BindEnv makes v read PAGEKIT_-prefixed environment variables for every
// key, e.g. PAGEKIT_SERVER_PORT for server.port.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals v, filling defaults for unset keys, and validates
// the result.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, perrors.NewConfigError(perrors.ErrCodeConfigInvalid,
			"unable to decode configuration").WithCause(err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, perrors.NewConfigError(perrors.ErrCodeConfigInvalid,
			"invalid configuration").WithCause(err)
	}

	return &config, nil
}

// validateConfig rejects configurations that cannot produce a working
// document or server. Warnings from ValidateConfigWithDetails are ignored.
func validateConfig(config *Config) error {
	result := ValidateConfigWithDetails(config)
	if !result.HasErrors() {
		return nil
	}

	first := result.Errors[0]
	return &first
}

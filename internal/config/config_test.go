package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/conneroisu/pagekit/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(v *viper.Viper)
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "html overrides",
			setup: func(v *viper.Viper) {
				v.Set("html.lang", "pt-BR")
				v.Set("html.title_reverse", false)
				v.Set("html.title_separator", " :: ")
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "pt-BR", cfg.HTML.Lang)
				assert.False(t, cfg.HTML.TitleReverse)
				assert.Equal(t, " :: ", cfg.HTML.TitleSeparator)
				assert.Equal(t, "html5", cfg.HTML.Doctype)
			},
		},
		{
			name: "server overrides",
			setup: func(v *viper.Viper) {
				v.Set("server.port", 3000)
				v.Set("server.host", "0.0.0.0")
				v.Set("server.live_reload", false)
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3000, cfg.Server.Port)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.False(t, cfg.Server.LiveReload)
				assert.Equal(t, "./pages", cfg.Server.Pages)
			},
		},
		{
			name: "custom doctype is accepted",
			setup: func(v *viper.Viper) {
				v.Set("html.doctype", "<!DOCTYPE html SYSTEM \"about:legacy-compat\">")
			},
		},
		{
			name:        "port not a number",
			setup:       func(v *viper.Viper) { v.Set("server.port", "invalid_port") },
			expectError: true,
		},
		{
			name:        "port out of range",
			setup:       func(v *viper.Viper) { v.Set("server.port", 70000) },
			expectError: true,
		},
		{
			name:        "invalid language",
			setup:       func(v *viper.Viper) { v.Set("html.lang", "not a language") },
			expectError: true,
		},
		{
			name:        "empty charset",
			setup:       func(v *viper.Viper) { v.Set("html.charset", " ") },
			expectError: true,
		},
		{
			name:        "empty doctype",
			setup:       func(v *viper.Viper) { v.Set("html.doctype", "") },
			expectError: true,
		},
		{
			name:        "pages traversal",
			setup:       func(v *viper.Viper) { v.Set("server.pages", "../../etc") },
			expectError: true,
		},
		{
			name:        "dangerous host",
			setup:       func(v *viper.Viper) { v.Set("server.host", "localhost;rm") },
			expectError: true,
		},
		{
			name:        "unknown log level",
			setup:       func(v *viper.Viper) { v.Set("log.level", "chatty") },
			expectError: true,
		},
		{
			name:        "unknown log format",
			setup:       func(v *viper.Viper) { v.Set("log.format", "xml") },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			tt.setup(v)

			cfg, err := LoadFrom(v)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, perrors.IsConfigError(err))
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	content := `
html:
  doctype: xhtml-strict
  lang: de
server:
  port: 9090
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "xhtml-strict", cfg.HTML.Doctype)
	assert.Equal(t, "de", cfg.HTML.Lang)
	assert.Equal(t, "UTF-8", cfg.HTML.Charset)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestBindEnv(t *testing.T) {
	t.Setenv("PAGEKIT_HTML_LANG", "fr")
	t.Setenv("PAGEKIT_SERVER_PORT", "4000")
	t.Setenv("PAGEKIT_HTML_TITLE_REVERSE", "false")

	v := viper.New()
	BindEnv(v)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.HTML.Lang)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.False(t, cfg.HTML.TitleReverse)
}

func TestLoadGlobal(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("html.lang", "es")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.HTML.Lang)
}

func TestValidateConfigWithDetails(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 80
	cfg.HTML.Doctype = "html6"

	result := ValidateConfigWithDetails(cfg)
	assert.True(t, result.Valid)
	assert.False(t, result.HasErrors())
	assert.True(t, result.HasWarnings())
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, "html.doctype", result.Warnings[0].Field)
	assert.Equal(t, "server.port", result.Warnings[1].Field)

	cfg.HTML.Lang = "??"
	result = ValidateConfigWithDetails(cfg)
	assert.False(t, result.Valid)
	out := result.String()
	assert.True(t, strings.HasPrefix(out, "Validation errors:\n"))
	assert.Contains(t, out, "html.lang")
	assert.Contains(t, out, "hint: Use a BCP 47 tag")
	assert.Contains(t, out, "Validation warnings:\n")
}

func TestValidateHostname(t *testing.T) {
	for _, host := range []string{"localhost", "127.0.0.1", "::1", "example.com", "my-host"} {
		assert.NoError(t, validateHostname(host), host)
	}
	for _, host := range []string{"bad host", "-leading", "a|b", "semi;colon"} {
		assert.Error(t, validateHostname(host), host)
	}
}

//go:build property

package config

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/spf13/viper"
)

func TestConfigurationProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("ports in range always load", prop.ForAll(
		func(port int) bool {
			v := viper.New()
			v.Set("server.port", port)
			cfg, err := LoadFrom(v)
			return err == nil && cfg.Server.Port == port
		},
		gen.IntRange(0, 65535),
	))

	properties.Property("ports out of range never load", prop.ForAll(
		func(port int) bool {
			v := viper.New()
			v.Set("server.port", port)
			_, err := LoadFrom(v)
			return err != nil
		},
		gen.OneGenOf(gen.IntRange(-100000, -1), gen.IntRange(65536, 1000000)),
	))

	properties.Property("title separator is passed through", prop.ForAll(
		func(sep string) bool {
			v := viper.New()
			v.Set("html.title_separator", sep)
			cfg, err := LoadFrom(v)
			return err == nil && cfg.HTML.TitleSeparator == sep
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

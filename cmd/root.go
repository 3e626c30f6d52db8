// Package cmd provides the pagekit command-line interface.
//
// Configuration is read, from highest to lowest priority, from command-line
// flags, PAGEKIT_* environment variables, the config file, and built-in
// defaults. The config file is chosen by --config, then the
// PAGEKIT_CONFIG_FILE environment variable, then .pagekit.yml in the
// working directory.
//
// Environment variables follow the PAGEKIT_<SECTION>_<OPTION> pattern:
//
//	PAGEKIT_HTML_LANG=de
//	PAGEKIT_SERVER_PORT=3000
//	PAGEKIT_LOG_LEVEL=debug
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/pagekit/internal/config"
	"github.com/conneroisu/pagekit/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagekit",
	Short: "Assemble HTML documents from YAML page files",
	Long: `pagekit builds complete HTML documents from small page definitions.

A page file lists document directives (title segments, meta tags, styles,
scripts, body fragments) and a tree of body elements. pagekit assembles them
into one well-formed document, either once to a file or on every request from
a local preview server with live reload.

Quick Start:
  pagekit render pages/index.yml -o index.html
  pagekit serve --pages ./pages
  pagekit config`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .pagekit.yml, can also use PAGEKIT_CONFIG_FILE env var)")
	flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("doctype", "html5", "document doctype name or a custom declaration")
	flags.String("lang", "en", "document language (BCP 47)")

	AddFlagValidation(flags, "log-level", ValidateLogLevel)
	AddFlagValidation(flags, "doctype", ValidateDoctype)
	AddFlagValidation(flags, "lang", ValidateLang)
}

// initConfig wires viper to the config file, the environment, and the
// command-line flags.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv(config.EnvPrefix + "_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pagekit")
	}

	config.BindEnv(viper.GetViper())
	bindFlags()

	// A missing or unreadable config file leaves defaults and environment in effect.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlags maps flags onto configuration keys. Only flags the user set
// override the config file.
func bindFlags() {
	persistent := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("log.level", persistent.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", persistent.Lookup("log-format"))
	_ = viper.BindPFlag("html.doctype", persistent.Lookup("doctype"))
	_ = viper.BindPFlag("html.lang", persistent.Lookup("lang"))

	serveFlags := serveCmd.Flags()
	_ = viper.BindPFlag("server.host", serveFlags.Lookup("host"))
	_ = viper.BindPFlag("server.port", serveFlags.Lookup("port"))
	_ = viper.BindPFlag("server.pages", serveFlags.Lookup("pages"))
	_ = viper.BindPFlag("server.live_reload", serveFlags.Lookup("live-reload"))
}

// loadConfig loads the effective configuration and a logger writing to w.
func loadConfig(w io.Writer) (*config.Config, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    cfg.Log.Format,
		Output:    w,
		Component: "pagekit",
	})
	return cfg, logger, nil
}

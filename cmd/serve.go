package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/pagekit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve page files with live reload",
	Long: `Serve renders page files from the pages directory on every request.

A request for /about renders about.yml (or about.yaml, or about/index.yml).
With live reload enabled, open browsers reload whenever a page file changes.

Examples:
  pagekit serve
  pagekit serve --pages ./site --port 3000
  pagekit serve --live-reload=false`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "localhost", "host to bind to")
	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	serveCmd.Flags().String("pages", "./pages", "directory holding page files")
	serveCmd.Flags().Bool("live-reload", true, "reload browsers when page files change")

	AddFlagValidation(serveCmd.Flags(), "port", ValidatePort)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, logger.WithComponent("server"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/conneroisu/pagekit/internal/config"
	"github.com/conneroisu/pagekit/internal/document"
	"github.com/conneroisu/pagekit/internal/logging"
	"github.com/conneroisu/pagekit/internal/pagefile"
	"github.com/conneroisu/pagekit/internal/watcher"
)

var (
	renderOutput string
	renderWatch  bool
)

var renderCmd = &cobra.Command{
	Use:   "render <page.yml>",
	Short: "Render a page file to a complete HTML document",
	Long: `Render assembles one page file into a complete HTML document.

The document is written to standard output unless --output is given. With
--watch the page is rendered again every time the file changes.

Examples:
  pagekit render pages/index.yml
  pagekit render pages/index.yml -o public/index.html
  pagekit render pages/index.yml -o public/index.html --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write the document to this file")
	renderCmd.Flags().BoolVar(&renderWatch, "watch", false, "re-render when the page file changes (requires --output)")
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderWatch && renderOutput == "" {
		return fmt.Errorf("--watch requires --output")
	}

	cfg, logger, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	pagePath := args[0]
	if err := renderPage(cmd.OutOrStdout(), cfg, logger, pagePath, renderOutput); err != nil {
		return err
	}

	if !renderWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchPage(ctx, cmd.OutOrStdout(), cfg, logger, pagePath, renderOutput)
}

// renderPage renders pagePath and writes the document to output, or to
// stdout when output is empty.
func renderPage(stdout io.Writer, cfg *config.Config, logger logging.Logger, pagePath, output string) error {
	page, err := pagefile.Load(pagePath)
	if err != nil {
		return err
	}

	resp, err := page.Render(cfg.HTML, nil, document.WithLogger(logger))
	if err != nil {
		return err
	}

	if output == "" {
		_, err = resp.WriteTo(stdout)
		return err
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, []byte(resp.Output()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}

// watchPage re-renders the page on every change until ctx is done. Render
// failures are logged and the previous output is left in place.
func watchPage(ctx context.Context, stdout io.Writer, cfg *config.Config, logger logging.Logger, pagePath, output string) error {
	absPage, err := filepath.Abs(pagePath)
	if err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(100*time.Millisecond, logger)
	if err != nil {
		return err
	}
	defer fw.Stop()

	// Editors often replace files on save, so the directory is watched.
	fw.AddFilter(watcher.PathFilter(absPage))
	fw.AddHandler(func(events []watcher.ChangeEvent) error {
		if err := renderPage(stdout, cfg, logger, pagePath, output); err != nil {
			logger.Error(ctx, err, "render failed", "page", pagePath)
			return nil
		}
		logger.Info(ctx, "page rendered", "page", pagePath, "output", output)
		return nil
	})

	if err := fw.AddPath(filepath.Dir(absPage)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", pagePath, err)
	}
	if err := fw.Start(ctx); err != nil {
		return err
	}

	logger.Info(ctx, "watching page", "page", pagePath)
	<-ctx.Done()
	return nil
}

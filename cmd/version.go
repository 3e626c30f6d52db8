package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/pagekit/internal/version"
)

var (
	versionFormat string
	versionShort  bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show version, git commit, build time, and platform.

Examples:
  pagekit version
  pagekit version --short
  pagekit version --format json`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "output format (text, json, yaml)")
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "show only the version")
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()
	out := cmd.OutOrStdout()

	if versionShort {
		fmt.Fprintln(out, info.Short())
		return nil
	}

	switch versionFormat {
	case "text":
		fmt.Fprintln(out, info.String())
	case "json":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(info)
		if err != nil {
			return err
		}
		fmt.Fprint(out, string(data))
	default:
		return fmt.Errorf("unsupported format %q (use text, json, or yaml)", versionFormat)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/i3keep/i3keep/internal/config"
	"github.com/i3keep/i3keep/internal/errdefs"
	"github.com/i3keep/i3keep/internal/output"
	"github.com/i3keep/i3keep/internal/version"
)

// cfg is the loaded configuration, shared by every command. It starts as the
// defaults so run functions called outside Execute see sane values;
// PersistentPreRunE replaces it with the loaded file.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "i3keep",
	Short: "Save and restore i3/sway window layouts",
	Long: `i3keep exports the window manager's layout tree into a commented,
human-editable document whose swallow criteria let i3 or sway recreate the
layout with placeholder windows, and feeds saved documents back via
append_layout.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/i3keep/config.toml)")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format for data commands: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		setupLogging(verbose)

		configPath, _ := rootCmd.PersistentFlags().GetString("config")
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		// Use the root persistent flags directly to avoid conflicts with
		// subcommand local flags.
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return errdefs.New(errdefs.CodeInvalidInput,
				"unsupported format: %s (use yaml or json)", format)
		}
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty
		return nil
	}
}

// setupLogging configures the default logger. Logs go to stderr so data
// output on stdout stays clean for redirects and pipes.
func setupLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(true)
	log.SetTimeFormat("15:04:05.00")
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

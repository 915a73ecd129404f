package cmd

import (
	"fmt"
	"os"

	"github.com/bizflow/wmanalyzer/internal/config"
	"github.com/bizflow/wmanalyzer/internal/logger"
	"github.com/bizflow/wmanalyzer/internal/runner"
	"github.com/spf13/cobra"
)

// NewAnalyzeCommand creates the analyze command
func NewAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <bundle-or-zip>...",
		Short: "Scan application bundles and collect their artifacts",
		Long: `Scan one or more exported application bundles and collect their
notable artifacts into the result directory.

Each argument is either a bundle directory or a zip archive. Zip
arguments are extracted to a temporary directory before scanning, and
zip files found inside a bundle directory are scanned as bundles of
their own. The result directory is cleared at the start of every run.

Configuration is loaded from .wmanalyzer.yaml if present.
CLI flags override configuration file settings.

Examples:
  # Scan an exported bundle directory
  wmanalyzer analyze ./OrderPortal_export

  # Scan zip archives directly
  wmanalyzer analyze exports/OrderPortal.zip exports/Claims.zip

  # Other options
  wmanalyzer analyze --result-dir ./out bundle/   # Custom result tree
  wmanalyzer analyze --log-level debug bundle/    # Verbose console output
  wmanalyzer analyze --no-report bundle/          # Skip HTML report
  wmanalyzer analyze --config team.yaml bundle/   # Use custom config file`,
		Args: cobra.MinimumNArgs(1),
		RunE: analyzeCommand,
	}

	// Add flags
	cmd.Flags().String("config", "", "Path to config file (default: .wmanalyzer.yaml)")
	cmd.Flags().String("result-dir", "", "Directory for collected artifacts and reports")
	cmd.Flags().String("log-level", "", "Console log level (debug, info, warn, error)")
	cmd.Flags().Bool("no-report", false, "Skip HTML report generation")

	return cmd
}

// analyzeCommand implements the analyze command logic
func analyzeCommand(cmd *cobra.Command, args []string) error {
	// Load configuration from file
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Apply flag overrides (flags take precedence over the config file)
	if cmd.Flags().Changed("result-dir") {
		cfg.ResultDir, _ = cmd.Flags().GetString("result-dir")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("no-report") {
		noReport, _ := cmd.Flags().GetBool("no-report")
		cfg.Report = !noReport
	}

	console := logger.NewConsoleLogger(os.Stdout, cfg.LogLevel)

	result, err := runner.New(cfg, console).Run(args)
	if err != nil {
		return err
	}

	if result.Failures > 0 {
		console.Warnf("Completed with %d failure(s), see %s", result.Failures, result.LogPath)
	}

	return nil
}

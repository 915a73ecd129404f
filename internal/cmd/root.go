package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for wmanalyzer
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wmanalyzer",
		Short: "WebMaker application bundle analyzer",
		Long: `Wmanalyzer inspects exported WebMaker application bundles and gathers
their notable artifacts into a single result tree.

It scans bundle directories (or zip archives) for JavaScript files,
preview pages, thumbnails, logicsheet rule documents with database
actions, and binding documents with process-variable mappings, copies
what it finds into a per-category result layout, and generates an HTML
report summarising the run.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCommand())

	return cmd
}

// Package cli provides the Cobra command structure for tsxflat.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsxflat/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Command group IDs shown in help output.
const (
	groupViews   = "views"
	groupProject = "project"
)

// NewRootCommand creates the root tsxflat command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "tsxflat",
		Short: "Flatten TSX syntax trees into preorder records",
		Long: `tsxflat parses TypeScript, TSX and JavaScript with tree-sitter and flattens
each syntax tree into a preorder sequence of records that carries every byte
of the source, comments and whitespace included.

The views below render that sequence: the regenerated source, the raw
records, an indented tree, the components and markup outline found in it,
or its leaf tokens. The deps command follows imports from an entry file and
draws the result as a PlantUML diagram.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupViews, Title: "Views:"},
		&cobra.Group{ID: groupProject, Title: "Project Commands:"},
	)
	rootCmd.SetHelpCommandGroupID(groupProject)
	rootCmd.SetCompletionCommandGroupID(groupProject)

	for _, view := range viewCommands() {
		rootCmd.AddCommand(newViewCommand(view))
	}
	rootCmd.AddCommand(newDepsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

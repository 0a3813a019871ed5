package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsxflat/internal/logging"
	"github.com/yaklabco/tsxflat/pkg/config"
	"github.com/yaklabco/tsxflat/pkg/deps"
	"github.com/yaklabco/tsxflat/pkg/flat"
	"github.com/yaklabco/tsxflat/pkg/runner"
)

type depsFlags struct {
	language    string
	sourceRoots []string
	extensions  []string
	stripPrefix string
	title       string
}

func newDepsCommand() *cobra.Command {
	var cfg config.Config
	flags := &depsFlags{}

	cmd := &cobra.Command{
		Use:   "deps <entry>",
		Short: "Draw the import graph of an entry file as PlantUML",
		Long: `Follow import, export-from, require and dynamic import specifiers from an
entry file and print the files reached as a PlantUML component diagram.

Relative specifiers resolve against the importing file's directory; other
specifiers are looked up in each source root in turn. For every candidate
path the configured extensions are tried in order, then index files in a
directory of that name. Specifiers that resolve to nothing, such as
packages, are left out of the diagram.`,
		Example: `  tsxflat deps src/index.tsx
  tsxflat deps --strip-prefix src/ --title "App" -o deps.puml src/index.tsx`,
		GroupID: groupProject,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(cmd, args[0], &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.language, "language", "auto",
		"grammar: auto, tsx, typescript, javascript")
	cmd.Flags().StringSliceVar(&flags.sourceRoots, "source-root", nil,
		"directories searched for non-relative imports (repeatable)")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil,
		`extensions tried when resolving, in order ("" = as written)`)
	cmd.Flags().StringVar(&flags.stripPrefix, "strip-prefix", "", "prefix removed from diagram labels")
	cmd.Flags().StringVar(&flags.title, "title", "", "diagram title")
	cmd.Flags().IntVar(&cfg.MaxDepth, "max-depth", 0, "deepest syntax nesting accepted (0 = config or default)")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "write the diagram to a file instead of stdout")

	return cmd
}

func runDeps(cmd *cobra.Command, entry string, cfg *config.Config, flags *depsFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if cmd.Flags().Changed("language") {
		cfg.Language = flags.language
	}
	cfg.Deps = config.DepsConfig{
		SourceRoots: flags.sourceRoots,
		Extensions:  flags.extensions,
		StripPrefix: flags.stripPrefix,
		Title:       flags.title,
	}

	finalCfg, _, err := loadConfig(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	resolver := deps.NewResolver(finalCfg.Deps.SourceRoots, finalCfg.Deps.Extensions)
	session := deps.NewSession(resolver, runner.TreeSitter(),
		deps.WithLanguage(finalCfg.Language),
		deps.WithFlatOptions(flat.Options{MaxDepth: finalCfg.MaxDepth}),
	)

	logger.Debug("dependency scan started",
		logging.FieldSession, session.ID.String(),
		logging.FieldPath, entry,
	)

	if err := session.Scan(ctx, entry); err != nil {
		return fmt.Errorf("scan dependencies: %w", err)
	}

	failures := session.Failures()
	paths := make([]string, 0, len(failures))
	for path := range failures {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		logger.Warn("module left without imports", logging.FieldPath, path, logging.FieldError, failures[path])
	}

	graph := session.Graph()
	out := newOutputTarget(cmd, finalCfg.Output)
	err = deps.WritePlantUML(out.Writer(), graph, deps.PlantUMLOptions{
		Title:       finalCfg.Deps.Title,
		StripPrefix: finalCfg.Deps.StripPrefix,
	})
	if err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}
	if err := out.Commit(ctx); err != nil {
		return err
	}

	logger.Debug("dependency scan complete",
		logging.FieldSession, session.ID.String(),
		logging.FieldModules, len(graph.Modules),
	)
	return nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	compiler "ngc-metadata/packages/compiler/src"
	"ngc-metadata/packages/compiler/src/config"
	"ngc-metadata/packages/compiler/src/manifest"
	"ngc-metadata/packages/compiler/src/metadata"
	"ngc-metadata/packages/compiler/src/summary"
)

// NewCompileCommand creates the compile command
func NewCompileCommand(root *rootOptions) *cobra.Command {
	var (
		summaryDir string
		format     string
		jobs       int
	)
	cmd := &cobra.Command{
		Use:   "compile <manifest>...",
		Short: "Normalize directive manifests and write their summaries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var overrides []config.CompilerConfigOption
			if cmd.Flags().Changed("summary-dir") {
				overrides = append(overrides, config.WithSummaryDir(summaryDir))
			}
			if cmd.Flags().Changed("format") {
				f, err := summary.ParseFormat(format)
				if err != nil {
					return err
				}
				overrides = append(overrides, config.WithFormat(f))
			}
			if cmd.Flags().Changed("jobs") {
				overrides = append(overrides, config.WithJobs(jobs))
			}

			cfg, logger, err := root.loadConfig(overrides...)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			c, err := compiler.NewCompiler(cfg, logger)
			if err != nil {
				return err
			}
			result, err := c.Compile(cmd.Context(), args)
			if err != nil {
				return err
			}

			warn := color.New(color.FgYellow)
			for _, w := range result.Warnings {
				warn.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(),
				"Compiled %d directives (%d hosts), %d summaries in %s\n",
				len(result.Directives), len(result.Hosts), len(result.Summaries), c.Store().Dir())
			return nil
		},
	}
	cmd.Flags().StringVar(&summaryDir, "summary-dir", "", "summary output directory")
	cmd.Flags().StringVar(&format, "format", "", "summary format (json or msgpack)")
	cmd.Flags().IntVar(&jobs, "jobs", 0, "parallel jobs (0 = GOMAXPROCS)")
	return cmd
}

// NewNormalizeCommand creates the normalize command
func NewNormalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <manifest>",
		Short: "Print the normalized records of a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			directives, err := file.Normalize()
			if err != nil {
				return err
			}
			records := make([]map[string]any, len(directives))
			for i, d := range directives {
				records[i] = d.ToStructured()
			}
			return writeJSON(cmd.OutOrStdout(), records)
		},
	}
}

// NewHostCommand creates the host command
func NewHostCommand() *cobra.Command {
	var name, moduleID, selector string
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Print the host component synthesized for a component",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var typ metadata.TypeConfig
			if cmd.Flags().Changed("name") {
				typ.Name = &name
			}
			if cmd.Flags().Changed("module-id") {
				typ.ModuleID = &moduleID
			}
			host, err := metadata.CreateHostComponentMeta(metadata.NewCompileTypeMetadata(typ), selector)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), host.ToStructured())
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "component type name")
	cmd.Flags().StringVar(&moduleID, "module-id", "", "component module id")
	cmd.Flags().StringVar(&selector, "selector", "", "component selector")
	_ = cmd.MarkFlagRequired("selector")
	return cmd
}

// NewMatchCommand creates the match command
func NewMatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "match <element> <manifest>...",
		Short: "List the directives of the manifests that apply to an element",
		Long: `Element is written as a selector, e.g. 'button.primary[type=submit]'.
Matching directive names are printed one per line.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var directives []*metadata.CompileDirectiveMetadata
			for _, path := range args[1:] {
				file, err := manifest.Load(path)
				if err != nil {
					return err
				}
				normalized, err := file.Normalize()
				if err != nil {
					return err
				}
				directives = append(directives, normalized...)
			}
			matcher, err := metadata.NewDirectiveMatcher(directives)
			if err != nil {
				return err
			}
			matched, err := matcher.MatchTemplate(args[0])
			if err != nil {
				return err
			}
			for _, d := range matched {
				fmt.Fprintln(cmd.OutOrStdout(), *d.Type().Name())
			}
			return nil
		},
	}
}

// NewSummaryCommand creates the summary command group
func NewSummaryCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Inspect stored directive summaries",
	}

	openStore := func() (*summary.Store, error) {
		cfg, logger, err := root.loadConfig()
		if err != nil {
			return nil, err
		}
		return summary.Open(cfg.Summary.Dir, cfg.SummaryFormat(), logger)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show [moduleId] <name>",
		Short: "Print one stored summary",
		Long:  "Print one stored summary. Without a moduleId the directive type is one that has no module id.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			key := summary.Key{Name: args[len(args)-1], NoModuleID: len(args) == 1}
			if len(args) == 2 {
				key.ModuleID = args[0]
			}
			d, found, err := store.Get(key)
			if err != nil {
				return err
			}
			if !found {
				return errors.New("no summary for " + key.String())
			}
			return writeJSON(cmd.OutOrStdout(), d.ToStructured())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored summary files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			paths, err := store.List()
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	})

	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ngc-metadata/packages/compiler/src/config"
	"ngc-metadata/packages/compiler/src/logging"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "ngc-go",
		Short: "Angular directive metadata compiler",
		Long: `ngc-go normalizes directive and component declarations into compile metadata,
synthesizes host components, and keeps serialized summaries on disk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ./ngc.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewCompileCommand(opts))
	rootCmd.AddCommand(NewNormalizeCommand())
	rootCmd.AddCommand(NewHostCommand())
	rootCmd.AddCommand(NewMatchCommand())
	rootCmd.AddCommand(NewSummaryCommand(opts))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			title := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()
			title.Fprint(out, "ngc-go version: ")
			fmt.Fprintln(out, Version)
			title.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)
			title.Fprint(out, "Go version: ")
			fmt.Fprintln(out, runtime.Version())
		},
	}
}

// loadConfig reads the config file named by --config and applies flag overrides
func (o *rootOptions) loadConfig(overrides ...config.CompilerConfigOption) (*config.CompilerConfig, *zap.Logger, error) {
	if o.logLevel != "" {
		overrides = append(overrides, config.WithLogLevel(o.logLevel))
	}
	cfg, err := config.Load(o.configPath, overrides...)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/NERVsystems/rapidmcp/pkg/myrapid"
	"github.com/NERVsystems/rapidmcp/pkg/server"
	"github.com/NERVsystems/rapidmcp/pkg/version"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	debug      bool
	configPath string
	baseURL    string
	agency     string
	timeout    time.Duration
}

// newLogger returns the stderr text logger. Stdout carries MCP frames.
func (o *rootOptions) newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig reads the optional config file and applies flag overrides.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (myrapid.Config, error) {
	cfg, err := myrapid.Load(o.configPath)
	if err != nil {
		return myrapid.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	if flags.Changed("agency") {
		cfg.Agency = o.agency
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if err := cfg.Validate(); err != nil {
		return myrapid.Config{}, err
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "rapidmcp",
		Short: "An MCP server for Rapid KL public transit",
		Long: `rapidmcp exposes the MyRapid geoservice (fares, stations, station search
and journey planning) as Model Context Protocol tools over stdio.

Run without a subcommand to serve MCP on stdin/stdout. The lookup
subcommands print the same text the tools return, for use from a shell.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	flags.StringVar(&opts.baseURL, "base-url", myrapid.DefaultBaseURL, "MyRapid geoservice base URL")
	flags.StringVar(&opts.agency, "agency", myrapid.DefaultAgency, "Transit agency identifier")
	flags.DurationVar(&opts.timeout, "timeout", myrapid.DefaultTimeout, "HTTP request timeout")

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built at: %s)",
		version.BuildVersion, version.BuildCommit, version.BuildDate)

	rootCmd.AddCommand(
		newServeCmd(opts),
		newFareCmd(opts),
		newStationsCmd(opts),
		newSearchCmd(opts),
		newPlanCmd(opts),
		newGenerateConfigCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdin/stdout (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := opts.newLogger(cmd.ErrOrStderr())
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}

	logger.Info("starting Rapid KL MCP server",
		"version", version.BuildVersion,
		"debug", opts.debug)

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.RunWithContext(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	})
	return g.Wait()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

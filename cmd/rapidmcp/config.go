package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NERVsystems/rapidmcp/pkg/server"
	"github.com/NERVsystems/rapidmcp/pkg/version"
)

func newGenerateConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate-config PATH",
		Short: "Create or update a Claude Desktop client config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.newLogger(cmd.ErrOrStderr())
			if err := generateClientConfig(args[0], opts.configPath, logger); err != nil {
				return fmt.Errorf("failed to generate config: %w", err)
			}
			logger.Info("successfully generated Claude Desktop Client config", "path", args[0])
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(version.Info())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version information as JSON")
	return cmd
}

// generateClientConfig creates or updates a Claude Desktop Client config
// file so that it launches this executable. serverConfig, when set, is
// passed through as --config.
func generateClientConfig(outputPath, serverConfig string, logger *slog.Logger) error {
	if outputPath == "" {
		return errors.New("output path is empty")
	}
	if filepath.Ext(outputPath) != ".json" {
		return fmt.Errorf("output path %q must have a .json extension", outputPath)
	}
	for _, part := range strings.Split(filepath.ToSlash(outputPath), "/") {
		if part == ".." {
			return fmt.Errorf("output path %q must not contain '..'", outputPath)
		}
	}

	execPath, err := os.Executable()
	if err != nil {
		execPath = os.Args[0]
	}
	absExecPath, err := filepath.Abs(execPath)
	if err != nil {
		absExecPath = execPath
	}

	serverArgs := []string{"serve"}
	if serverConfig != "" {
		absConfig, err := filepath.Abs(serverConfig)
		if err != nil {
			return fmt.Errorf("failed to resolve server config path: %w", err)
		}
		serverArgs = append(serverArgs, "--config", absConfig)
	}

	config := make(map[string]any)
	if data, err := os.ReadFile(outputPath); err == nil {
		if err := json.Unmarshal(data, &config); err != nil || config == nil {
			logger.Warn("existing config is not valid JSON, will create new", "error", err)
			config = make(map[string]any)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read existing config: %w", err)
	}

	mcpServers, ok := config["mcpServers"].(map[string]any)
	if !ok {
		mcpServers = make(map[string]any)
		config["mcpServers"] = mcpServers
	}
	mcpServers[server.ServerName] = map[string]any{
		"command": absExecPath,
		"args":    serverArgs,
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

package main

import (
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/goalagent/mcp"
)

type toolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

func newToolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool definitions offered to the model as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, err := a.userTools()
			if err != nil {
				return err
			}

			tools := registry.Tools()
			infos := make([]toolInfo, 0, len(tools))
			for _, t := range tools {
				infos = append(infos, toolInfo{Name: t.Name, Description: t.Description, Parameters: t.Parameters})
			}
			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		},
	}
}

func newMCPCmd(a *app) *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the user-record tools over MCP stdio",
		Long: "mcp exposes the user-record tools to MCP clients over stdin/stdout. " +
			"Records live in memory for the lifetime of the process.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return err
			}
			logger := a.newLogger(level)

			store, registry, err := a.userTools()
			if err != nil {
				return err
			}
			logger.Info("serving tools over stdio", "tools", registry.Names())

			err = mcp.ServeStdio(registry, mcp.WithName("goalagent-users"))
			logger.Info("mcp server stopped", "users", store.Len())
			return err
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	return cmd
}

// Command goalagent drives a goal-directed tool-calling agent against a
// hosted completion service.
//
// Usage:
//
//	goalagent run "Add a user named Ada, age 36, then verify her status is active"
//	goalagent tools
//	goalagent mcp
//
// Settings come from the environment (and an optional .env file); flags
// override them. See internal/config for the variable names.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	ai "github.com/spetersoncode/goalagent"
	"github.com/spetersoncode/goalagent/client"
	"github.com/spetersoncode/goalagent/internal/config"
	"github.com/spetersoncode/goalagent/tool"
	"github.com/spetersoncode/goalagent/userstore"
)

// ProviderFactory creates the completion client for a loaded config.
type ProviderFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ai.ChatProvider, error)

// DefaultProviderFactory builds a retrying client.Client.
func DefaultProviderFactory(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ai.ChatProvider, error) {
	c, err := client.New(ctx, cfg.ClientConfig(logger))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// app holds the dependencies shared by every command so tests can swap them.
type app struct {
	stdout      io.Writer
	stderr      io.Writer
	loadConfig  func(overrides map[string]string) (*config.Config, error)
	newProvider ProviderFactory
	newStore    func() *userstore.MemoryStore
}

func newApp() *app {
	return &app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		loadConfig:  config.Load,
		newProvider: DefaultProviderFactory,
		newStore:    func() *userstore.MemoryStore { return userstore.NewMemoryStore() },
	}
}

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "goalagent",
		Short:         "goalagent - goal-directed tool-calling agent",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.AddCommand(newRunCmd(a), newToolsCmd(a), newMCPCmd(a))
	return root
}

// newLogger builds the text logger used by every command. Logs go to stderr
// so stdout stays clean for results and the MCP stdio transport.
func (a *app) newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}

// userTools builds a fresh store and a registry holding the user tools.
func (a *app) userTools() (*userstore.MemoryStore, *tool.Registry, error) {
	store := a.newStore()
	registry := tool.NewRegistry()
	if err := userstore.Register(registry, store); err != nil {
		return nil, nil, fmt.Errorf("register user tools: %w", err)
	}
	return store, registry, nil
}

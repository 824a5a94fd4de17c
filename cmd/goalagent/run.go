package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	ai "github.com/spetersoncode/goalagent"
	"github.com/spetersoncode/goalagent/agent"
	"github.com/spetersoncode/goalagent/mcp"
	"github.com/spetersoncode/goalagent/tool"
	"github.com/spetersoncode/goalagent/userstore"
)

type runFlags struct {
	provider  string
	model     string
	baseURL   string
	logLevel  string
	maxRounds int
	timeout   string
	stateless bool
	jsonOut   bool
	mcp       []string
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run <goal>",
		Short: "Run the agent until the goal is met",
		Long: "Run offers the user-record tools to the model, executes the calls it makes, " +
			"and asks the model after every round whether the goal is satisfied.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]string{
				"GOALAGENT_PROVIDER":  f.provider,
				"GOALAGENT_MODEL":     f.model,
				"GOALAGENT_BASE_URL":  f.baseURL,
				"GOALAGENT_LOG_LEVEL": f.logLevel,
				"GOALAGENT_TIMEOUT":   f.timeout,
			}
			if cmd.Flags().Changed("max-rounds") {
				overrides["GOALAGENT_MAX_ROUNDS"] = strconv.Itoa(f.maxRounds)
			}
			return a.run(cmd.Context(), strings.Join(args, " "), overrides, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.provider, "provider", "p", "", "completion backend: groq, openai, anthropic, google, vertex")
	flags.StringVarP(&f.model, "model", "m", "", "model name (default: the backend's default)")
	flags.StringVar(&f.baseURL, "base-url", "", "override the backend endpoint")
	flags.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	flags.IntVar(&f.maxRounds, "max-rounds", 10, "round limit, 0 for unlimited")
	flags.StringVar(&f.timeout, "timeout", "", "per-completion timeout, e.g. 90s")
	flags.BoolVar(&f.stateless, "stateless", false, "send only the system prompt and goal on each tool round")
	flags.BoolVar(&f.jsonOut, "json", false, "print the result as JSON")
	flags.StringArrayVar(&f.mcp, "mcp", nil, "command line of an MCP stdio server whose tools are also offered (repeatable)")
	return cmd
}

// runReport is the JSON form of a finished run.
type runReport struct {
	Goal    string           `json:"goal"`
	Status  agent.Status     `json:"status"`
	Rounds  int              `json:"rounds"`
	Actions []agent.Action   `json:"actions"`
	Error   string           `json:"error,omitempty"`
	Usage   ai.Usage         `json:"usage"`
	Users   []userstore.User `json:"users"`
}

func (a *app) run(ctx context.Context, goal string, overrides map[string]string, f runFlags) error {
	cfg, err := a.loadConfig(overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := a.newLogger(level)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	provider, err := a.newProvider(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	store, registry, err := a.userTools()
	if err != nil {
		return err
	}
	closeRemotes, err := registerRemotes(ctx, registry, f.mcp)
	if err != nil {
		return err
	}
	defer closeRemotes()

	opts := []agent.Option{
		agent.WithMaxRounds(cfg.MaxRounds),
		agent.WithCompletionTimeout(cfg.Timeout),
		agent.WithLogger(logger),
	}
	if f.stateless {
		opts = append(opts, agent.WithStatelessRounds())
	}

	ag := agent.New(provider, registry, store)
	var result *agent.Result
	for event := range ag.RunStream(ctx, goal, opts...) {
		if !f.jsonOut {
			printEvent(a.stdout, event)
		}
		if event.Result != nil && event.Result.Status.Terminal() {
			result = event.Result
		}
	}
	if result == nil {
		return fmt.Errorf("run ended without a result")
	}

	if f.jsonOut {
		users, err := userstore.Snapshot(ctx, store)
		if err != nil {
			return err
		}
		report := runReport{
			Goal:    goal,
			Status:  result.Status,
			Rounds:  result.Round,
			Actions: result.Actions,
			Usage:   result.TotalUsage,
			Users:   users,
		}
		if result.Err != nil {
			report.Error = result.Err.Error()
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	}

	if result.Done() {
		return nil
	}
	return result.Err
}

// registerRemotes connects to each MCP server command and registers its
// tools next to the user tools. The returned func closes every connection.
func registerRemotes(ctx context.Context, registry *tool.Registry, commands []string) (func(), error) {
	var remotes []*mcp.RemoteRegistry
	closeAll := func() {
		for _, r := range remotes {
			_ = r.Close()
		}
	}

	for _, command := range commands {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			continue
		}
		remote, err := mcp.NewRemoteRegistry(ctx, fields[0], os.Environ(), fields[1:]...)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("connect %q: %w", command, err)
		}
		remotes = append(remotes, remote)
		if err := remote.RegisterInto(registry); err != nil {
			closeAll()
			return nil, fmt.Errorf("register tools from %q: %w", command, err)
		}
	}
	return closeAll, nil
}

func printEvent(w io.Writer, event agent.Event) {
	switch event.Type {
	case agent.EventRoundStart:
		fmt.Fprintf(w, "round %d\n", event.Round)
	case agent.EventToolCallStart:
		fmt.Fprintf(w, "  -> %s %s\n", event.ToolCall.Name, event.ToolCall.Arguments)
	case agent.EventToolCallResult:
		fmt.Fprintf(w, "  <- %s\n", event.ToolResult.Content)
	case agent.EventGoalCheck:
		fmt.Fprintf(w, "  goal met: %s\n", event.Answer)
	case agent.EventRunEnd:
		r := event.Result
		fmt.Fprintf(w, "%s after %d round(s), %d action(s), %d/%d tokens in/out\n",
			r.Status, r.Round, len(r.Actions), r.TotalUsage.InputTokens, r.TotalUsage.OutputTokens)
	case agent.EventRunError:
		r := event.Result
		fmt.Fprintf(w, "%s after %d round(s), %d action(s)\n", r.Status, r.Round, len(r.Actions))
	}
}

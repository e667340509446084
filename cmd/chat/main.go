// Command chat is an interactive terminal client for an OpenAI-compatible
// chat-completions proxy. It streams answers and reasoning as they arrive
// and lets the model call local and MCP tools.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
	"github.com/Mostlime12195/Libre-Assistant-sub000/agent"
	"github.com/Mostlime12195/Libre-Assistant-sub000/client"
	"github.com/Mostlime12195/Libre-Assistant-sub000/event"
	"github.com/Mostlime12195/Libre-Assistant-sub000/mcp"
	"github.com/Mostlime12195/Libre-Assistant-sub000/model"
	"github.com/Mostlime12195/Libre-Assistant-sub000/tool"
)

func main() {
	configPath := flag.String("config", "chat.toml", "path to the TOML config file")
	mcpServe := flag.Bool("mcp-serve", false, "expose the built-in tools as an MCP stdio server and exit")
	flag.Parse()

	if *mcpServe {
		registry := tool.NewRegistry()
		builtinTools(registry)
		if err := mcp.ServeStdio(registry); err != nil {
			fmt.Fprintf(os.Stderr, "mcp serve: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := tool.NewRegistry()
	builtinTools(registry)

	var remotes []*mcp.RemoteRegistry
	for _, server := range cfg.MCPServers {
		remote, err := connectMCP(ctx, server)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mcp %s: %v\n", server.Name, err)
			continue
		}
		if err := remote.Attach(registry); err != nil {
			fmt.Fprintf(os.Stderr, "mcp %s: %v\n", server.Name, err)
			remote.Close()
			continue
		}
		remotes = append(remotes, remote)
		fmt.Printf("attached %d tools from %s\n", remote.Len(), server.Name)
	}
	defer func() {
		for _, remote := range remotes {
			remote.Close()
		}
	}()

	chatClient := client.New(client.Config{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Models:      model.DefaultRegistry(),
		IdleTimeout: time.Duration(cfg.IdleTimeout),
	})

	a := agent.New(chatClient, registry)

	fmt.Printf("model %s", cfg.Model)
	if cfg.Effort != "" {
		fmt.Printf(" (effort %s)", cfg.Effort)
	}
	fmt.Printf(", %d tools, type /quit to exit\n", registry.Len())

	repl(ctx, a, cfg)
}

func connectMCP(ctx context.Context, server MCPServer) (*mcp.RemoteRegistry, error) {
	if server.URL != "" {
		return mcp.NewRemoteRegistrySSE(ctx, server.URL)
	}
	if server.Command != "" {
		return mcp.NewRemoteRegistry(ctx, server.Command, server.Env, server.Args...)
	}
	return nil, fmt.Errorf("server needs a command or url")
}

func repl(ctx context.Context, a *agent.Agent, cfg *Config) {
	reader := bufio.NewReader(os.Stdin)
	var history []ai.Message

	for {
		fmt.Print("\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return
		case "/clear":
			history = nil
			fmt.Println("history cleared")
			continue
		}

		history = append(history, ai.Message{Role: ai.RoleUser, Content: line})
		messages, ok := runTurn(ctx, a, history, cfg)
		if !ok {
			return
		}
		history = messages
	}
}

// runTurn streams one agent run and returns the updated conversation.
// The second return is false when the surrounding context is done.
func runTurn(ctx context.Context, a *agent.Agent, history []ai.Message, cfg *Config) ([]ai.Message, bool) {
	opts := []agent.Option{
		agent.WithMaxIterations(cfg.MaxIterations),
		agent.WithModel(cfg.Model),
	}
	if cfg.Effort != "" {
		opts = append(opts, agent.WithEffort(cfg.Effort))
	}

	eventCh := a.RunStream(ctx, history, opts...)

	updated := append([]ai.Message(nil), history...)
	var pendingResults []ai.ToolResult
	flush := func() {
		if len(pendingResults) > 0 {
			updated = append(updated, ai.NewToolResultMessage(pendingResults...))
			pendingResults = nil
		}
	}

	inReasoning := false
	for ev := range eventCh {
		switch ev.Type {
		case event.StepStart:
			flush()

		case event.StepEnd:
			if ev.Response != nil {
				updated = append(updated, ai.Message{
					Role:      ai.RoleAssistant,
					Content:   ev.Response.Content,
					Reasoning: ev.Response.Reasoning,
					ToolCalls: ev.Response.ToolCalls,
				})
			}

		case event.ReasoningDelta:
			if !inReasoning {
				fmt.Print("\x1b[2m")
				inReasoning = true
			}
			fmt.Print(ev.Reasoning)

		case event.MessageDelta:
			if inReasoning {
				fmt.Print("\x1b[0m\n")
				inReasoning = false
			}
			fmt.Print(ev.Delta)

		case event.ToolCallStart:
			if inReasoning {
				fmt.Print("\x1b[0m\n")
				inReasoning = false
			}
			fmt.Printf("\n[%s %s]", ev.ToolCall.Name, ev.ToolCall.Arguments)

		case event.ToolCallResult:
			pendingResults = append(pendingResults, *ev.ToolResult)
			if ev.ToolResult.IsError {
				fmt.Printf(" -> error: %s\n", ev.ToolResult.Content)
			} else {
				fmt.Printf(" -> %s\n", truncate(ev.ToolResult.Content, 120))
			}

		case event.RunEnd:
			fmt.Println()
			if ev.Response != nil && ev.Response.Usage.TotalTokens > 0 {
				fmt.Printf("[tokens: %d]\n", ev.Response.Usage.TotalTokens)
			}

		case event.RunError:
			fmt.Fprintf(os.Stderr, "\nerror: %v\n", ev.Error)

		case event.RunCancelled:
			fmt.Println("\n[cancelled]")
		}
	}
	if inReasoning {
		fmt.Print("\x1b[0m\n")
	}
	flush()

	if ctx.Err() != nil {
		return nil, false
	}
	return updated, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

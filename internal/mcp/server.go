// Package mcp provides the stdio MCP server exposing reminder tools for coding
// agents.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/mmr/internal/buildinfo"
	"github.com/go-ports/mmr/internal/service"
)

const printDescription = `Print the .mmr reminder note for a directory regardless of its age. Use this to read what the user left for themselves (or for you) in a project.`

const remindDescription = `Print the .mmr reminder note for a directory only if it has not been modified for at least "age" seconds (default from config, usually 2700). Returns shown=false when nothing is due or no note exists.`

const addDescription = `Append a line to the .mmr reminder note for a directory, creating it if needed. Set redact to mask API tokens before writing.`

const listDescription = `List every .mmr reminder note mmr has seen, with its age and first line.`

// NewServer creates and registers all reminder tools on a new MCP server.
// It is separate from Serve so tests can drive it over an in-process transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("mmr", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve starts the stdio MCP server, blocking until stdin closes.
func Serve(_ context.Context, home string) error {
	svc, err := service.New(home, service.Options{})
	if err != nil {
		return fmt.Errorf("mcp: init service: %w", err)
	}
	defer svc.Close()

	return mcpserver.ServeStdio(NewServer(svc))
}

func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	dirOpt := mcp.WithString("dir",
		mcp.Description("Directory to resolve the note from. Defaults to the server's working directory."),
	)
	recursiveOpt := mcp.WithBoolean("recursive",
		mcp.Description("Search parent directories for the nearest .mmr."),
	)
	subjectOpt := mcp.WithBoolean("subject",
		mcp.Description("Return only the first line."),
	)

	s.AddTool(mcp.NewTool("mmr_print",
		mcp.WithDescription(printDescription),
		dirOpt, recursiveOpt, subjectOpt,
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handlePrint(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("mmr_remind",
		mcp.WithDescription(remindDescription),
		dirOpt, recursiveOpt, subjectOpt,
		mcp.WithNumber("age",
			mcp.Description("Minimum age in seconds."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRemind(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("mmr_add",
		mcp.WithDescription(addDescription),
		dirOpt, recursiveOpt,
		mcp.WithString("text",
			mcp.Description("The reminder line."),
			mcp.Required(),
		),
		mcp.WithBoolean("redact",
			mcp.Description("Mask API tokens and .mmrignore matches. Defaults to config add.redact."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAdd(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("mmr_list",
		mcp.WithDescription(listDescription),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleList(ctx, svc, req)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func resolve(svc *service.Service, req mcp.CallToolRequest) (string, error) {
	return svc.Resolve(req.GetString("dir", ""), req.GetBool("recursive", svc.Config.Recursive))
}

func handlePrint(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := resolve(svc, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var buf bytes.Buffer
	if err := svc.Print(&buf, path, service.PrintOptions{Subject: req.GetBool("subject", false)}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"path":    path,
		"content": buf.String(),
	})
}

func handleRemind(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := resolve(svc, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	age := req.GetInt("age", int(svc.Config.Remind.Age))
	if age < 0 {
		return mcp.NewToolResultError("age must not be negative"), nil
	}
	var buf bytes.Buffer
	shown, err := svc.Remind(&buf, path, service.RemindOptions{
		MinAge:  time.Duration(age) * time.Second,
		Subject: req.GetBool("subject", svc.Config.Remind.Subject),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"path":    path,
		"shown":   shown,
		"content": buf.String(),
	})
}

func handleAdd(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	words := strings.Fields(req.GetString("text", ""))
	if len(words) == 0 {
		return mcp.NewToolResultError("text is required"), nil
	}
	path, err := resolve(svc, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	line, err := svc.Add(path, words, req.GetBool("redact", svc.Config.Add.Redact))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"path": path,
		"line": line,
	})
}

func handleList(_ context.Context, svc *service.Service, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := svc.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		item := map[string]any{
			"path":      e.Path,
			"exists":    e.Exists,
			"subject":   e.Subject,
			"last_seen": e.LastSeen.Format(time.RFC3339),
		}
		if e.Exists {
			item["age_seconds"] = int64(e.Age / time.Second)
		}
		if e.LastShown != nil {
			item["last_shown"] = e.LastShown.Format(time.RFC3339)
		}
		out = append(out, item)
	}
	return jsonResult(map[string]any{
		"total":   len(out),
		"markers": out,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

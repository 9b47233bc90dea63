package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ripasso/internal/application/commands"
	"ripasso/internal/ports"
)

// RegisterTools adds the snippet-store tools to the MCP server.
func RegisterTools(s *server.MCPServer, store ports.SnippetStore) {
	s.AddTool(queryTool(), queryHandler(store))
	s.AddTool(execTool(), execHandler(store))
	s.AddTool(dueTool(), dueHandler(store))
}

// --- query ---

func queryTool() mcp.Tool {
	return mcp.NewTool("query",
		mcp.WithDescription("Run a read-only SQL statement against the snippet database. Returns rows as JSON. A failed statement returns zero rows."),
		mcp.WithString("sql",
			mcp.Required(),
			mcp.Description("The SQL statement to run."),
		),
		mcp.WithString("params",
			mcp.Description("Optional bind parameters as a JSON array, positional."),
		),
	)
}

func queryHandler(store ports.SnippetStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("sql", "")
		params, err := parseParams(req.GetString("params", ""))
		if err != nil {
			return toolError(err)
		}
		return formatRows(store.Query(ctx, query, params...))
	}
}

// --- exec ---

func execTool() mcp.Tool {
	return mcp.NewTool("exec",
		mcp.WithDescription("Run a mutating SQL statement against the snippet database. The change is persisted to the vault immediately."),
		mcp.WithString("sql",
			mcp.Required(),
			mcp.Description("The SQL statement to run."),
		),
		mcp.WithString("params",
			mcp.Description("Optional bind parameters as a JSON array, positional."),
		),
	)
}

func execHandler(store ports.SnippetStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("sql", "")
		params, err := parseParams(req.GetString("params", ""))
		if err != nil {
			return toolError(err)
		}
		rows, err := store.Mutate(ctx, query, params...)
		if err != nil {
			return toolError(err)
		}
		return formatRows(rows)
	}
}

// --- due_snippets ---

func dueTool() mcp.Tool {
	return mcp.NewTool("due_snippets",
		mcp.WithDescription("List snippets currently due for review, oldest first as stored. Dismissed snippets are excluded."),
		mcp.WithString("reference",
			mcp.Description("Optional vault-relative note path to restrict the listing to."),
		),
	)
}

func dueHandler(store ports.SnippetStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reference := req.GetString("reference", "")
		snippets := commands.NewListDueCommand(store, time.Now().Unix(), reference).Execute(ctx)
		out, err := json.MarshalIndent(snippets, "", "  ")
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// --- helpers ---

func parseParams(raw string) ([]any, error) {
	if raw == "" {
		return nil, nil
	}
	var params []any
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	return params, nil
}

func formatRows(rows []ports.Row) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ripasso/internal/adapters/filesystem"
	mcpadapter "ripasso/internal/adapters/mcp"
	"ripasso/internal/adapters/sqlite"
	"ripasso/internal/config"
	"ripasso/internal/storage"
)

func main() {
	cfg := config.Load()
	vaultFlag := flag.String("vault", cfg.Vault, "path to the vault")
	dbFlag := flag.String("database", cfg.Database, "vault-relative database file")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vault := filesystem.NewVault(*vaultFlag)
	repo, err := storage.Open(ctx, vault, sqlite.Runtime(), *dbFlag, storage.Schema, nil)
	if err != nil {
		log.Fatalf("Failed to open snippet database: %v", err)
	}
	defer repo.Close()

	// The server is long-running, so external rewrites of the database
	// file (e.g. vault sync) are picked up while it serves.
	watcher := filesystem.NewWatcher(vault, repo.Path())
	go func() {
		if err := watcher.Watch(ctx, repo); err != nil && ctx.Err() == nil {
			log.Printf("Watcher stopped: %v", err)
		}
	}()

	mcpServer := server.NewMCPServer(
		"ripasso-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterTools(mcpServer, repo)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}

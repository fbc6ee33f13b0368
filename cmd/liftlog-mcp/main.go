package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/mcp"
	"github.com/claude/liftlog/internal/reconcile"
	"github.com/claude/liftlog/internal/secrets"
	"github.com/claude/liftlog/internal/store"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("url", "", "base URL of a remote LiftLog server")
	apiKey := flag.String("api-key", os.Getenv("LIFTLOG_API_KEY"), "API key for parse/import tools (or LIFTLOG_API_KEY)")
	configPath := flag.String("config", "", "config file for local mode (direct database access)")
	flag.Parse()

	// Logs go to stderr; stdout carries the MCP stdio transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	switch {
	case *serverURL != "":
		ds = mcp.NewHTTPClient(*serverURL, *apiKey)
		log.Info("LiftLog MCP server starting", "mode", "remote", "url", *serverURL, "version", Version)
	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := store.NewPostgres(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		engine := reconcile.NewEngine(db, log)
		sec := secrets.NewStore(cfg.Secrets.Path)
		ds = mcp.NewLocal(db, engine, sec, log)
		log.Info("LiftLog MCP server starting", "mode", "local", "version", Version)
	default:
		fmt.Fprintf(os.Stderr, "Usage: liftlog-mcp -url http://liftlog:8080 [-api-key KEY]\n")
		fmt.Fprintf(os.Stderr, "       liftlog-mcp -config config.yaml\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s := mcp.New(ds, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

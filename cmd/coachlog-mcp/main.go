package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/coachlog/internal/mcp"
	"github.com/claude/coachlog/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// coachlog-mcp serves CoachLog data to MCP clients over stdio. By default it
// opens the local snapshot database; with -server it proxies a running
// CoachLog instance over its REST API instead.
func main() {
	serverURL := flag.String("server", "", "base URL of a running CoachLog server (remote mode)")
	dbPath := flag.String("db", "coachlog.db", "path to the local snapshot database")
	flag.Parse()

	// Logs go to stderr: stdout belongs to the MCP transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *serverURL != "" {
		ds = mcp.NewHTTPClient(*serverURL)
		log.Info("remote mode", "server", *serverURL)
	} else {
		store, err := storage.OpenSQLite(*dbPath)
		if err != nil {
			log.Error("failed to open snapshot db", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		ds = mcp.NewLocalSource(store)
		log.Info("local mode", "db", *dbPath)
	}

	s := mcp.New(ds, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

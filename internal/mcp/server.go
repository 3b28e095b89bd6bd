package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("CoachLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("CoachLog training data server. Query logged sessions, per-session metrics (volume, duration, intensity), weekly training summaries, and workout programs."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListSessions, Handler: h.listSessions},
		server.ServerTool{Tool: toolGetSessionMetrics, Handler: h.getSessionMetrics},
		server.ServerTool{Tool: toolGetWeeklySummary, Handler: h.getWeeklySummary},
		server.ServerTool{Tool: toolListPrograms, Handler: h.listPrograms},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
		server.ServerResource{Resource: resWeeklySummary, Handler: h.weeklySummary},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentSessions = mcp.NewResource(
	"coachlog://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("Logged training sessions from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resWeeklySummary = mcp.NewResource(
	"coachlog://weekly_summary",
	"Weekly Summary",
	mcp.WithResourceDescription("Per-week training aggregates: total volume (kg), total duration (min), mean session intensity"),
	mcp.WithMIMEType("application/json"),
)

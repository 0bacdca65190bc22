package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"aircheck/internal/core"
	"aircheck/internal/schedule"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer exposes the recurrence engine and lineup over the MCP stdio
// transport.
type MCPServer struct {
	planner  *core.Planner
	shows    []core.Show
	logger   *slog.Logger
	location *time.Location
}

// NewMCPServer creates a new MCP server instance.
func NewMCPServer(planner *core.Planner, shows []core.Show, logger *slog.Logger, location *time.Location) *MCPServer {
	return &MCPServer{
		planner:  planner,
		shows:    shows,
		logger:   logger,
		location: location,
	}
}

// Run starts the MCP server using stdio transport.
func (s *MCPServer) Run() error {
	mcpServer := server.NewMCPServer(
		"aircheck",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)

	s.logger.Info("MCP server starting on stdio")
	return server.ServeStdio(mcpServer)
}

func (s *MCPServer) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool("schedule_preview",
		mcp.WithDescription("Parse a show schedule pattern and report its description and next air time. Accepts the 5-field cron subset ('0 18 * * 1-5') and the natural form ('06:00:00 on Monday, Friday')."),
		mcp.WithString("pattern",
			mcp.Required(),
			mcp.Description("Schedule pattern to preview"),
		),
		mcp.WithString("now",
			mcp.Description("Reference instant, RFC3339 (default: current time)"),
		),
		mcp.WithString("tz",
			mcp.Description("IANA timezone for resolution (default: the daemon's fallback zone)"),
		),
	), s.handleSchedulePreview)

	mcpServer.AddTool(mcp.NewTool("lineup_list",
		mcp.WithDescription("List the configured shows with their next air times, soonest first"),
		mcp.WithString("now",
			mcp.Description("Reference instant, RFC3339 (default: current time)"),
		),
	), s.handleLineupList)

	s.logger.Info("MCP tools registered", "count", 2)
}

// handleSchedulePreview handles the schedule_preview tool call.
func (s *MCPServer) handleSchedulePreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern := mcp.ParseString(request, "pattern", "")
	if pattern == "" {
		return mcp.NewToolResultError("pattern is required"), nil
	}

	loc := s.location
	if tz := mcp.ParseString(request, "tz", ""); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("unknown timezone: %s", tz)), nil
		}
		loc = parsed
	}

	now := time.Now()
	if raw := mcp.ParseString(request, "now", ""); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return mcp.NewToolResultError("now must be RFC3339"), nil
		}
		now = parsed
	}

	spec, err := schedule.Parse(pattern)
	if err != nil {
		// Pass-through: the raw pattern remains the display text.
		return mcp.NewToolResultText(fmt.Sprintf(
			"Pattern: %s\nNot a recognized schedule pattern; shown as-is.\nDisplay: %s",
			pattern, schedule.DescribePattern(pattern))), nil
	}

	result := fmt.Sprintf("Pattern: %s\nSchedule: %s\n", pattern, schedule.Describe(spec))
	if next, ok := schedule.Next(spec, now, loc); ok {
		result += fmt.Sprintf("Next airing: %s (%s)\n",
			next.Format(time.RFC3339), schedule.RelativeLabel(next, now))
	} else {
		result += "Next airing: none (schedule cannot produce a concrete time)\n"
	}
	return mcp.NewToolResultText(result), nil
}

// handleLineupList handles the lineup_list tool call.
func (s *MCPServer) handleLineupList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := time.Now().In(s.location)
	if raw := mcp.ParseString(request, "now", ""); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return mcp.NewToolResultError("now must be RFC3339"), nil
		}
		now = parsed.In(s.location)
	}

	airings := s.planner.Lineup(s.shows, now)
	if len(airings) == 0 {
		return mcp.NewToolResultText("No shows configured."), nil
	}

	result := fmt.Sprintf("%d shows:\n\n", len(airings))
	for _, airing := range airings {
		result += fmt.Sprintf("%s\n  Schedule: %s\n", airing.Show, airing.Description)
		if airing.AirsAt != nil {
			result += fmt.Sprintf("  Next airing: %s (%s)\n",
				airing.AirsAt.Format(time.RFC3339), airing.When)
		} else {
			result += "  Next airing: none\n"
		}
		result += "\n"
	}
	return mcp.NewToolResultText(result), nil
}

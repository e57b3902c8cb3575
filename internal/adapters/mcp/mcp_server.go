// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider) *Server {
	s := &Server{
		stateProvider: stateProvider,
	}

	s.server = server.NewMCPServer(
		"focusmate",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_focus_state",
			mcp.WithDescription("Get the current focus state: whether a session is running, elapsed seconds, and whether the user is on a rest break"),
		),
		s.handleGetFocusState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"start_focus",
			mcp.WithDescription("Start a new focus session"),
		),
		s.handleStartFocus,
	)

	stopTool := mcp.NewTool(
		"stop_focus",
		mcp.WithDescription("Stop the active focus session, either as a rest break or a real finish"),
		mcp.WithString(
			"mode",
			mcp.Description("How to stop: \"pause\" for a rest break, \"end\" to finish (default: end)"),
			mcp.Enum("pause", "end"),
		),
		mcp.WithString(
			"note",
			mcp.Description("Optional note to store with the session"),
		),
	)
	s.server.AddTool(stopTool, s.handleStopFocus)

	s.server.AddTool(
		mcp.NewTool(
			"list_deadlines",
			mcp.WithDescription("List the user's deadlines in display order"),
		),
		s.handleListDeadlines,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_record",
			mcp.WithDescription("Get the user's focus record: badge count and title"),
		),
		s.handleGetRecord,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// handleGetFocusState handles the get_focus_state tool.
func (s *Server) handleGetFocusState(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state := s.stateProvider.FocusState()

	result := map[string]interface{}{
		"state":           string(state.State),
		"elapsed_seconds": state.ElapsedSeconds,
		"resting":         state.Resting,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleStartFocus handles the start_focus tool.
func (s *Server) handleStartFocus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.stateProvider.StartFocus(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start focus: %v", err)), nil
	}

	state := s.stateProvider.FocusState()
	result := map[string]interface{}{
		"state":           string(state.State),
		"elapsed_seconds": state.ElapsedSeconds,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleStopFocus handles the stop_focus tool.
func (s *Server) handleStopFocus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := domain.StopMode(request.GetString("mode", string(domain.StopEnd)))
	if mode != domain.StopPause && mode != domain.StopEnd {
		return mcp.NewToolResultError("mode must be \"pause\" or \"end\""), nil
	}
	note := request.GetString("note", "")

	outcome, err := s.stateProvider.StopFocus(ctx, mode, note)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to stop focus: %v", err)), nil
	}

	result := map[string]interface{}{
		"mode":             string(mode),
		"duration_seconds": outcome.DurationSeconds,
		"minutes":          outcome.Minutes,
		"badge_earned":     outcome.BadgeEarned,
		"note":             outcome.Note,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal outcome: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleListDeadlines handles the list_deadlines tool.
func (s *Server) handleListDeadlines(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deadlines, err := s.stateProvider.ListDeadlines(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list deadlines: %v", err)), nil
	}

	var list []map[string]interface{}
	for _, d := range deadlines {
		list = append(list, map[string]interface{}{
			"id":            d.ID,
			"task":          d.Task,
			"deadline_date": d.DeadlineDate,
			"done":          d.Done,
			"current_doing": d.CurrentDoing,
		})
	}

	result := map[string]interface{}{
		"deadlines":   list,
		"total_count": len(deadlines),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deadlines: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetRecord handles the get_record tool.
func (s *Server) handleGetRecord(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	record, err := s.stateProvider.Record(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get record: %v", err)), nil
	}

	result := map[string]interface{}{
		"badge_count": record.BadgeCount,
		"title":       record.Title,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

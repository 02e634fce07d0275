package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/rover-mission/mission/control"
	"github.com/wricardo/rover-mission/mission/service"
)

// Version is reported to MCP clients
const Version = "1.0.0"

// Server wraps an MCP server whose tools call the mission service directly
type Server struct {
	service   service.MissionService
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers every tool
func NewServer(missionService service.MissionService) *Server {
	s := &Server{service: missionService}

	s.mcpServer = server.NewMCPServer(
		"Rover Mission Control",
		Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Rover Mission Control - MCP Interface

Rovers move on a plateau whose valid cells run from (0,0) to (width,height) inclusive.

MISSION FORMAT:
  line 1: "<width> <height>"
  then per rover: "<x> <y> <N|E|S|W>" followed by an instruction line over L, R, M
  (L/R turn 90 degrees in place, M moves one cell forward)

AVAILABLE TOOLS:
- simulate_rovers: run mission text and get each rover's final "x y heading"
- validate_mission: check mission text without running it
- list_missions: list the missions in the catalog
- run_mission: run a catalog mission by id

A rover that would leave the plateau or hit another rover aborts the run unless policy is "halt".`),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying mcp-go server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// HandleMessage processes one JSON-RPC message
func (s *Server) HandleMessage(ctx context.Context, body []byte) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, json.RawMessage(body))
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "simulate_rovers",
		Description: "Run a rover mission and return the final position of every rover",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"input": map[string]interface{}{
					"type":        "string",
					"description": "Mission text (plain format or YAML)",
				},
				"policy": map[string]interface{}{
					"type":        "string",
					"description": "Failure policy: abort (default) or halt",
					"enum":        []string{"abort", "halt"},
				},
			},
			Required: []string{"input"},
		},
	}, s.handleSimulate)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "validate_mission",
		Description: "Validate mission text without running it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"input": map[string]interface{}{
					"type":        "string",
					"description": "Mission text (plain format or YAML)",
				},
			},
			Required: []string{"input"},
		},
	}, s.handleValidate)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_missions",
		Description: "List the missions available in the catalog",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListMissions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "run_mission",
		Description: "Run a catalog mission by id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mission_id": map[string]interface{}{
					"type":        "string",
					"description": "Mission id from list_missions (empty runs the default mission)",
				},
				"policy": map[string]interface{}{
					"type":        "string",
					"description": "Failure policy: abort (default) or halt",
					"enum":        []string{"abort", "halt"},
				},
			},
		},
	}, s.handleRunMission)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	source, _ := args["input"].(string)
	if strings.TrimSpace(source) == "" {
		return mcp.NewToolResultError("input is required"), nil
	}

	policy, err := control.ParsePolicy(stringArg(args, "policy"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.Simulate(ctx, source, service.RunOptions{Policy: policy})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Mission failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatSimulation(result)), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source := stringArg(arguments(request), "input")

	result, err := s.service.Validate(ctx, source)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatValidation(result)), nil
}

func (s *Server) handleListMissions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	missions, err := s.service.ListMissions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(missions) == 0 {
		return mcp.NewToolResultText("No missions available"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available missions (%d):\n", len(missions))
	for _, m := range missions {
		fmt.Fprintf(&b, "- %s: %s (%dx%d plateau, %d rovers, %s)",
			m.MissionID, m.Name, m.Plateau.Width, m.Plateau.Height, m.RoverCount, m.Format)
		if m.Description != "" {
			fmt.Fprintf(&b, " - %s", m.Description)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleRunMission(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	policy, err := control.ParsePolicy(stringArg(args, "policy"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.RunMission(ctx, stringArg(args, "mission_id"), service.RunOptions{Policy: policy})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Mission failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatSimulation(result)), nil
}

func stringArg(args map[string]interface{}, key string) string {
	value, _ := args[key].(string)
	return value
}

func formatSimulation(result *service.SimulationResult) string {
	var b strings.Builder
	if result.MissionID != "" {
		fmt.Fprintf(&b, "Mission: %s\n", result.MissionID)
	}
	fmt.Fprintf(&b, "Plateau: %dx%d (policy: %s)\n", result.Plateau.Width, result.Plateau.Height, result.Policy)
	b.WriteString("Final positions:\n")
	for _, line := range result.Lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(&b, "HALTED %s\n", failure.Error())
	}
	b.WriteString(result.Summary)
	return b.String()
}

func formatValidation(result *service.ValidationResult) string {
	if !result.Valid {
		return fmt.Sprintf("INVALID (%s): %s", result.Format, result.Error)
	}
	return fmt.Sprintf("VALID (%s): %dx%d plateau, %d rovers, %d instructions",
		result.Format, result.Plateau.Width, result.Plateau.Height, result.RoverCount, result.InstructionCount)
}

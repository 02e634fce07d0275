// Package mcp exposes the rover mission service as Model Context Protocol tools.
//
// MCP Tools:
//   - simulate_rovers: run mission text (plain or YAML) and return final positions
//   - validate_mission: check mission text without running it
//   - list_missions: list the missions in the catalog
//   - run_mission: run a catalog mission by id
//
// Transport Modes:
//   - Stdio: `rovers mcp` serves the tools on stdin/stdout
//   - HTTP: `rovers serve` forwards POST /mcp bodies to HandleMessage
//
// Usage:
//
//	server := mcp.NewServer(missionService)
//	if err := mcpserver.ServeStdio(server.MCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp

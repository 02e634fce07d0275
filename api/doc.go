// Package api provides the HTTP REST API for rover missions.
//
// Endpoints:
//
// Simulation:
//   - POST /api/simulate - Run mission text and return the final rover states
//   - POST /api/validate - Check mission text without running it
//
// Missions:
//   - GET /api/missions - List the missions in the catalog
//   - GET /api/missions/{id} - Get a mission's canonical text and rover plans
//   - POST /api/missions/{id}/run - Run a catalog mission
//
// Other:
//   - GET /api/health - Health check
//   - GET /ws - WebSocket stream of step events (see transport/websocket)
//   - POST /mcp - MCP JSON-RPC endpoint (see transport/mcp)
//
// Request Format:
//
// Simulation endpoints accept either a JSON body or the raw mission text:
//
//	{
//	  "input": "5 5\n1 2 N\nLMLMLMLMM\n",
//	  "policy": "abort|halt"
//	}
//
// With Content-Type text/plain the body is the mission itself and the policy
// comes from the ?policy= query parameter.
//
// Errors:
//
// Failures are returned as {"error": "..."} with 400 for malformed input,
// 422 for missions that cannot run (bad dimensions, blocked rovers) and 404
// for unknown missions.
package api

// Package websocket streams rover mission runs over a WebSocket connection.
//
// Message Protocol:
//
// The client sends one JSON request per mission:
//   - Incoming: {"input": "5 5\n1 2 N\nLMLMLMLMM\n", "policy": "abort"}
//
// The server answers with a sequence of JSON messages:
//   - {"event": "step", "step": {...}} once per placement and per instruction
//   - {"event": "report", "result": {...}} when the mission completes
//   - {"event": "error", "error": "..."} when parsing or the run fails
//
// Requests on a connection are handled one after another, and each runs on
// its own plateau. The connection stays open until the client closes it.
//
// Usage:
//
//	handler := websocket.NewHandler(missionService, logger)
//	router.Handle("/ws", handler)
package websocket

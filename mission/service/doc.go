// Package service provides the mission layer shared by every transport.
//
// The service package implements:
//   - Simulation of ad-hoc mission text (plain text or YAML)
//   - Validation without running a simulation
//   - Access to named missions held by a MissionCatalog
//
// Core Interfaces:
//
// MissionService is the main interface used by the CLI, the REST API, the
// websocket stream and the MCP tools. MissionCatalog is implemented by the
// catalog package, which loads mission files from a directory.
//
// Architecture:
//
// Every Simulate or RunMission call builds its own plateau and rovers through
// the control package. Nothing is shared between runs and nothing is stored,
// so concurrent requests from the HTTP server never touch the same plateau.
//
// Usage:
//
//	catalogMgr, err := catalog.NewManager("missions")
//	if err != nil {
//		log.Fatal(err)
//	}
//	missions := service.NewMissionService(catalogMgr, logger)
//
//	result, err := missions.Simulate(ctx, "5 5\n1 2 N\nLMLMLMLMM\n", service.RunOptions{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Lines)
package service

// Package engine provides the core simulation logic for the rover mission.
//
// The engine package implements:
//   - Headings and the rotation/movement lookup tables
//   - Instruction decoding (L, R, M)
//   - The Plateau, which owns grid bounds and occupied cells
//   - The Rover, which turns and moves against a shared Plateau
//
// Core Types:
//
// Plateau arbitrates whether a cell is legal: inside the inclusive range
// [0,width] x [0,height] and not occupied by another rover. Rover keeps its
// own position and heading in step with the Plateau entry behind its Handle.
//
// Usage:
//
//	plateau, err := engine.NewPlateau(5, 5)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rover, err := engine.NewRover(1, 2, engine.North, plateau)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := rover.Execute(engine.Move); err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(rover.State()) // "1 3 N"
//
// Errors:
//
// Every failure wraps one of the sentinel errors declared in errors.go, so
// callers match them with errors.Is.
package engine

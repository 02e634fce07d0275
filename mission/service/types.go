package service

import (
	"github.com/wricardo/rover-mission/mission/control"
	"github.com/wricardo/rover-mission/mission/engine"
	"github.com/wricardo/rover-mission/mission/input"
)

// MissionInfo describes a mission file known to the catalog
type MissionInfo struct {
	Filename    string           `json:"filename"`
	MissionID   string           `json:"mission_id"` // Identifier to use with RunMission
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Format      string           `json:"format"` // "text" or "yaml"
	Plateau     input.Dimensions `json:"plateau"`
	RoverCount  int              `json:"rover_count"`
}

// MissionDetail is a mission with its canonical text and rover descriptors
type MissionDetail struct {
	Info   *MissionInfo `json:"info"`
	Lines  []string     `json:"lines"`
	Rovers []RoverPlan  `json:"rovers"`
}

// RoverPlan is the starting state and instructions of one rover
type RoverPlan struct {
	Rover        int               `json:"rover"`
	Start        engine.RoverState `json:"start"`
	Instructions string            `json:"instructions"`
}

// SimulationResult contains the outcome of a mission run
type SimulationResult struct {
	MissionID string                `json:"mission_id,omitempty"`
	Policy    control.Policy        `json:"policy"`
	Plateau   input.Dimensions      `json:"plateau"`
	Rovers    []control.RoverResult `json:"rovers"`
	Lines     []string              `json:"lines"`
	Summary   string                `json:"summary"`
	Occupied  []engine.Position     `json:"occupied"`
	Failures  []control.RoverError  `json:"failures,omitempty"`

	// Report is the raw orchestrator output
	Report *control.Report `json:"-"`
}

// ValidationResult captures the outcome of validating mission text.
// When Valid is false, Error holds the parse failure and Line the offending line.
type ValidationResult struct {
	Valid            bool             `json:"valid"`
	Format           string           `json:"format"`
	Plateau          input.Dimensions `json:"plateau"`
	RoverCount       int              `json:"rover_count"`
	InstructionCount int              `json:"instruction_count"`
	Error            string           `json:"error,omitempty"`
	Line             int              `json:"line,omitempty"`
}

func newSimulationResult(report *control.Report, policy control.Policy) *SimulationResult {
	return &SimulationResult{
		Policy:   policy,
		Plateau:  report.Plateau,
		Rovers:   report.Rovers,
		Lines:    report.Lines(),
		Summary:  report.Summary(),
		Occupied: report.Occupied,
		Failures: report.Failures,
		Report:   report,
	}
}

func planRovers(mission *input.Mission) []RoverPlan {
	plans := make([]RoverPlan, len(mission.Rovers))
	for i, rover := range mission.Rovers {
		plans[i] = RoverPlan{
			Rover:        i + 1,
			Start:        rover.Start(),
			Instructions: engine.FormatInstructions(rover.Instructions),
		}
	}
	return plans
}

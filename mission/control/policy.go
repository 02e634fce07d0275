package control

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wricardo/rover-mission/mission/engine"
)

// Policy decides what happens when a rover cannot be placed or moved
type Policy string

const (
	PolicyAbort     Policy = "abort"
	PolicyHaltRover Policy = "halt"
)

// ParsePolicy accepts "abort" or "halt" (case-insensitive). Empty means PolicyAbort.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(PolicyAbort):
		return PolicyAbort, nil
	case string(PolicyHaltRover), "halt-rover", "skip":
		return PolicyHaltRover, nil
	}
	return "", fmt.Errorf("unknown failure policy %q (use %q or %q)", s, PolicyAbort, PolicyHaltRover)
}

// RoverError reports which rover failed and at which instruction.
// Step is the 1-based instruction index, or 0 when placement failed.
type RoverError struct {
	Rover       int                `json:"rover"`
	Step        int                `json:"step"`
	Instruction engine.Instruction `json:"-"`
	Err         error              `json:"-"`
}

func (e *RoverError) Error() string {
	if e.Step == 0 {
		return fmt.Sprintf("rover %d: placement failed: %v", e.Rover, e.Err)
	}
	return fmt.Sprintf("rover %d: instruction %d (%s) failed: %v", e.Rover, e.Step, e.Instruction, e.Err)
}

func (e *RoverError) Unwrap() error {
	return e.Err
}

// MarshalJSON renders the failure with its message
func (e RoverError) MarshalJSON() ([]byte, error) {
	payload := struct {
		Rover       int    `json:"rover"`
		Step        int    `json:"step"`
		Instruction string `json:"instruction,omitempty"`
		Error       string `json:"error"`
	}{
		Rover: e.Rover,
		Step:  e.Step,
		Error: e.Error(),
	}
	if e.Step > 0 {
		payload.Instruction = e.Instruction.String()
	}
	return json.Marshal(payload)
}

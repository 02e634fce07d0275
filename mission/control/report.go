package control

import (
	"fmt"
	"io"
	"strings"

	"github.com/wricardo/rover-mission/mission/engine"
	"github.com/wricardo/rover-mission/mission/input"
)

// RoverResult is the outcome for a single placed rover
type RoverResult struct {
	Rover     int               `json:"rover"`
	Start     engine.RoverState `json:"start"`
	Final     engine.RoverState `json:"final"`
	Executed  int               `json:"executed"`
	Completed bool              `json:"completed"`
}

// Report collects the final states of a mission run
type Report struct {
	Plateau  input.Dimensions  `json:"plateau"`
	Rovers   []RoverResult     `json:"rovers"`
	Occupied []engine.Position `json:"occupied"`
	Failures []RoverError      `json:"failures,omitempty"`
}

// States returns the final rover states in input order
func (r *Report) States() []engine.RoverState {
	states := make([]engine.RoverState, len(r.Rovers))
	for i, rover := range r.Rovers {
		states[i] = rover.Final
	}
	return states
}

// Lines returns one "<x> <y> <heading>" line per reported rover
func (r *Report) Lines() []string {
	lines := make([]string, len(r.Rovers))
	for i, rover := range r.Rovers {
		lines[i] = rover.Final.String()
	}
	return lines
}

// Summary is the human-readable list of occupied cells
func (r *Report) Summary() string {
	cells := make([]string, len(r.Occupied))
	for i, pos := range r.Occupied {
		cells[i] = pos.String()
	}
	return fmt.Sprintf("Final rover(s) position(s): [%s]", strings.Join(cells, ", "))
}

// FailureLines formats each recorded failure on its own line
func (r *Report) FailureLines() []string {
	lines := make([]string, len(r.Failures))
	for i := range r.Failures {
		lines[i] = r.Failures[i].Error()
	}
	return lines
}

// WriteTo writes the output lines, newline terminated
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, line := range r.Lines() {
		n, err := fmt.Fprintln(w, line)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

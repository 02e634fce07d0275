// Package input turns mission text into typed plateau dimensions and rover
// descriptors. Parsing is all-or-nothing: the first structural problem aborts
// with a *ParseError that matches engine.ErrMalformedInput.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wricardo/rover-mission/mission/engine"
)

const (
	// MinLines is the shortest valid mission: dimensions plus one rover pair
	MinLines = 3

	// MaxLineSize is the longest line ReadLines accepts
	MaxLineSize = 4 << 20
)

// Dimensions holds the plateau size read from the first line
type Dimensions struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// RoverDescriptor is a rover's starting state and its instruction sequence
type RoverDescriptor struct {
	X            int                  `json:"x"`
	Y            int                  `json:"y"`
	Heading      engine.Heading       `json:"heading"`
	Instructions []engine.Instruction `json:"-"`
}

// Start returns the starting state of the rover
func (d RoverDescriptor) Start() engine.RoverState {
	return engine.RoverState{X: d.X, Y: d.Y, Heading: d.Heading}
}

// Mission is a fully parsed input
type Mission struct {
	Plateau Dimensions        `json:"plateau"`
	Rovers  []RoverDescriptor `json:"rovers"`
}

// InstructionCount returns the total number of instructions across all rovers
func (m *Mission) InstructionCount() int {
	total := 0
	for _, rover := range m.Rovers {
		total += len(rover.Instructions)
	}
	return total
}

// Lines renders the mission back into its canonical text form
func (m *Mission) Lines() []string {
	lines := make([]string, 0, 1+2*len(m.Rovers))
	lines = append(lines, fmt.Sprintf("%d %d", m.Plateau.Width, m.Plateau.Height))
	for _, rover := range m.Rovers {
		lines = append(lines, rover.Start().String(), engine.FormatInstructions(rover.Instructions))
	}
	return lines
}

// ParseError describes the first malformed line found in the input.
// Line is 1-based; zero means the error concerns the input as a whole.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("malformed input: %s", e.Reason)
	}
	return fmt.Sprintf("malformed input: line %d: %s", e.Line, e.Reason)
}

// Unwrap lets callers match parse failures with errors.Is(err, engine.ErrMalformedInput)
func (e *ParseError) Unwrap() error {
	return engine.ErrMalformedInput
}

func malformed(line int, format string, args ...interface{}) error {
	return &ParseError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// Parse reads every line from r and parses them as a mission
func Parse(r io.Reader) (*Mission, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return ParseLines(lines)
}

// ParseString parses a mission held in memory
func ParseString(text string) (*Mission, error) {
	return Parse(strings.NewReader(text))
}

// ReadLines splits r into lines. A trailing newline does not produce an extra
// empty line, and carriage returns from CRLF input are dropped.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, malformed(len(lines)+1, "line is longer than %d bytes", MaxLineSize)
		}
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}

// ParseLines validates raw lines and converts them into a Mission
func ParseLines(lines []string) (*Mission, error) {
	if len(lines) < MinLines {
		return nil, malformed(0, "input must have at least %d lines, got %d", MinLines, len(lines))
	}

	dimensions, err := parseDimensions(trimLine(lines[0]))
	if err != nil {
		return nil, err
	}

	body := lines[1:]
	if len(body)%2 != 0 {
		return nil, malformed(len(lines), "rover position on line %d has no instruction line", len(lines))
	}

	mission := &Mission{
		Plateau: dimensions,
		Rovers:  make([]RoverDescriptor, 0, len(body)/2),
	}

	for i := 0; i < len(body); i += 2 {
		positionLine := i + 2 // 1-based line numbers, offset by the dimensions line
		rover, err := parseRover(positionLine, trimLine(body[i]), trimLine(body[i+1]))
		if err != nil {
			return nil, err
		}
		mission.Rovers = append(mission.Rovers, rover)
	}

	return mission, nil
}

func trimLine(line string) string {
	return strings.TrimSuffix(line, "\r")
}

// parseInt accepts an optional minus sign followed by digits. A leading plus
// sign is rejected.
func parseInt(token string) (int, error) {
	if strings.HasPrefix(token, "+") {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(token)
}

func parseDimensions(line string) (Dimensions, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Dimensions{}, malformed(1, "plateau dimensions must be two integers, got %q", line)
	}

	width, err := parseInt(fields[0])
	if err != nil {
		return Dimensions{}, malformed(1, "plateau width %q is not an integer", fields[0])
	}
	height, err := parseInt(fields[1])
	if err != nil {
		return Dimensions{}, malformed(1, "plateau height %q is not an integer", fields[1])
	}

	return Dimensions{Width: width, Height: height}, nil
}

func parseRover(lineNo int, positionLine, instructionLine string) (RoverDescriptor, error) {
	fields := strings.Fields(positionLine)
	if len(fields) != 3 {
		return RoverDescriptor{}, malformed(lineNo,
			"rover position must be two integers and a cardinal letter, got %q", positionLine)
	}

	x, err := parseInt(fields[0])
	if err != nil {
		return RoverDescriptor{}, malformed(lineNo, "rover x %q is not an integer", fields[0])
	}
	y, err := parseInt(fields[1])
	if err != nil {
		return RoverDescriptor{}, malformed(lineNo, "rover y %q is not an integer", fields[1])
	}
	heading, err := engine.ParseHeading(fields[2])
	if err != nil {
		return RoverDescriptor{}, malformed(lineNo, "rover heading %q must be one of N, E, S, W", fields[2])
	}

	instructions, err := engine.ParseInstructions(instructionLine)
	if err != nil {
		return RoverDescriptor{}, malformed(lineNo+1,
			"rover instructions must be a series of L, R and M, got %q", instructionLine)
	}

	return RoverDescriptor{
		X:            x,
		Y:            y,
		Heading:      heading,
		Instructions: instructions,
	}, nil
}

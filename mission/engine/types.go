package engine

import (
	"fmt"
	"strings"
)

// Heading represents the cardinal direction a rover faces
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

// headingCount is the number of valid headings
const headingCount = 4

var (
	headingLetters = [headingCount]string{"N", "E", "S", "W"}

	// clockwise rotation: N -> E -> S -> W -> N
	rightOf = [headingCount]Heading{East, South, West, North}

	// counter-clockwise rotation: N -> W -> S -> E -> N
	leftOf = [headingCount]Heading{West, North, East, South}

	// movement delta for one forward step
	deltas = [headingCount]Position{
		North: {X: 0, Y: 1},
		East:  {X: 1, Y: 0},
		South: {X: 0, Y: -1},
		West:  {X: -1, Y: 0},
	}
)

// ParseHeading converts a heading letter (N, E, S or W) into a Heading.
// Matching is case-sensitive.
func ParseHeading(s string) (Heading, error) {
	for i, letter := range headingLetters {
		if s == letter {
			return Heading(i), nil
		}
	}
	return 0, fmt.Errorf("%w: heading %q is not one of N, E, S, W", ErrMalformedInput, s)
}

// Valid reports whether h is one of the four cardinal headings
func (h Heading) Valid() bool {
	return h >= North && h <= West
}

// String returns the heading letter
func (h Heading) String() string {
	if !h.Valid() {
		return fmt.Sprintf("Heading(%d)", int(h))
	}
	return headingLetters[h]
}

// Right returns the heading after a clockwise quarter turn
func (h Heading) Right() Heading {
	return rightOf[h]
}

// Left returns the heading after a counter-clockwise quarter turn
func (h Heading) Left() Heading {
	return leftOf[h]
}

// Delta returns the one-cell offset of a forward move along h
func (h Heading) Delta() Position {
	return deltas[h]
}

// MarshalText implements encoding.TextMarshaler so headings serialize as letters
func (h Heading) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("invalid heading %d", int(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (h *Heading) UnmarshalText(text []byte) error {
	parsed, err := ParseHeading(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Instruction is a single rover command
type Instruction byte

const (
	TurnLeft  Instruction = 'L'
	TurnRight Instruction = 'R'
	Move      Instruction = 'M'
)

// String returns the instruction letter
func (i Instruction) String() string {
	return string(rune(i))
}

// ParseInstruction validates a single instruction character
func ParseInstruction(r rune) (Instruction, error) {
	switch Instruction(r) {
	case TurnLeft, TurnRight, Move:
		return Instruction(r), nil
	}
	return 0, fmt.Errorf("%w: instruction %q is not one of L, R, M", ErrMalformedInput, r)
}

// ParseInstructions decodes an instruction line. An empty line yields no instructions.
func ParseInstructions(line string) ([]Instruction, error) {
	instructions := make([]Instruction, 0, len(line))
	for _, r := range line {
		instruction, err := ParseInstruction(r)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, instruction)
	}
	return instructions, nil
}

// FormatInstructions renders instructions back into their compact string form
func FormatInstructions(instructions []Instruction) string {
	var b strings.Builder
	b.Grow(len(instructions))
	for _, instruction := range instructions {
		b.WriteByte(byte(instruction))
	}
	return b.String()
}

// Position represents x,y coordinates on the plateau
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position shifted by delta
func (p Position) Add(delta Position) Position {
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// String formats the position as "[x, y]"
func (p Position) String() string {
	return fmt.Sprintf("[%d, %d]", p.X, p.Y)
}

// RoverState is the externally visible state of a rover
type RoverState struct {
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Heading Heading `json:"heading"`
}

// Position returns the rover's coordinates
func (s RoverState) Position() Position {
	return Position{X: s.X, Y: s.Y}
}

// String formats the state as "<x> <y> <heading>"
func (s RoverState) String() string {
	return fmt.Sprintf("%d %d %s", s.X, s.Y, s.Heading)
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRover(t *testing.T, x, y int, heading Heading) (*Rover, *Plateau) {
	t.Helper()
	plateau, err := NewPlateau(5, 5)
	require.NoError(t, err)
	rover, err := NewRover(x, y, heading, plateau)
	require.NoError(t, err)
	return rover, plateau
}

func TestNewRover(t *testing.T) {
	rover, plateau := createTestRover(t, 4, 5, North)

	assert.Equal(t, RoverState{X: 4, Y: 5, Heading: North}, rover.State())
	assert.Equal(t, len(plateau.OccupiedPositions())-1, int(rover.Handle()))
}

func TestNewRover_InvalidPosition(t *testing.T) {
	plateau, _ := NewPlateau(5, 5)

	_, err := NewRover(6, 0, North, plateau)
	assert.ErrorIs(t, err, ErrInvalidPosition, "out of bounds")

	_, err = NewRover(2, 2, North, plateau)
	require.NoError(t, err)
	_, err = NewRover(2, 2, South, plateau)
	assert.ErrorIs(t, err, ErrInvalidPosition, "collision")

	assert.Len(t, plateau.OccupiedPositions(), 1, "failed placements must not register")
}

func TestNewRover_InvalidHeading(t *testing.T) {
	plateau, _ := NewPlateau(5, 5)
	_, err := NewRover(1, 1, Heading(7), plateau)
	assert.Error(t, err)
}

func TestRover_MovementDeterminism(t *testing.T) {
	tests := []struct {
		heading  Heading
		expected Position
	}{
		{North, Position{2, 3}},
		{East, Position{3, 2}},
		{South, Position{2, 1}},
		{West, Position{1, 2}},
	}

	for _, test := range tests {
		t.Run(test.heading.String(), func(t *testing.T) {
			rover, plateau := createTestRover(t, 2, 2, test.heading)

			require.NoError(t, rover.Execute(Move))
			assert.Equal(t, test.expected, rover.Position())
			assert.Equal(t, test.heading, rover.Heading(), "move must not change heading")

			recorded, _ := plateau.PositionOf(rover.Handle())
			assert.Equal(t, rover.Position(), recorded, "plateau entry follows the rover")
		})
	}
}

func TestRover_RotationClosure(t *testing.T) {
	for _, start := range []Heading{North, East, South, West} {
		for _, turn := range []Instruction{TurnLeft, TurnRight} {
			rover, _ := createTestRover(t, 3, 1, start)
			for i := 0; i < 4; i++ {
				require.NoError(t, rover.Execute(turn))
			}
			assert.Equal(t, RoverState{X: 3, Y: 1, Heading: start}, rover.State(),
				"four %v turns from %v", turn, start)
		}
	}
}

func TestRover_TurnSequence(t *testing.T) {
	rover, _ := createTestRover(t, 0, 0, North)

	for i, want := range []Heading{West, South, East, North} {
		rover.Execute(TurnLeft)
		assert.Equal(t, want, rover.Heading(), "left turn %d", i+1)
	}

	for i, want := range []Heading{East, South, West, North} {
		rover.Execute(TurnRight)
		assert.Equal(t, want, rover.Heading(), "right turn %d", i+1)
	}
}

func TestRover_BlockedMoveLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		heading Heading
	}{
		{"north edge", 2, 5, North},
		{"east edge", 5, 2, East},
		{"south edge", 2, 0, South},
		{"west edge", 0, 2, West},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rover, plateau := createTestRover(t, test.x, test.y, test.heading)
			before := rover.State()

			require.ErrorIs(t, rover.Execute(Move), ErrInvalidPosition)
			assert.Equal(t, before, rover.State())

			recorded, _ := plateau.PositionOf(rover.Handle())
			assert.Equal(t, before.Position(), recorded)
		})
	}
}

func TestRover_BlockedByOtherRover(t *testing.T) {
	plateau, _ := NewPlateau(5, 5)
	NewRover(2, 3, South, plateau)
	rover, _ := NewRover(2, 2, North, plateau)

	require.ErrorIs(t, rover.Execute(Move), ErrInvalidPosition)
	assert.Equal(t, Position{2, 2}, rover.Position())
}

func TestRover_UnknownInstruction(t *testing.T) {
	rover, _ := createTestRover(t, 2, 2, North)

	err := rover.Execute(Instruction('X'))
	require.ErrorIs(t, err, ErrUnknownInstruction)
	assert.EqualError(t, err, `unknown instruction: 'X'`)
	assert.Equal(t, RoverState{X: 2, Y: 2, Heading: North}, rover.State())
}

func TestRover_ClassicScenario(t *testing.T) {
	plateau, _ := NewPlateau(5, 5)

	runRover := func(x, y int, heading Heading, line string) RoverState {
		rover, err := NewRover(x, y, heading, plateau)
		require.NoError(t, err)
		instructions, err := ParseInstructions(line)
		require.NoError(t, err)
		for _, instruction := range instructions {
			require.NoError(t, rover.Execute(instruction), "Execute(%v)", instruction)
		}
		return rover.State()
	}

	assert.Equal(t, "1 3 N", runRover(1, 2, North, "LMLMLMLMM").String())
	assert.Equal(t, "5 1 E", runRover(3, 3, East, "MMRMMRMRRM").String())
}

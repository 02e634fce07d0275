package engine

import "fmt"

// Rover executes instructions against a shared Plateau.
// The Plateau must outlive every Rover registered on it.
type Rover struct {
	x       int
	y       int
	heading Heading
	handle  Handle
	plateau *Plateau
}

// NewRover places a rover at (x, y) facing heading
func NewRover(x, y int, heading Heading, plateau *Plateau) (*Rover, error) {
	if !heading.Valid() {
		return nil, fmt.Errorf("%w: heading %d", ErrMalformedInput, int(heading))
	}

	handle, err := plateau.PlaceInitial(x, y)
	if err != nil {
		return nil, err
	}

	return &Rover{
		x:       x,
		y:       y,
		heading: heading,
		handle:  handle,
		plateau: plateau,
	}, nil
}

// Execute applies a single instruction. A rejected move leaves the rover untouched.
func (r *Rover) Execute(instruction Instruction) error {
	switch instruction {
	case TurnLeft:
		r.heading = r.heading.Left()
	case TurnRight:
		r.heading = r.heading.Right()
	case Move:
		return r.moveForward()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownInstruction, rune(instruction))
	}
	return nil
}

func (r *Rover) moveForward() error {
	next := r.Position().Add(r.heading.Delta())

	if err := r.plateau.UpdatePosition(r.handle, next.X, next.Y); err != nil {
		return err
	}

	r.x, r.y = next.X, next.Y
	return nil
}

// Position returns the rover's current coordinates
func (r *Rover) Position() Position {
	return Position{X: r.x, Y: r.y}
}

// Heading returns the direction the rover faces
func (r *Rover) Heading() Heading {
	return r.heading
}

// Handle returns the rover's index on the plateau
func (r *Rover) Handle() Handle {
	return r.handle
}

// State returns a snapshot of position and heading
func (r *Rover) State() RoverState {
	return RoverState{X: r.x, Y: r.y, Heading: r.heading}
}

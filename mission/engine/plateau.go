package engine

import "fmt"

// Handle identifies a rover's entry in the plateau's occupied list
type Handle int

// Plateau owns the grid bounds and the cells currently held by rovers.
// Valid coordinates run from 0 to width and 0 to height, both inclusive.
type Plateau struct {
	width    int
	height   int
	occupied []Position
}

// NewPlateau creates an empty plateau with the given dimensions
func NewPlateau(width, height int) (*Plateau, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: width and height must be non-negative, got %dx%d",
			ErrInvalidDimensions, width, height)
	}

	return &Plateau{
		width:    width,
		height:   height,
		occupied: []Position{},
	}, nil
}

// Width returns the largest valid x coordinate
func (p *Plateau) Width() int {
	return p.width
}

// Height returns the largest valid y coordinate
func (p *Plateau) Height() int {
	return p.height
}

// InBounds reports whether (x, y) lies inside [0,width] x [0,height]
func (p *Plateau) InBounds(x, y int) bool {
	return x >= 0 && x <= p.width && y >= 0 && y <= p.height
}

// IsOccupied reports whether any rover currently holds (x, y)
func (p *Plateau) IsOccupied(x, y int) bool {
	for _, pos := range p.occupied {
		if pos.X == x && pos.Y == y {
			return true
		}
	}
	return false
}

// PlaceInitial registers a new rover at (x, y) and returns its handle
func (p *Plateau) PlaceInitial(x, y int) (Handle, error) {
	if err := p.validatePosition(x, y); err != nil {
		return 0, err
	}

	p.occupied = append(p.occupied, Position{X: x, Y: y})
	return Handle(len(p.occupied) - 1), nil
}

// UpdatePosition moves the rover behind handle to (x, y).
// The check runs against every occupied cell, including the one held by the
// handle itself, so a rover cannot "move" onto the cell it already occupies.
func (p *Plateau) UpdatePosition(handle Handle, x, y int) error {
	if handle < 0 || int(handle) >= len(p.occupied) {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}

	if err := p.validatePosition(x, y); err != nil {
		return err
	}

	p.occupied[handle] = Position{X: x, Y: y}
	return nil
}

// PositionOf returns the cell recorded for handle
func (p *Plateau) PositionOf(handle Handle) (Position, error) {
	if handle < 0 || int(handle) >= len(p.occupied) {
		return Position{}, fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	return p.occupied[handle], nil
}

// OccupiedPositions returns a copy of the occupied cells in handle order
func (p *Plateau) OccupiedPositions() []Position {
	positions := make([]Position, len(p.occupied))
	copy(positions, p.occupied)
	return positions
}

func (p *Plateau) validatePosition(x, y int) error {
	if !p.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) is outside the plateau (0..%d, 0..%d)",
			ErrInvalidPosition, x, y, p.width, p.height)
	}
	if p.IsOccupied(x, y) {
		return fmt.Errorf("%w: (%d,%d) is already occupied", ErrInvalidPosition, x, y)
	}
	return nil
}

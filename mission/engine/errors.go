package engine

import "errors"

var (
	ErrMalformedInput     = errors.New("malformed input")
	ErrInvalidDimensions  = errors.New("invalid plateau dimensions")
	ErrInvalidPosition    = errors.New("invalid position")
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrUnknownHandle      = errors.New("unknown rover handle")
)

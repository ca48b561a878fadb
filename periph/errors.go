package periph

import "errors"

var (
	ErrInvalidEvent     = errors.New("invalid_event")
	ErrInvalidTimer     = errors.New("invalid_timer")
	ErrInvalidState     = errors.New("invalid_state")
	ErrInvalidDirection = errors.New("invalid_direction")
)

package bin

import "errors"

// bin errors
var (
	ErrInvalidLength = errors.New("invalid length")
)

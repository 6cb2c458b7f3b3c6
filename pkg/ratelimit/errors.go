package ratelimit

import "errors"

// ErrInvalidRule indicates a rate limit rule string could not be parsed.
var ErrInvalidRule = errors.New("invalid rate limit rule")

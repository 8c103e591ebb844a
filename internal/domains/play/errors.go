package play

import "errors"

var (
	ErrPlayLogNotFound = errors.New("play log not found")
	ErrInvalidPlayLog  = errors.New("invalid play log")
)

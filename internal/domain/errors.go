package domain

import "errors"

var (
	ErrNotFound    = errors.New("employee not found")
	ErrInvalidSeed = errors.New("invalid seed record")
)

package game

import "errors"

var (
	// ErrInvalidAction is returned by Step for actions outside the defined set.
	ErrInvalidAction = errors.New("invalid action")
	// ErrInvalidConfig is returned when an episode is built with unusable rules.
	ErrInvalidConfig = errors.New("invalid game config")
)

package communication

import (
	"errors"

	"coinflip/game"
)

var ErrSessionNotFound = errors.New("session not found")

// Error codes carried in ErrorResponse so clients can recover sentinel errors.
const (
	CodeInvalidAction   = "invalid_action"
	CodeSessionNotFound = "session_not_found"
	CodeBadRequest      = "bad_request"
)

type CreateRequest struct {
	// Seed fixes the session's randomness. Zero lets the server pick one.
	Seed uint64 `json:"seed,omitempty"`
}

// StepRequest names the action to apply. A missing action is rejected rather
// than read as the zero action.
type StepRequest struct {
	Action *game.Action `json:"action"`
}

type SessionResponse struct {
	ID          string           `json:"id"`
	Observation game.Observation `json:"observation"`
	Score       int              `json:"score"`
	Terminal    bool             `json:"terminal"`
}

type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

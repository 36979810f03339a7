package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"coinflip/communication"
	"coinflip/game"
)

const DefaultTimeout = 10 * time.Second

// Remote plays a game session hosted by a coinflip server. It satisfies
// game.Environment, so strategies and the local engine cannot tell it apart
// from an in-process episode.
type Remote struct {
	serverURL string
	http      *http.Client
	id        string
}

type Option func(r *Remote)

func WithHTTPClient(c *http.Client) Option {
	return func(r *Remote) {
		if c != nil {
			r.http = c
		}
	}
}

// Dial opens a new session. A zero seed lets the server choose one.
func Dial(serverURL string, seed uint64, options ...Option) (*Remote, error) {
	r := &Remote{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, option := range options {
		option(r)
	}

	var resp communication.SessionResponse
	if err := r.do(http.MethodPost, "/sessions", communication.CreateRequest{Seed: seed}, http.StatusCreated, &resp); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	r.id = resp.ID
	return r, nil
}

func (r *Remote) ID() string {
	return r.id
}

func (r *Remote) Reset() (game.Observation, error) {
	var resp communication.SessionResponse
	if err := r.do(http.MethodPost, r.path("/reset"), nil, http.StatusOK, &resp); err != nil {
		return game.Observation{}, err
	}
	return resp.Observation, nil
}

func (r *Remote) Observe() (game.Observation, error) {
	var resp communication.SessionResponse
	if err := r.do(http.MethodGet, r.path(""), nil, http.StatusOK, &resp); err != nil {
		return game.Observation{}, err
	}
	return resp.Observation, nil
}

func (r *Remote) Step(action game.Action) (game.StepResult, error) {
	if !action.Valid() {
		return game.StepResult{}, fmt.Errorf("%w: %d", game.ErrInvalidAction, int(action))
	}
	var res game.StepResult
	if err := r.do(http.MethodPost, r.path("/step"), communication.StepRequest{Action: &action}, http.StatusOK, &res); err != nil {
		return game.StepResult{}, err
	}
	return res, nil
}

// Close ends the session on the server.
func (r *Remote) Close() error {
	return r.do(http.MethodDelete, r.path(""), nil, http.StatusNoContent, nil)
}

func (r *Remote) path(suffix string) string {
	return "/sessions/" + r.id + suffix
}

func (r *Remote) do(method, path string, body any, want int, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, r.serverURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError maps a server error back onto the sentinel errors callers check.
func decodeError(resp *http.Response) error {
	var e communication.ErrorResponse
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, data)
	}
	switch e.Code {
	case communication.CodeInvalidAction:
		return fmt.Errorf("%w (server: %s)", game.ErrInvalidAction, e.Error)
	case communication.CodeSessionNotFound:
		return communication.ErrSessionNotFound
	default:
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, e.Error)
	}
}

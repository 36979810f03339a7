package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"coinflip/communication"
	"coinflip/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// session serializes access to its episode; an Episode itself is not safe
// for concurrent use.
type session struct {
	mu      sync.Mutex
	episode *game.Episode
}

// Server hosts independent game sessions over HTTP.
type Server struct {
	options  []game.Option
	seeds    func() uint64
	sessions map[uuid.UUID]*session
	mutex    sync.RWMutex
}

// NewServer validates options once so that session creation cannot fail on
// configuration. seeds supplies a seed for sessions created without one; it
// is only ever called with the server lock held.
func NewServer(options []game.Option, seeds func() uint64) (*Server, error) {
	if _, err := game.NewEpisode(game.NewSource(0), options...); err != nil {
		return nil, err
	}
	if seeds == nil {
		seeds = func() uint64 { return uint64(time.Now().UnixNano()) }
	}
	return &Server{
		options:  options,
		seeds:    seeds,
		sessions: make(map[uuid.UUID]*session),
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleObserve)
			r.Delete("/", s.handleDelete)
			r.Post("/reset", s.handleReset)
			r.Post("/step", s.handleStep)
		})
	})
	return r
}

// SequentialSeeds hands out start, start+1, ... so that a whole server run replays.
func SequentialSeeds(start uint64) func() uint64 {
	var next atomic.Uint64
	next.Store(start)
	return func() uint64 {
		return next.Add(1) - 1
	}
}

// Start serves until the listener fails.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info().Str("addr", addr).Msg("serving game sessions")
	return srv.ListenAndServe()
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req communication.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, communication.CodeBadRequest, err)
		return
	}
	seed := req.Seed
	if seed == 0 {
		s.mutex.Lock()
		seed = s.seeds()
		s.mutex.Unlock()
	}

	episode, err := game.NewEpisode(game.NewSource(seed), s.options...)
	if err != nil {
		// Options were validated in NewServer.
		writeError(w, http.StatusInternalServerError, communication.CodeBadRequest, err)
		return
	}

	id := uuid.New()
	sess := &session{episode: episode}
	s.mutex.Lock()
	s.sessions[id] = sess
	s.mutex.Unlock()
	activeSessions.Inc()

	log.Info().Str("session", id.String()).Uint64("seed", seed).Msg("session created")
	writeJSON(w, http.StatusCreated, snapshot(id, sess))
}

func (s *Server) handleObserve(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusOK, snapshot(id, sess))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.episode.Reset()
	writeJSON(w, http.StatusOK, snapshot(id, sess))
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req communication.StepRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, game.ErrInvalidAction) {
			writeError(w, http.StatusBadRequest, communication.CodeInvalidAction, err)
			return
		}
		writeError(w, http.StatusBadRequest, communication.CodeBadRequest, err)
		return
	}
	if req.Action == nil {
		writeError(w, http.StatusBadRequest, communication.CodeInvalidAction, fmt.Errorf("%w: missing action", game.ErrInvalidAction))
		return
	}
	action := *req.Action

	sess.mu.Lock()
	wasTerminal := sess.episode.Terminal()
	res, err := sess.episode.Step(action)
	sess.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusBadRequest, communication.CodeInvalidAction, err)
		return
	}

	stepsTotal.WithLabelValues(action.String()).Inc()
	if res.Info.Labeled {
		labelsTotal.WithLabelValues(strconv.FormatBool(res.Info.Correct)).Inc()
	}
	if res.Terminal && !wasTerminal {
		terminalTotal.Inc()
		log.Info().Str("session", id.String()).Int("score", res.Info.Score).Msg("episode lost")
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.mutex.Lock()
	_, ok = s.sessions[id]
	delete(s.sessions, id)
	s.mutex.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, communication.CodeSessionNotFound, communication.ErrSessionNotFound)
		return
	}
	activeSessions.Dec()

	log.Info().Str("session", id.String()).Msg("session closed")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (uuid.UUID, *session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, communication.CodeSessionNotFound, communication.ErrSessionNotFound)
		return id, nil, false
	}
	s.mutex.RLock()
	sess, ok := s.sessions[id]
	s.mutex.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, communication.CodeSessionNotFound, communication.ErrSessionNotFound)
		return id, nil, false
	}
	return id, sess, true
}

// snapshot must be called with the session locked or not yet shared.
func snapshot(id uuid.UUID, sess *session) communication.SessionResponse {
	obs, _ := sess.episode.Observe()
	return communication.SessionResponse{
		ID:          id.String(),
		Observation: obs,
		Score:       sess.episode.Score(),
		Terminal:    sess.episode.Terminal(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, communication.ErrorResponse{Code: code, Error: err.Error()})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

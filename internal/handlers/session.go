package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-agent/internal/config"
	"github.com/vancomm/minesweeper-agent/internal/game"
	"github.com/vancomm/minesweeper-agent/internal/middleware"
	"github.com/vancomm/minesweeper-agent/internal/repository"
	"github.com/vancomm/minesweeper-agent/internal/solver"
)

type Session struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
	rnd    *rand.Rand
}

func NewSession(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *Session {
	return &Session{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
		rnd:    rnd,
	}
}

// Create starts a new agent session: a fresh board with the requested
// starting cell open, and an agent primed with the first observation.
func (h Session) Create(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params, err := ParseParams(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	first, err := ParsePosition(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	if !params.ValidatePosition(first) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(fmt.Errorf("invalid cell position")))
		return
	}

	state, err := game.NewGame(params, first, h.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to generate a new game", "error", err)
		return
	}
	s := solver.New(state, h.rnd)

	blob, err := s.Snapshot().Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to encode session state", "error", err)
		return
	}

	createParams := repository.CreateAgentSessionParams{
		Width:     params.Width,
		Height:    params.Height,
		MineCount: params.MineCount,
		Moves:     len(s.Moves()),
		State:     blob,
	}
	if claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims); ok {
		createParams.PlayerId = &claims.PlayerId
	}

	row, err := h.repo.CreateAgentSession(r.Context(), createParams)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create agent session", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewSessionDTO(row, s))
}

func (h Session) fetch(w http.ResponseWriter, r *http.Request) (*repository.AgentSession, *solver.Solver, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}
	row, err := h.repo.FetchAgentSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch session from db", "error", err)
		return nil, nil, false
	}
	snap, err := solver.DecodeSnapshot(row.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("db returned invalid agent_session.state", "error", err)
		return nil, nil, false
	}
	return row, solver.Restore(snap, h.rnd), true
}

func (h Session) save(
	ctx context.Context, row *repository.AgentSession, s *solver.Solver,
) (*repository.AgentSession, error) {
	blob, err := s.Snapshot().Bytes()
	if err != nil {
		return nil, fmt.Errorf("unable to encode session state: %w", err)
	}

	guesses := 0
	for _, m := range s.Moves() {
		if m.Guess {
			guesses++
		}
	}
	moves := len(s.Moves())
	state := s.State()
	updateParams := repository.UpdateAgentSessionParams{
		Dead:    &state.Dead,
		Won:     &state.Won,
		Moves:   &moves,
		Guesses: &guesses,
		State:   &blob,
	}
	if (state.Dead || state.Won) && !row.EndedAt.Valid {
		now := time.Now().UTC()
		updateParams.EndedAt = &now
	}

	return h.repo.UpdateAgentSession(ctx, row.AgentSessionId, updateParams)
}

func (h Session) persist(
	w http.ResponseWriter, r *http.Request,
	row *repository.AgentSession, s *solver.Solver,
) (*repository.AgentSession, bool) {
	updated, err := h.save(r.Context(), row, s)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to update session in db", "error", err)
		return nil, false
	}
	return updated, true
}

func (h Session) Fetch(w http.ResponseWriter, r *http.Request) {
	row, s, ok := h.fetch(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.logger, NewSessionDTO(row, s))
}

// Step advances the session by one agent move.
func (h Session) Step(w http.ResponseWriter, r *http.Request) {
	row, s, ok := h.fetch(w, r)
	if !ok {
		return
	}

	s.Step()

	updated, ok := h.persist(w, r, row, s)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.logger, NewSessionDTO(updated, s))
}

// Solve runs the agent to completion.
func (h Session) Solve(w http.ResponseWriter, r *http.Request) {
	row, s, ok := h.fetch(w, r)
	if !ok {
		return
	}

	s.Solve()

	updated, ok := h.persist(w, r, row, s)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.logger, NewSessionDTO(updated, s))
}

func (h Session) Leaderboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.LeaderboardFilter{}
	if username := query.Get("username"); username != "" {
		filter.Username = &username
	}
	if query.Has("width") {
		params, err := ParseParams(query)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, h.logger, wrapError(err))
			return
		}
		filter.Params = &params
	}

	entries, err := h.repo.GetLeaderboard(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to query leaderboard", "error", err)
		return
	}
	sendJSONOrLog(w, h.logger, entries)
}

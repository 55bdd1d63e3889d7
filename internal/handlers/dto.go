package handlers

import (
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-agent/internal/game"
	"github.com/vancomm/minesweeper-agent/internal/repository"
	"github.com/vancomm/minesweeper-agent/internal/solver"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

func ParseParams(src map[string][]string) (game.Params, error) {
	var params game.Params
	if err := decoder.Decode(&params, src); err != nil {
		return params, err
	}
	return params, params.Validate()
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (game.Cell, error) {
	var pos PositionDTO
	err := decoder.Decode(&pos, src)
	return game.Cell{X: pos.X, Y: pos.Y}, err
}

type SessionDTO struct {
	AgentSessionId string        `json:"agent_session_id"`
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	MineCount      int           `json:"mine_count"`
	Dead           bool          `json:"dead"`
	Won            bool          `json:"won"`
	Grid           game.Grid     `json:"grid"`
	Moves          []solver.Move `json:"moves"`
	KnownMines     []game.Cell   `json:"known_mines"`
	KnownSafes     []game.Cell   `json:"known_safes"`
	StartedAt      int64         `json:"started_at"`
	EndedAt        *int64        `json:"ended_at,omitempty"`
}

func NewSessionDTO(row *repository.AgentSession, s *solver.Solver) *SessionDTO {
	dto := &SessionDTO{
		AgentSessionId: strconv.FormatInt(row.AgentSessionId, 10),
		Width:          s.State().Width,
		Height:         s.State().Height,
		MineCount:      s.State().MineCount,
		Dead:           s.State().Dead,
		Won:            s.State().Won,
		Grid:           s.State().Player,
		Moves:          s.Moves(),
		KnownMines:     s.Agent().KnownMines(),
		KnownSafes:     s.Agent().KnownSafes(),
		StartedAt:      row.StartedAt.Time.UnixMilli(),
	}
	if row.EndedAt.Valid {
		e := row.EndedAt.Time.UnixMilli()
		dto.EndedAt = &e
	}
	return dto
}

// MoveDTO is streamed over the watch websocket, one message per move.
type MoveDTO struct {
	Move   solver.Move `json:"move"`
	Status string      `json:"status"`
	Grid   game.Grid   `json:"grid"`
}

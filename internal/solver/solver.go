// Package solver couples a live board with a knowledge agent and drives
// the game to completion: safe moves while any are known, random guesses
// otherwise.
package solver

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/game"
)

type Status int

const (
	On Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "on"
	}
}

// Move records a single step of play. Guess is true when the cell was not
// provably safe and had to be picked at random.
type Move struct {
	Cell  game.Cell `json:"cell"`
	Guess bool      `json:"guess"`
	Clue  int       `json:"clue"`
}

type Solver struct {
	state *game.GameState
	agent *agent.Agent
	moves []Move
}

// New wraps a game in progress. Every cell already open on the player
// grid is fed to the agent as an observation, so a freshly created game
// (with its starting cell open) and a mid-game state both work.
func New(state *game.GameState, rnd *rand.Rand) *Solver {
	a := agent.New(state.Params, state.Width, state.Height, rnd)
	for cell, clue := range state.OpenCells() {
		a.RecordObservation(cell, clue)
	}
	return &Solver{state: state, agent: a}
}

func (s *Solver) Agent() *agent.Agent {
	return s.agent
}

func (s *Solver) State() *game.GameState {
	return s.state
}

func (s *Solver) Moves() []Move {
	return s.moves
}

func (s *Solver) Status() Status {
	switch {
	case s.state.Dead:
		return Lost
	case s.state.Won:
		return Won
	default:
		return On
	}
}

// Step makes one move: a known-safe cell if any, otherwise a random
// guess. ok is false when no move is available, which on a consistent
// board means every remaining covered cell is a known mine.
func (s *Solver) Step() (move Move, status Status, ok bool) {
	if status = s.Status(); status != On {
		return Move{}, status, false
	}

	cell, ok := s.agent.SafeMove()
	if !ok {
		cell, ok = s.agent.RandomMove()
		if !ok {
			return Move{}, s.finish(), false
		}
		move.Guess = true
	}
	move.Cell = cell

	clue, exploded := s.state.OpenCell(cell)
	if exploded {
		s.moves = append(s.moves, move)
		s.state.RevealMines()
		return move, Lost, true
	}

	move.Clue = clue
	s.moves = append(s.moves, move)
	s.agent.RecordObservation(cell, clue)

	if s.state.Won {
		return move, s.finish(), true
	}
	return move, On, true
}

// Solve steps until the game ends or no move remains.
func (s *Solver) Solve() Status {
	for {
		_, status, ok := s.Step()
		if !ok || status != On {
			return status
		}
	}
}

// finish flags every deduced mine on the player grid and reveals the
// rest.
func (s *Solver) finish() Status {
	for _, c := range s.agent.KnownMines() {
		if s.state.Player[s.state.CellIndex(c)] == game.Unknown {
			s.state.FlagCell(c)
		}
	}
	s.state.RevealMines()
	return s.Status()
}

// Snapshot bundles everything needed to resume a session.
type Snapshot struct {
	Game  *game.GameState
	Agent *agent.Snapshot
	Moves []Move
}

func (s *Solver) Snapshot() *Snapshot {
	return &Snapshot{
		Game:  s.state,
		Agent: s.agent.Snapshot(),
		Moves: s.moves,
	}
}

func (s Snapshot) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeSnapshot(buf []byte) (*Snapshot, error) {
	var snap Snapshot
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&snap)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Restore rebuilds a solver from a snapshot.
func Restore(snap *Snapshot, rnd *rand.Rand) *Solver {
	return &Solver{
		state: snap.Game,
		agent: agent.Restore(snap.Agent, snap.Game.Params, rnd),
		moves: snap.Moves,
	}
}

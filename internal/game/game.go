package game

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"
)

// GameState is a live board: the real mine layout plus the player-visible
// grid. The agent never sees Mines directly; it only receives clues from
// OpenCell.
type GameState struct {
	Params
	Dead   bool
	Won    bool
	Mines  []bool // real mine points, row-major
	Player Grid   // player knowledge
	Opened int
}

func DecodeGameState(buf []byte) (*GameState, error) {
	var state GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&state)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewGame plants mines at random, keeping the starting cell clear, and
// opens the starting cell.
func NewGame(params Params, first Cell, r *rand.Rand) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if !params.ValidatePosition(first) {
		return nil, fmt.Errorf("starting cell %s out of bounds", first)
	}

	mines := make([]bool, params.CellCount())
	firstIndex := params.CellIndex(first)
	for planted := 0; planted < params.MineCount; {
		index := r.IntN(len(mines))
		if index != firstIndex && !mines[index] {
			mines[index] = true
			planted++
		}
	}

	player := make(Grid, len(mines))
	for i := range player {
		player[i] = Unknown
	}

	state := &GameState{
		Params: params,
		Mines:  mines,
		Player: player,
	}
	state.OpenCell(first)
	return state, nil
}

func (s GameState) MineAt(c Cell) bool {
	return s.Mines[s.CellIndex(c)]
}

// NearbyMines counts the mines among a cell's neighbors, not including
// the cell itself.
func (s GameState) NearbyMines(c Cell) (count int) {
	for _, n := range s.Neighbors(c) {
		if s.MineAt(n) {
			count++
		}
	}
	return
}

// OpenCell opens a single cell and returns its clue. There is no flood
// fill: every observation is made one cell at a time so that each opened
// cell yields exactly one clue.
func (s *GameState) OpenCell(c Cell) (clue int, exploded bool) {
	i := s.CellIndex(c)
	if s.MineAt(c) {
		s.Dead = true
		s.Player[i] = ExplodedMine
		return 0, true
	}
	if !s.Player[i].Open() {
		s.Opened++
	}
	clue = s.NearbyMines(c)
	s.Player[i] = CellState(clue)
	if !s.Dead && s.Opened == s.CellCount()-s.MineCount {
		s.Won = true
	}
	return clue, false
}

func (s *GameState) FlagCell(c Cell) {
	i := s.CellIndex(c)
	if s.Player[i] == Unknown {
		s.Player[i] = Flagged
	} else if s.Player[i] == Flagged {
		s.Player[i] = Unknown
	}
}

// RevealMines resolves every covered cell on the player grid once the
// game is over.
func (s *GameState) RevealMines() {
	if !(s.Dead || s.Won) {
		s.Dead = true
	}
	for i, mined := range s.Mines {
		switch s.Player[i] {
		case Flagged:
			if mined {
				s.Player[i] = CorrectlyFlagged
			} else {
				s.Player[i] = FalselyFlagged
			}
		case Unknown:
			if mined {
				s.Player[i] = UnflaggedMine
			} else {
				s.Player[i] = CellState(s.NearbyMines(s.CellAt(i)))
			}
		}
	}
}

// OpenCells lists every opened cell with its clue.
func (s GameState) OpenCells() map[Cell]int {
	open := make(map[Cell]int)
	for i, state := range s.Player {
		if state.Open() {
			open[s.CellAt(i)] = int(state)
		}
	}
	return open
}

func (s GameState) String() string {
	return s.Player.ToString(s.Width)
}

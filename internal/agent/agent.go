// Package agent implements a knowledge-based minesweeper player. It keeps
// a collection of sentences of the form "exactly N of these cells are
// mines" and collapses them into certain facts as clues come in.
package agent

import (
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/vancomm/minesweeper-agent/internal/game"
)

var Log *slog.Logger = slog.Default()

// Board is the agent's only view of the game grid: it answers which cells
// are adjacent to a given cell. game.Params satisfies it.
type Board interface {
	Neighbors(c game.Cell) []game.Cell
}

// Agent accumulates knowledge about a single game. It is not safe for
// concurrent use; every observation runs its inference to completion
// before returning.
type Agent struct {
	board  Board
	width  int
	height int
	rnd    *rand.Rand

	movesMade cellSet
	mines     cellSet
	safes     cellSet
	knowledge []*Sentence
	seen      map[string]void // canonical keys of every sentence ever added
}

func New(board Board, width, height int, rnd *rand.Rand) *Agent {
	return &Agent{
		board:     board,
		width:     width,
		height:    height,
		rnd:       rnd,
		movesMade: make(cellSet),
		mines:     make(cellSet),
		safes:     make(cellSet),
		seen:      make(map[string]void),
	}
}

// MarkMine records a cell as a certain mine and updates every standing
// sentence. Idempotent.
func (a *Agent) MarkMine(c game.Cell) {
	if !a.mines.has(c) {
		Log.Debug("marking mine", slog.String("cell", c.String()))
	}
	a.mines.add(c)
	for _, s := range a.knowledge {
		s.MarkMine(c)
	}
}

// MarkSafe records a cell as certainly safe and updates every standing
// sentence. Idempotent.
func (a *Agent) MarkSafe(c game.Cell) {
	a.safes.add(c)
	for _, s := range a.knowledge {
		s.MarkSafe(c)
	}
}

func (a *Agent) addSentence(s *Sentence) bool {
	key := s.Key()
	if _, ok := a.seen[key]; ok {
		return false
	}
	a.seen[key] = void{}
	a.knowledge = append(a.knowledge, s)
	return true
}

// RecordObservation feeds the agent one revealed clue: cell has been
// opened and has clue mines among its neighbors. A new sentence is built
// over the cell's unresolved neighbors, then simplification and subset
// resolution run until no new facts or sentences are produced.
func (a *Agent) RecordObservation(cell game.Cell, clue int) {
	a.movesMade.add(cell)
	a.MarkSafe(cell)

	unknown := make([]game.Cell, 0, 8)
	knownMines := 0
	for _, n := range a.board.Neighbors(cell) {
		switch {
		case a.mines.has(n):
			knownMines++
		case a.safes.has(n) || a.movesMade.has(n):
			// already resolved, nothing to learn
		default:
			unknown = append(unknown, n)
		}
	}

	// If every neighbor is already resolved the clue is fully explained
	// and no sentence is needed.
	if len(unknown) > 0 {
		s := NewSentence(unknown, clue-knownMines)
		a.addSentence(s)
		Log.Debug("new observation sentence", slog.String("sentence", s.String()))
	}

	a.infer()
}

// infer runs the fixpoint loop: collapse sentences into certain facts,
// then derive new sentences by subset resolution, until a full pass
// changes nothing. Termination is guaranteed by the finite grid: every
// step either shrinks total cell membership or adds a strictly smaller
// sentence never seen before.
func (a *Agent) infer() {
	for changed := true; changed; {
		changed = false

		for _, s := range a.knowledge {
			if mines := s.KnownMines(); len(mines) > 0 {
				changed = true
				for _, c := range mines {
					a.MarkMine(c)
				}
			}
			if safes := s.KnownSafes(); len(safes) > 0 {
				changed = true
				for _, c := range safes {
					a.MarkSafe(c)
				}
			}
		}

		a.knowledge = slices.DeleteFunc(a.knowledge, func(s *Sentence) bool {
			return s.Empty()
		})

		var staged []*Sentence
		for _, s1 := range a.knowledge {
			for _, s2 := range a.knowledge {
				if s1 == s2 || !s1.cells.subsetOf(s2.cells) {
					continue
				}
				diff := s2.cells.difference(s1.cells)
				if len(diff) == 0 {
					continue
				}
				staged = append(staged, &Sentence{
					cells: diff,
					count: s2.count - s1.count,
				})
			}
		}
		for _, s := range staged {
			if a.addSentence(s) {
				changed = true
				Log.Debug("resolved sentence", slog.String("sentence", s.String()))
			}
		}
	}
}

// SafeMove returns a cell known to be safe that has not been opened yet.
// No ordering is guaranteed among candidates.
func (a *Agent) SafeMove() (game.Cell, bool) {
	for c := range a.safes {
		if !a.movesMade.has(c) {
			return c, true
		}
	}
	return game.Cell{}, false
}

// RandomMove returns a uniformly random cell that has not been opened and
// is not a known mine. ok is false once no such cell remains.
func (a *Agent) RandomMove() (game.Cell, bool) {
	candidates := make([]game.Cell, 0, a.width*a.height)
	for y := range a.height {
		for x := range a.width {
			c := game.Cell{X: x, Y: y}
			if !a.movesMade.has(c) && !a.mines.has(c) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return game.Cell{}, false
	}
	return candidates[a.rnd.IntN(len(candidates))], true
}

// KnownMines is a read-only view of every cell deduced to be a mine.
func (a *Agent) KnownMines() []game.Cell {
	return a.mines.sorted()
}

// KnownSafes is a read-only view of every cell deduced to be safe,
// including opened cells.
func (a *Agent) KnownSafes() []game.Cell {
	return a.safes.sorted()
}

// MovesMade lists every cell already opened.
func (a *Agent) MovesMade() []game.Cell {
	return a.movesMade.sorted()
}

// Sentences is a snapshot of the current knowledge base.
func (a *Agent) Sentences() []*Sentence {
	sentences := make([]*Sentence, 0, len(a.knowledge))
	for _, s := range a.knowledge {
		sentences = append(sentences, &Sentence{
			cells: newCellSet(s.Cells()),
			count: s.count,
		})
	}
	return sentences
}

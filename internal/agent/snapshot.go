package agent

import (
	"math/rand/v2"

	"github.com/vancomm/minesweeper-agent/internal/game"
)

// Snapshot is a gob-friendly dump of an agent's state, used to persist
// sessions between moves.
type Snapshot struct {
	Width, Height int
	MovesMade     []game.Cell
	Mines         []game.Cell
	Safes         []game.Cell
	Knowledge     []SentenceSnapshot
}

type SentenceSnapshot struct {
	Cells []game.Cell
	Count int
}

func (a *Agent) Snapshot() *Snapshot {
	snap := &Snapshot{
		Width:     a.width,
		Height:    a.height,
		MovesMade: a.movesMade.sorted(),
		Mines:     a.mines.sorted(),
		Safes:     a.safes.sorted(),
	}
	for _, s := range a.knowledge {
		snap.Knowledge = append(snap.Knowledge, SentenceSnapshot{
			Cells: s.cells.sorted(),
			Count: s.count,
		})
	}
	return snap
}

// Restore rebuilds an agent from a snapshot. The board collaborator and
// RNG are not part of the snapshot and must be supplied again.
func Restore(snap *Snapshot, board Board, rnd *rand.Rand) *Agent {
	a := New(board, snap.Width, snap.Height, rnd)
	a.movesMade = newCellSet(snap.MovesMade)
	a.mines = newCellSet(snap.Mines)
	a.safes = newCellSet(snap.Safes)
	for _, s := range snap.Knowledge {
		a.addSentence(NewSentence(s.Cells, s.Count))
	}
	return a
}

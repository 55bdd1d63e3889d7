package agent

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/minesweeper-agent/internal/game"
)

// stubBoard prescribes exact neighbor sets, decoupling inference tests
// from grid geometry.
type stubBoard map[game.Cell][]game.Cell

func (b stubBoard) Neighbors(c game.Cell) []game.Cell {
	return b[c]
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func newTestAgent(width, height int) *Agent {
	params := game.Params{Width: width, Height: height}
	return New(params, width, height, testRand())
}

func TestZeroClueMarksAllNeighborsSafe(t *testing.T) {
	a := newTestAgent(4, 4)
	origin := game.Cell{X: 0, Y: 0}

	a.RecordObservation(origin, 0)

	safes := a.KnownSafes()
	for _, n := range (game.Params{Width: 4, Height: 4}).Neighbors(origin) {
		assert.Contains(t, safes, n)
	}
	assert.Empty(t, a.KnownMines())
}

func TestFullClueMarksAllNeighborsMines(t *testing.T) {
	a := newTestAgent(4, 4)
	origin := game.Cell{X: 0, Y: 0} // corner, 3 neighbors

	a.RecordObservation(origin, 3)

	assert.ElementsMatch(t, []game.Cell{
		{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1},
	}, a.KnownMines())
}

func TestSubsetResolution(t *testing.T) {
	cellA := game.Cell{X: 0, Y: 0}
	cellB := game.Cell{X: 1, Y: 0}
	cellC := game.Cell{X: 2, Y: 0}
	board := stubBoard{
		{X: 8, Y: 8}: {cellA, cellB},
		{X: 9, Y: 9}: {cellA, cellB, cellC},
	}
	a := New(board, 10, 10, testRand())

	// {A,B}=1 and {A,B,C}=2 must resolve to {C}=1, so C is a mine.
	a.RecordObservation(game.Cell{X: 8, Y: 8}, 1)
	a.RecordObservation(game.Cell{X: 9, Y: 9}, 2)

	assert.Contains(t, a.KnownMines(), cellC)
	assert.NotContains(t, a.KnownMines(), cellA)
	assert.NotContains(t, a.KnownMines(), cellB)
}

func TestSubsetResolutionYieldsSafes(t *testing.T) {
	cellA := game.Cell{X: 0, Y: 0}
	cellB := game.Cell{X: 1, Y: 0}
	cellC := game.Cell{X: 2, Y: 0}
	board := stubBoard{
		{X: 8, Y: 8}: {cellA, cellB},
		{X: 9, Y: 9}: {cellA, cellB, cellC},
	}
	a := New(board, 10, 10, testRand())

	// {A,B}=1 and {A,B,C}=1 resolve to {C}=0, so C is safe.
	a.RecordObservation(game.Cell{X: 8, Y: 8}, 1)
	a.RecordObservation(game.Cell{X: 9, Y: 9}, 1)

	assert.Contains(t, a.KnownSafes(), cellC)
}

func TestClueDiscountsKnownMines(t *testing.T) {
	cellA := game.Cell{X: 0, Y: 0}
	cellB := game.Cell{X: 1, Y: 0}
	board := stubBoard{
		{X: 8, Y: 8}: {cellA},
		{X: 9, Y: 9}: {cellA, cellB},
	}
	a := New(board, 10, 10, testRand())

	// A is deduced to be a mine, so the second clue of 1 is already
	// fully explained and B must come out safe.
	a.RecordObservation(game.Cell{X: 8, Y: 8}, 1)
	assert.Contains(t, a.KnownMines(), cellA)

	a.RecordObservation(game.Cell{X: 9, Y: 9}, 1)
	assert.Contains(t, a.KnownSafes(), cellB)
}

func TestFullyResolvedNeighborsAddNoSentence(t *testing.T) {
	cellA := game.Cell{X: 0, Y: 0}
	board := stubBoard{
		{X: 8, Y: 8}: {cellA},
		{X: 9, Y: 9}: {cellA},
	}
	a := New(board, 10, 10, testRand())

	a.RecordObservation(game.Cell{X: 8, Y: 8}, 0)
	assert.Empty(t, a.Sentences())

	a.RecordObservation(game.Cell{X: 9, Y: 9}, 0)
	assert.Empty(t, a.Sentences())
}

func TestMarkersAreIdempotent(t *testing.T) {
	a := newTestAgent(4, 4)
	c := game.Cell{X: 2, Y: 2}

	a.MarkMine(c)
	mines := a.KnownMines()
	a.MarkMine(c)
	assert.Equal(t, mines, a.KnownMines())

	s := game.Cell{X: 3, Y: 3}
	a.MarkSafe(s)
	safes := a.KnownSafes()
	a.MarkSafe(s)
	assert.Equal(t, safes, a.KnownSafes())
}

func TestSafeMove(t *testing.T) {
	a := newTestAgent(4, 4)

	_, ok := a.SafeMove()
	assert.False(t, ok)

	a.RecordObservation(game.Cell{X: 0, Y: 0}, 0)

	move, ok := a.SafeMove()
	assert.True(t, ok)
	assert.Contains(t, a.KnownSafes(), move)
	assert.NotContains(t, a.MovesMade(), move)
}

func TestRandomMoveAvoidsMovesAndMines(t *testing.T) {
	a := newTestAgent(2, 2)
	a.MarkMine(game.Cell{X: 1, Y: 1})
	a.RecordObservation(game.Cell{X: 0, Y: 0}, 1)

	for range 20 {
		move, ok := a.RandomMove()
		assert.True(t, ok)
		assert.NotContains(t, a.MovesMade(), move)
		assert.NotContains(t, a.KnownMines(), move)
	}
}

func TestRandomMoveExhausted(t *testing.T) {
	a := newTestAgent(2, 1)
	a.RecordObservation(game.Cell{X: 0, Y: 0}, 1)
	// the remaining cell is a deduced mine
	assert.ElementsMatch(t, []game.Cell{{X: 1, Y: 0}}, a.KnownMines())

	_, ok := a.RandomMove()
	assert.False(t, ok)
}

// assertInvariants checks the properties every knowledge base state must
// satisfy: sentence counts within bounds and disjoint mine/safe sets.
func assertInvariants(t *testing.T, a *Agent) {
	t.Helper()
	for _, s := range a.Sentences() {
		assert.GreaterOrEqual(t, s.Count(), 0, "sentence %s", s)
		assert.LessOrEqual(t, s.Count(), len(s.Cells()), "sentence %s", s)
	}
	mines := newCellSet(a.KnownMines())
	for _, c := range a.KnownSafes() {
		assert.False(t, mines.has(c), "cell %s both mine and safe", c)
	}
}

func TestInvariantsThroughFullGame(t *testing.T) {
	params := game.Params{Width: 8, Height: 8, MineCount: 10}
	r := testRand()

	state, err := game.NewGame(params, game.Cell{X: 4, Y: 4}, r)
	assert.NoError(t, err)

	a := New(params, params.Width, params.Height, r)
	var (
		prevMines, prevSafes, prevMoves int
	)
	for cell, clue := range state.OpenCells() {
		a.RecordObservation(cell, clue)
	}
	for !state.Dead && !state.Won {
		cell, ok := a.SafeMove()
		if !ok {
			cell, ok = a.RandomMove()
		}
		if !ok {
			break
		}
		clue, exploded := state.OpenCell(cell)
		if exploded {
			break
		}
		a.RecordObservation(cell, clue)

		assertInvariants(t, a)

		// knowledge only grows
		assert.GreaterOrEqual(t, len(a.KnownMines()), prevMines)
		assert.GreaterOrEqual(t, len(a.KnownSafes()), prevSafes)
		assert.Greater(t, len(a.MovesMade()), prevMoves)
		prevMines = len(a.KnownMines())
		prevSafes = len(a.KnownSafes())
		prevMoves = len(a.MovesMade())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	params := game.Params{Width: 4, Height: 4}
	a := New(params, 4, 4, testRand())
	a.RecordObservation(game.Cell{X: 0, Y: 0}, 2)
	a.RecordObservation(game.Cell{X: 3, Y: 3}, 0)

	restored := Restore(a.Snapshot(), params, testRand())

	assert.Equal(t, a.KnownMines(), restored.KnownMines())
	assert.Equal(t, a.KnownSafes(), restored.KnownSafes())
	assert.Equal(t, a.MovesMade(), restored.MovesMade())
	assert.Len(t, restored.Sentences(), len(a.Sentences()))
}

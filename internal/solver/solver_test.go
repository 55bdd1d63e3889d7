package solver

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/minesweeper-agent/internal/game"
)

func newTestSolver(t *testing.T, params game.Params, seed uint64) *Solver {
	t.Helper()
	r := rand.New(rand.NewPCG(seed, seed))
	first := game.Cell{X: params.Width / 2, Y: params.Height / 2}
	state, err := game.NewGame(params, first, r)
	assert.NoError(t, err)
	return New(state, r)
}

func TestNewSeedsAgentWithOpenCells(t *testing.T) {
	s := newTestSolver(t, game.Params{Width: 8, Height: 8, MineCount: 10}, 1)

	moves := s.Agent().MovesMade()
	assert.Len(t, moves, 1)
	assert.Equal(t, game.Cell{X: 4, Y: 4}, moves[0])
}

func TestStepPrefersSafeMoves(t *testing.T) {
	s := newTestSolver(t, game.Params{Width: 8, Height: 8, MineCount: 10}, 1)

	for s.Status() == On {
		if _, ok := s.Agent().SafeMove(); !ok {
			break
		}
		move, status, ok := s.Step()
		assert.True(t, ok)
		assert.False(t, move.Guess, "safe move reported as guess")
		assert.NotEqual(t, Lost, status, "opened a mine on a provably safe cell")
	}
}

func TestSolveTerminates(t *testing.T) {
	params := game.Params{Width: 8, Height: 8, MineCount: 10}

	for seed := uint64(1); seed <= 10; seed++ {
		s := newTestSolver(t, params, seed)
		status := s.Solve()
		assert.Contains(t, []Status{Won, Lost}, status, "seed %d", seed)

		// every deduced mine must be a real mine
		for _, c := range s.Agent().KnownMines() {
			assert.True(t, s.State().MineAt(c), "seed %d: %s flagged but not mined", seed, c)
		}

		// no cell opened twice, no known mine ever opened
		seen := make(map[game.Cell]bool)
		for _, m := range s.Moves() {
			assert.False(t, seen[m.Cell], "seed %d: %s opened twice", seed, m.Cell)
			seen[m.Cell] = true
		}
	}
}

func TestSolveFlagsMinesOnWin(t *testing.T) {
	params := game.Params{Width: 6, Height: 6, MineCount: 4}

	for seed := uint64(1); seed <= 20; seed++ {
		s := newTestSolver(t, params, seed)
		if s.Solve() != Won {
			continue
		}
		state := s.State()
		for i, mined := range state.Mines {
			if mined {
				assert.Contains(
					t,
					[]game.CellState{game.CorrectlyFlagged, game.UnflaggedMine},
					state.Player[i],
					"seed %d", seed,
				)
			}
		}
		return
	}
	t.Fatal("no winning seed found")
}

func TestManyGames(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	params := game.Params{Width: 9, Height: 9, MineCount: 10}
	won := 0
	for seed := uint64(1); seed <= 100; seed++ {
		s := newTestSolver(t, params, seed)
		if s.Solve() == Won {
			won++
		}
	}
	// guesses lose some games; pure deduction should still win plenty
	assert.Greater(t, won, 0)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestSolver(t, game.Params{Width: 8, Height: 8, MineCount: 10}, 1)
	s.Step()
	s.Step()

	buf, err := s.Snapshot().Bytes()
	assert.NoError(t, err)

	snap, err := DecodeSnapshot(buf)
	assert.NoError(t, err)

	restored := Restore(snap, rand.New(rand.NewPCG(1, 1)))
	assert.Equal(t, s.State(), restored.State())
	assert.Equal(t, s.Moves(), restored.Moves())
	assert.Equal(t, s.Agent().KnownMines(), restored.Agent().KnownMines())
	assert.Equal(t, s.Agent().KnownSafes(), restored.Agent().KnownSafes())
}

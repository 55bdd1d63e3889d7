package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/minesweeper-agent/internal/game"
)

var (
	cellA = game.Cell{X: 0, Y: 0}
	cellB = game.Cell{X: 1, Y: 0}
	cellC = game.Cell{X: 2, Y: 0}
)

func TestKnownMines(t *testing.T) {
	s := NewSentence([]game.Cell{cellA, cellB}, 2)
	assert.ElementsMatch(t, []game.Cell{cellA, cellB}, s.KnownMines())

	s = NewSentence([]game.Cell{cellA, cellB}, 1)
	assert.Empty(t, s.KnownMines())

	s = NewSentence(nil, 0)
	assert.Empty(t, s.KnownMines())
}

func TestKnownSafes(t *testing.T) {
	s := NewSentence([]game.Cell{cellA, cellB, cellC}, 0)
	assert.ElementsMatch(t, []game.Cell{cellA, cellB, cellC}, s.KnownSafes())

	s = NewSentence([]game.Cell{cellA, cellB, cellC}, 1)
	assert.Empty(t, s.KnownSafes())
}

func TestMarkMine(t *testing.T) {
	s := NewSentence([]game.Cell{cellA, cellB}, 2)

	s.MarkMine(cellA)
	assert.ElementsMatch(t, []game.Cell{cellB}, s.Cells())
	assert.Equal(t, 1, s.Count())

	// repeated and unrelated marks must be no-ops
	s.MarkMine(cellA)
	s.MarkMine(game.Cell{X: 9, Y: 9})
	assert.ElementsMatch(t, []game.Cell{cellB}, s.Cells())
	assert.Equal(t, 1, s.Count())
}

func TestMarkSafe(t *testing.T) {
	s := NewSentence([]game.Cell{cellA, cellB, cellC}, 1)

	s.MarkSafe(cellC)
	assert.ElementsMatch(t, []game.Cell{cellA, cellB}, s.Cells())
	assert.Equal(t, 1, s.Count())

	s.MarkSafe(cellC)
	s.MarkSafe(game.Cell{X: 9, Y: 9})
	assert.ElementsMatch(t, []game.Cell{cellA, cellB}, s.Cells())
	assert.Equal(t, 1, s.Count())
}

func TestSentenceBecomesInert(t *testing.T) {
	s := NewSentence([]game.Cell{cellA, cellB}, 1)
	s.MarkMine(cellA)
	s.MarkSafe(cellB)

	assert.True(t, s.Empty())
	assert.Empty(t, s.KnownMines())
	assert.Empty(t, s.KnownSafes())
}

func TestSentenceEqualityAndKey(t *testing.T) {
	a := NewSentence([]game.Cell{cellA, cellB}, 1)
	b := NewSentence([]game.Cell{cellB, cellA}, 1)
	c := NewSentence([]game.Cell{cellA, cellB}, 2)
	d := NewSentence([]game.Cell{cellA, cellC}, 1)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())

	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Key(), c.Key())

	assert.False(t, a.Equal(d))
	assert.NotEqual(t, a.Key(), d.Key())
}

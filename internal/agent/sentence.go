package agent

import (
	"fmt"
	"strings"

	"github.com/vancomm/minesweeper-agent/internal/game"
)

// Sentence is a logical statement about the board: exactly Count of Cells
// are mines. Sentences shrink in place as individual cells are resolved;
// an empty sentence carries no information and is dropped from the
// knowledge base.
type Sentence struct {
	cells cellSet
	count int
}

func NewSentence(cells []game.Cell, count int) *Sentence {
	return &Sentence{cells: newCellSet(cells), count: count}
}

func (s Sentence) Count() int {
	return s.count
}

func (s Sentence) Cells() []game.Cell {
	return s.cells.cells()
}

func (s Sentence) Empty() bool {
	return len(s.cells) == 0
}

// KnownMines returns every cell of the sentence when all of them must be
// mines, i.e. the mine count equals the number of remaining cells.
func (s Sentence) KnownMines() []game.Cell {
	if len(s.cells) > 0 && len(s.cells) == s.count {
		return s.cells.cells()
	}
	return nil
}

// KnownSafes returns every cell of the sentence when none of them can be
// a mine, i.e. the mine count is zero.
func (s Sentence) KnownSafes() []game.Cell {
	if len(s.cells) > 0 && s.count == 0 {
		return s.cells.cells()
	}
	return nil
}

// MarkMine removes a confirmed mine from the sentence: both the cell pool
// and the remaining required count shrink by one. Safe to call with any
// cell; unrelated cells are ignored.
func (s *Sentence) MarkMine(c game.Cell) {
	if s.cells.has(c) {
		delete(s.cells, c)
		s.count--
	}
}

// MarkSafe removes a confirmed-safe cell from the sentence; the number of
// mines among the rest is unchanged.
func (s *Sentence) MarkSafe(c game.Cell) {
	if s.cells.has(c) {
		delete(s.cells, c)
	}
}

func (s Sentence) Equal(other *Sentence) bool {
	return s.count == other.count && s.cells.equal(other.cells)
}

// Key is a canonical representation of the sentence (sorted cells plus
// count), used to suppress duplicate knowledge without O(n) scans.
func (s Sentence) Key() string {
	var b strings.Builder
	for _, c := range s.cells.sorted() {
		fmt.Fprintf(&b, "%d:%d,", c.X, c.Y)
	}
	fmt.Fprintf(&b, "=%d", s.count)
	return b.String()
}

func (s Sentence) String() string {
	var parts []string
	for _, c := range s.cells.sorted() {
		parts = append(parts, c.String())
	}
	return fmt.Sprintf("{%s} = %d", strings.Join(parts, " "), s.count)
}

package agent

import (
	"slices"

	"github.com/vancomm/minesweeper-agent/internal/game"
)

type void struct{}

type cellSet map[game.Cell]void

func newCellSet(cells []game.Cell) cellSet {
	s := make(cellSet, len(cells))
	for _, c := range cells {
		s[c] = void{}
	}
	return s
}

func (s cellSet) has(c game.Cell) bool {
	_, ok := s[c]
	return ok
}

func (s cellSet) add(c game.Cell) {
	s[c] = void{}
}

func (s cellSet) subsetOf(t cellSet) bool {
	if len(s) > len(t) {
		return false
	}
	for c := range s {
		if !t.has(c) {
			return false
		}
	}
	return true
}

func (s cellSet) difference(t cellSet) cellSet {
	d := make(cellSet)
	for c := range s {
		if !t.has(c) {
			d.add(c)
		}
	}
	return d
}

func (s cellSet) equal(t cellSet) bool {
	return len(s) == len(t) && s.subsetOf(t)
}

func (s cellSet) cells() []game.Cell {
	cells := make([]game.Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	return cells
}

func (s cellSet) sorted() []game.Cell {
	cells := s.cells()
	slices.SortFunc(cells, cellCmp)
	return cells
}

func cellCmp(a, b game.Cell) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}

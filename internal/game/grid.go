package game

import (
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	// 0-8 for open cells with the given number of mined neighbors
)

func (s CellState) Open() bool {
	return 0 <= s && s <= 8
}

func (s CellState) String() string {
	switch s {
	case Unknown:
		return " "
	case Flagged, CorrectlyFlagged:
		return "*"
	case ExplodedMine:
		return "@"
	case FalselyFlagged:
		return "#"
	case UnflaggedMine:
		return "X"
	case 0, 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid is the player-visible view of a board, row-major.
type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			b.WriteString("|" + g[y*width+x].String())
		}
		b.WriteString("|\n")
	}
	return b.String()
}

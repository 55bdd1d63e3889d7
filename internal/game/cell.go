package game

import "fmt"

// Cell identifies a single square on the board.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.X, c.Y)
}

type Params struct {
	Width     int `schema:"width,required" json:"width"`
	Height    int `schema:"height,required" json:"height"`
	MineCount int `schema:"mine_count,required" json:"mine_count"`
}

var (
	ErrBadDimensions = fmt.Errorf("board dimensions must be positive")
	ErrBadMineCount  = fmt.Errorf("mine count must fit on the board")
)

func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return ErrBadDimensions
	}
	// one cell is always kept clear for the starting move
	if p.MineCount < 0 || p.MineCount >= p.Width*p.Height {
		return ErrBadMineCount
	}
	return nil
}

func (p Params) CellCount() int {
	return p.Width * p.Height
}

func (p Params) CellIndex(c Cell) int {
	return c.Y*p.Width + c.X
}

func (p Params) CellAt(index int) Cell {
	return Cell{X: index % p.Width, Y: index / p.Width}
}

func (p Params) ValidatePosition(c Cell) bool {
	return 0 <= c.X && c.X < p.Width && 0 <= c.Y && c.Y < p.Height
}

// Neighbors returns the up-to-8 grid-adjacent cells within bounds,
// excluding the cell itself.
func (p Params) Neighbors(c Cell) []Cell {
	neighbors := make([]Cell, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Cell{X: c.X + dx, Y: c.Y + dy}
			if p.ValidatePosition(n) {
				neighbors = append(neighbors, n)
			}
		}
	}
	return neighbors
}

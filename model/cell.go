package model

import "fmt"

// Cell is a board coordinate. Row 0 is our own back row; rows grow toward
// the opponent.
type Cell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Offset returns c shifted by (dx, dy).
func (c Cell) Offset(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Edge names one of the four sides of the diamond arena.
type Edge string

// These names must stay in sync with the host's edge constants.
const (
	TopLeft     Edge = "top_left"
	TopRight    Edge = "top_right"
	BottomLeft  Edge = "bottom_left"
	BottomRight Edge = "bottom_right"
)

// Valid reports whether e is one of the four known edges.
func (e Edge) Valid() bool {
	switch e {
	case TopLeft, TopRight, BottomLeft, BottomRight:
		return true
	}
	return false
}

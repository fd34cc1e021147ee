package model

// DefaultBoardSize is used when the host omits the board size.
const DefaultBoardSize = 28

// Arena is the diamond-shaped playfield inscribed in a Size x Size grid.
// The lower half belongs to us, the upper half to the opponent.
type Arena struct {
	Size int
}

func (a Arena) half() int { return a.Size / 2 }

// Contains reports whether c lies inside the diamond.
// Returns false for anything outside the bounding square.
func (a Arena) Contains(c Cell) bool {
	if c.X < 0 || c.Y < 0 || c.X >= a.Size || c.Y >= a.Size {
		return false
	}
	h := a.half()
	if c.Y < h {
		return c.X >= h-1-c.Y && c.X <= h+c.Y
	}
	off := c.Y - h
	return c.X >= off && c.X <= a.Size-1-off
}

// EdgeCells lists the cells along edge e, ordered from the left/bottom
// corner of that edge outward.
func (a Arena) EdgeCells(e Edge) []Cell {
	h := a.half()
	out := make([]Cell, 0, h)
	for i := 0; i < h; i++ {
		switch e {
		case TopRight:
			out = append(out, Cell{X: h + i, Y: a.Size - 1 - i})
		case TopLeft:
			out = append(out, Cell{X: h - 1 - i, Y: a.Size - 1 - i})
		case BottomLeft:
			out = append(out, Cell{X: i, Y: h - 1 - i})
		case BottomRight:
			out = append(out, Cell{X: h + i, Y: i})
		default:
			return nil
		}
	}
	return out
}

// OnEdge reports whether c is one of e's edge cells.
func (a Arena) OnEdge(c Cell, e Edge) bool {
	h := a.half()
	switch e {
	case TopRight:
		return c.X >= h && c.X < a.Size && c.X-h == a.Size-1-c.Y
	case TopLeft:
		return c.X >= 0 && c.X < h && h-1-c.X == a.Size-1-c.Y
	case BottomLeft:
		return c.X >= 0 && c.X < h && c.Y == h-1-c.X
	case BottomRight:
		return c.X >= h && c.X < a.Size && c.Y == c.X-h
	}
	return false
}

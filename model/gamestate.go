package model

// TurnState is the pre-turn board snapshot sent by the host.
type TurnState struct {
	Turn       int         `json:"turn"`
	BoardSize  int         `json:"boardSize"`
	Cores      float64     `json:"cores"`
	Food       float64     `json:"food"`
	Structures []Structure `json:"structures"`
}

// Structure is any stationary unit on the board, ours or the opponent's.
type Structure struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	HP   int    `json:"hp"`
	Mine bool   `json:"mine"`
}

func (s Structure) Cell() Cell { return Cell{X: s.X, Y: s.Y} }

// Size returns the board size, falling back to DefaultBoardSize.
func (gs TurnState) Size() int {
	if gs.BoardSize <= 0 {
		return DefaultBoardSize
	}
	return gs.BoardSize
}

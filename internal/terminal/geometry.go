package terminal

// Position is a zero-based (column, row) coordinate. It is used both for
// document coordinates and for screen cells.
type Position struct {
	X, Y int
}

// Sub subtracts o component-wise, saturating at zero.
func (p Position) Sub(o Position) Position {
	return Position{X: max(p.X-o.X, 0), Y: max(p.Y-o.Y, 0)}
}

// Size is a terminal geometry in character cells.
type Size struct {
	Width, Height int
}

// DefaultSize is used when the window size cannot be queried.
var DefaultSize = Size{Width: 80, Height: 24}

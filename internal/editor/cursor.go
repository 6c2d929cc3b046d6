package editor

import "ezhuthu/internal/terminal"

// rowLen is the length of row y, or 0 past the end of the document.
func (e *Editor) rowLen(y int) int {
	if row, ok := e.doc.Row(y); ok {
		return row.Len()
	}
	return 0
}

// MoveCursor applies one navigation key. The cursor may rest one row past
// the last line, and x is clamped to the length of whatever row the cursor
// ends up on.
func (e *Editor) MoveCursor(key terminal.Key) {
	pageHeight := e.screen.Size().Height
	h := e.doc.RowCount()
	x, y := e.cursor.X, e.cursor.Y
	w := e.rowLen(y)

	switch key {
	case terminal.KeyArrowUp:
		y = max(y-1, 0)
	case terminal.KeyArrowDown:
		if y < h {
			y++
		}
	case terminal.KeyArrowLeft:
		x = max(x-1, 0)
	case terminal.KeyArrowRight:
		if x < w {
			x++
		}
	case terminal.KeyHome:
		x = 0
	case terminal.KeyEnd:
		x = w
	case terminal.KeyPageUp:
		if y > pageHeight {
			y -= pageHeight
		} else {
			y = 0
		}
	case terminal.KeyPageDown:
		if y+pageHeight < h {
			y += pageHeight
		} else {
			y = h
		}
	}

	x = min(x, e.rowLen(y))
	e.cursor = terminal.Position{X: x, Y: y}
}

// viewport is the size of the text area: the full width and every row but
// the last, which is reserved for the status line.
func (e *Editor) viewport() terminal.Size {
	size := e.screen.Size()
	return terminal.Size{Width: max(size.Width, 1), Height: max(size.Height-1, 1)}
}

// Scroll moves the offset the minimum distance that puts the cursor back
// inside the viewport.
func (e *Editor) Scroll() {
	view := e.viewport()
	c, off := e.cursor, &e.offset

	if c.Y < off.Y {
		off.Y = c.Y
	} else if c.Y >= off.Y+view.Height {
		off.Y = c.Y - view.Height + 1
	}

	if c.X < off.X {
		off.X = c.X
	} else if c.X >= off.X+view.Width {
		off.X = c.X - view.Width + 1
	}
}

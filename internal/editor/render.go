package editor

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"ezhuthu/internal/terminal"
)

const (
	farewell      = "Goodbye."
	emptyRowMark  = "~"
	noName        = "[No Name]"
	reverseVideo  = "\x1b[7m"
	resetGraphics = "\x1b[m"
)

// Redraw writes one frame and flushes it. The cursor is hidden while the
// frame is drawn. Once quitting, the frame is a cleared screen with a
// farewell line.
func (e *Editor) Redraw() error {
	s := e.screen
	s.CursorHide()
	s.CursorPosition(terminal.Position{})

	if e.state == Quitting {
		s.ClearScreen()
		s.Println(farewell)
	} else {
		e.drawRows()
		e.drawStatusLine()
		s.CursorPosition(e.cursor.Sub(e.offset))
	}

	s.CursorShow()
	return s.Flush()
}

func (e *Editor) drawRows() {
	size := e.screen.Size()
	width := max(size.Width, 0)

	for r := 0; r < size.Height-1; r++ {
		e.screen.ClearCurrentLine()
		if row, ok := e.doc.Row(r + e.offset.Y); ok {
			text := safeTermString(row.Render(e.offset.X, e.offset.X+width))
			e.screen.Println(runewidth.Truncate(text, width, ""))
		} else if e.doc.IsEmpty() && r == size.Height/3 {
			e.screen.Println(e.banner(width))
		} else {
			e.screen.Println(emptyRowMark)
		}
	}
}

// banner is the centered welcome line shown on an empty document.
func (e *Editor) banner(width int) string {
	msg := fmt.Sprintf("Ezhuthu editor -- version %s", e.version)
	padding := max(width-runewidth.StringWidth(msg), 0) / 2
	line := emptyRowMark + strings.Repeat(" ", max(padding-1, 0)) + msg
	return runewidth.Truncate(line, width, "")
}

// drawStatusLine fills the reserved bottom row. Nothing follows it, so it
// is printed without a line break to keep the screen from scrolling.
func (e *Editor) drawStatusLine() {
	e.screen.ClearCurrentLine()
	if !e.statusLine {
		return
	}
	e.screen.Print(reverseVideo + e.statusText(e.screen.Size().Width) + resetGraphics)
}

func (e *Editor) statusText(width int) string {
	if width <= 0 {
		return ""
	}
	name := safeTermString(e.doc.Name())
	if name == "" {
		name = noName
	}
	// The cursor may rest one row past the end; report it as the last line.
	line := min(e.cursor.Y+1, e.doc.RowCount())
	left := fmt.Sprintf("%s - %d lines", name, e.doc.RowCount())
	right := fmt.Sprintf("%d/%d", line, e.doc.RowCount())

	left = runewidth.Truncate(left, width, "")
	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		return runewidth.FillRight(left, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// safeTermString replaces control characters with '?' so file contents
// cannot move the terminal cursor or start an escape sequence. Each rune
// maps to exactly one rune, keeping columns aligned with the cursor.
func safeTermString(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7f && r < 0xa0) {
			return '?'
		}
		return r
	}, s)
}

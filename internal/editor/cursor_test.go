package editor

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"ezhuthu/internal/document"
	"ezhuthu/internal/terminal"
)

var navigationKeys = []terminal.Key{
	terminal.KeyArrowUp, terminal.KeyArrowDown,
	terminal.KeyArrowLeft, terminal.KeyArrowRight,
	terminal.KeyPageUp, terminal.KeyPageDown,
	terminal.KeyHome, terminal.KeyEnd,
}

func drawEditor(rt *rapid.T) *Editor {
	lines := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{0,150}`), 0, 80).Draw(rt, "lines")
	width := rapid.IntRange(1, 120).Draw(rt, "width")
	height := rapid.IntRange(1, 50).Draw(rt, "height")

	doc := document.Empty()
	if len(lines) > 0 {
		var err error
		doc, err = document.Read(strings.NewReader(strings.Join(lines, "\n") + "\n"))
		if err != nil {
			rt.Fatalf("read: %v", err)
		}
	}
	return New(newFakeScreen(width, height), nil, "dev", WithDocument(doc))
}

func TestCursorStaysInBoundsProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := drawEditor(rt)
		keys := rapid.SliceOfN(rapid.SampledFrom(navigationKeys), 1, 200).Draw(rt, "keys")

		for _, k := range keys {
			e.HandleKey(k)
			c := e.Cursor()
			h := e.Document().RowCount()
			if c.Y < 0 || c.Y > h {
				rt.Fatalf("after %v: y=%d outside [0, %d]", k, c.Y, h)
			}
			if w := e.rowLen(c.Y); c.X < 0 || c.X > w {
				rt.Fatalf("after %v: x=%d outside [0, %d] on row %d", k, c.X, w, c.Y)
			}
		}
	})
}

func TestCursorStaysInViewportProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := drawEditor(rt)
		keys := rapid.SliceOfN(rapid.SampledFrom(navigationKeys), 1, 200).Draw(rt, "keys")
		view := e.viewport()

		for _, k := range keys {
			e.HandleKey(k)
			c, off := e.Cursor(), e.Offset()
			if c.Y < off.Y || c.Y >= off.Y+view.Height {
				rt.Fatalf("after %v: y=%d outside rows [%d, %d)", k, c.Y, off.Y, off.Y+view.Height)
			}
			if c.X < off.X || c.X >= off.X+view.Width {
				rt.Fatalf("after %v: x=%d outside columns [%d, %d)", k, c.X, off.X, off.X+view.Width)
			}
			screen := c.Sub(off)
			if screen.X >= view.Width || screen.Y >= view.Height {
				rt.Fatalf("after %v: screen position %+v outside %+v", k, screen, view)
			}
		}
	})
}

func TestDownAtBottomIsNoopProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := drawEditor(rt)
		for i, n := 0, e.Document().RowCount(); i < n; i++ {
			e.HandleKey(terminal.KeyArrowDown)
		}
		before, offset := e.Cursor(), e.Offset()
		e.HandleKey(terminal.KeyArrowDown)
		e.HandleKey(terminal.KeyPageDown)
		if e.Cursor() != before || e.Offset() != offset {
			rt.Fatalf("moving down at the bottom changed %+v/%+v to %+v/%+v", before, offset, e.Cursor(), e.Offset())
		}
	})
}

func TestPageDownFromTopProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := drawEditor(rt)
		h := e.Document().RowCount()
		H := e.screen.Size().Height

		e.HandleKey(terminal.KeyPageDown)
		want := min(H, h)
		if got := e.Cursor().Y; got != want {
			rt.Fatalf("page down with %d rows on a %d-high terminal: y=%d, want %d", h, H, got, want)
		}
	})
}

func TestHomeEndProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := drawEditor(rt)
		keys := rapid.SliceOfN(rapid.SampledFrom(navigationKeys), 0, 50).Draw(rt, "keys")
		for _, k := range keys {
			e.HandleKey(k)
		}
		L := e.rowLen(e.Cursor().Y)

		e.HandleKey(terminal.KeyHome)
		if e.Cursor().X != 0 {
			rt.Fatalf("home: x=%d", e.Cursor().X)
		}
		e.HandleKey(terminal.KeyEnd)
		if e.Cursor().X != L {
			rt.Fatalf("end: x=%d, want %d", e.Cursor().X, L)
		}
	})
}

// Package editor implements the read-only navigation core: a control loop
// that reads keys, moves a cursor over a document, keeps the viewport
// around the cursor and redraws the screen every cycle.
package editor

import (
	"fmt"

	"ezhuthu/internal/document"
	"ezhuthu/internal/log"
	"ezhuthu/internal/terminal"
)

// Screen is the part of *terminal.Terminal the editor draws on and reads
// keys from.
type Screen interface {
	Size() terminal.Size
	ClearScreen()
	ClearCurrentLine()
	CursorPosition(terminal.Position)
	CursorShow()
	CursorHide()
	Print(s string)
	Println(s string)
	Flush() error
	ReadKey() (terminal.Key, error)
}

// State is the control loop state.
type State int

const (
	Running State = iota
	Quitting
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Quitting:
		return "quitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Editor owns the screen, the document and the cursor/viewport state.
// It is driven by a single goroutine.
type Editor struct {
	screen  Screen
	doc     *document.Document
	version string

	cursor terminal.Position
	offset terminal.Position
	state  State

	quitKey    terminal.Key
	statusLine bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithQuitKey replaces the default Ctrl-Q quit key.
func WithQuitKey(k terminal.Key) Option {
	return func(e *Editor) { e.quitKey = k }
}

// WithStatusLine toggles the status line on the reserved bottom row.
func WithStatusLine(on bool) Option {
	return func(e *Editor) { e.statusLine = on }
}

// WithDocument uses d instead of loading from args.
func WithDocument(d *document.Document) Option {
	return func(e *Editor) { e.doc = d }
}

// New creates an editor on screen. args holds the positional arguments:
// when present, args[0] is opened as the document, and a file that cannot
// be read yields an empty document. version is shown on the welcome
// banner.
func New(screen Screen, args []string, version string, opts ...Option) *Editor {
	e := &Editor{
		screen:     screen,
		version:    version,
		quitKey:    terminal.Ctrl('q'),
		statusLine: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.doc == nil {
		e.doc = loadDocument(args)
	}
	return e
}

func loadDocument(args []string) *document.Document {
	if len(args) == 0 {
		return document.Empty()
	}
	doc, err := document.Load(args[0])
	if err != nil {
		log.Warn(log.CatDoc, "open failed, using empty document", "path", args[0], "error", err)
		return doc
	}
	log.Info(log.CatDoc, "opened", "path", args[0], "rows", doc.RowCount())
	return doc
}

func (e *Editor) Document() *document.Document { return e.doc }

func (e *Editor) State() State { return e.state }

// Cursor is the cursor position in document coordinates.
func (e *Editor) Cursor() terminal.Position { return e.cursor }

// Offset is the document coordinate of the top-left screen cell.
func (e *Editor) Offset() terminal.Position { return e.offset }

// Run redraws and handles keys until the quit key is read. The farewell
// frame is drawn before Run returns nil. Any terminal failure ends the
// loop and is returned; the caller is expected to treat it as fatal.
func (e *Editor) Run() error {
	for {
		if err := e.Redraw(); err != nil {
			return fmt.Errorf("redraw: %w", err)
		}
		if e.state == Quitting {
			log.Info(log.CatEditor, "quit")
			return nil
		}
		if err := e.ProcessKeypress(); err != nil {
			return fmt.Errorf("read key: %w", err)
		}
	}
}

// ProcessKeypress blocks for one key and handles it.
func (e *Editor) ProcessKeypress() error {
	key, err := e.screen.ReadKey()
	if err != nil {
		return err
	}
	e.HandleKey(key)
	return nil
}

// HandleKey dispatches key and then brings the cursor back into view.
// Keys other than quit and navigation are ignored.
func (e *Editor) HandleKey(key terminal.Key) {
	switch key {
	case e.quitKey:
		e.state = Quitting
	case terminal.KeyArrowUp, terminal.KeyArrowDown,
		terminal.KeyArrowLeft, terminal.KeyArrowRight,
		terminal.KeyPageUp, terminal.KeyPageDown,
		terminal.KeyHome, terminal.KeyEnd:
		e.MoveCursor(key)
	}
	e.Scroll()
	log.Debug(log.CatEditor, "key", "key", key, "cursor", e.cursor, "offset", e.offset)
}

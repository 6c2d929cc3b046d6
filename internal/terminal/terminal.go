// Package terminal wraps a raw-mode ANSI terminal: geometry, cursor and
// erase control sequences, buffered output and blocking key reads.
package terminal

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"ezhuthu/internal/log"
)

const (
	seqClearScreen = "\x1b[2J"
	seqClearLine   = "\x1b[K"
	seqCursorHide  = "\x1b[?25l"
	seqCursorShow  = "\x1b[?25h"
)

// ErrNotTerminal is returned by New when the input is not a TTY.
var ErrNotTerminal = errors.New("not a terminal")

// Error is the I/O failure kind for every terminal read, write and mode
// change.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "terminal " + e.Op + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Terminal is a screen in raw mode. Output is buffered until Flush.
type Terminal struct {
	in   *bufio.Reader
	out  *bufio.Writer
	size Size

	fd          int
	termOrig    unix.Termios
	raw         bool
	restoreOnce sync.Once
	restoreErr  error

	numBuf [32]byte
}

// New puts in into raw mode and queries the window size on out. The
// previous mode is restored by Close, which callers must defer.
func New(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	t := &Terminal{
		in:   bufio.NewReader(in),
		out:  bufio.NewWriter(out),
		size: querySize(int(out.Fd())),
		fd:   fd,
	}
	if err := t.enableRawMode(); err != nil {
		return nil, err
	}
	log.Debug(log.CatTerm, "raw mode enabled", "width", t.size.Width, "height", t.size.Height)
	return t, nil
}

// NewWithIO returns a terminal over arbitrary streams with a fixed size.
// No mode change is made, so Close only shows the cursor and flushes.
func NewWithIO(r io.Reader, w io.Writer, size Size) *Terminal {
	return &Terminal{
		in:   bufio.NewReader(r),
		out:  bufio.NewWriter(w),
		size: size,
		fd:   -1,
	}
}

func querySize(fd int) Size {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err == nil && ws.Col > 0 && ws.Row > 0 {
		return Size{Width: int(ws.Col), Height: int(ws.Row)}
	}
	return DefaultSize
}

func (t *Terminal) enableRawMode() error {
	orig, err := unix.IoctlGetTermios(t.fd, ioctlGetTermios)
	if err != nil {
		return &Error{Op: "get mode", Err: err}
	}
	t.termOrig = *orig
	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &raw); err != nil {
		return &Error{Op: "set mode", Err: err}
	}
	t.raw = true
	return nil
}

// Close shows the cursor, flushes pending output and restores the mode
// saved by New. Calling it more than once is harmless.
func (t *Terminal) Close() error {
	t.out.WriteString(seqCursorShow)
	flushErr := t.Flush()
	if err := t.Restore(); err != nil {
		return err
	}
	return flushErr
}

// Restore puts back the mode saved by New without writing any output, so
// it may be called from a signal handler while the loop is drawing. Only
// the first call has an effect.
func (t *Terminal) Restore() error {
	if !t.raw {
		return nil
	}
	t.restoreOnce.Do(func() {
		if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &t.termOrig); err != nil {
			t.restoreErr = &Error{Op: "restore mode", Err: err}
			return
		}
		log.Debug(log.CatTerm, "raw mode restored")
	})
	return t.restoreErr
}

// Size reports the full window. Callers reserve rows for their own use.
func (t *Terminal) Size() Size { return t.size }

func (t *Terminal) ClearScreen() { t.out.WriteString(seqClearScreen) }

func (t *Terminal) ClearCurrentLine() { t.out.WriteString(seqClearLine) }

func (t *Terminal) CursorHide() { t.out.WriteString(seqCursorHide) }

func (t *Terminal) CursorShow() { t.out.WriteString(seqCursorShow) }

// CursorPosition moves the cursor to p. Escape sequences are one-based.
func (t *Terminal) CursorPosition(p Position) {
	t.out.WriteString("\x1b[")
	t.out.Write(strconv.AppendInt(t.numBuf[:0], int64(p.Y+1), 10))
	t.out.WriteByte(';')
	t.out.Write(strconv.AppendInt(t.numBuf[:0], int64(p.X+1), 10))
	t.out.WriteByte('H')
}

func (t *Terminal) Print(s string) { t.out.WriteString(s) }

// Println writes s followed by "\r\n"; raw mode does not translate a bare
// newline into a carriage return.
func (t *Terminal) Println(s string) {
	t.out.WriteString(s)
	t.out.WriteString("\r\n")
}

// Flush writes buffered output. A failed earlier write is reported here.
func (t *Terminal) Flush() error {
	if err := t.out.Flush(); err != nil {
		return &Error{Op: "flush", Err: err}
	}
	return nil
}

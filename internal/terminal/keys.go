package terminal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// escDelay is how long to wait, in milliseconds, for the rest of an escape
// sequence that arrived split across reads.
const escDelay = 25

// Key is one decoded key press. Printable characters and control bytes are
// their own code point; navigation keys use synthetic codes from 1000.
type Key int

const (
	KeyEscape    Key = 0x1b
	KeyBackspace Key = 0x7f
)

const (
	KeyArrowLeft Key = 1000 + iota
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// Ctrl returns the key produced by holding Control with letter c.
func Ctrl(c byte) Key { return Key(c & 0x1f) }

var keyNames = map[Key]string{
	KeyEscape:     "esc",
	KeyBackspace:  "backspace",
	KeyArrowLeft:  "left",
	KeyArrowRight: "right",
	KeyArrowUp:    "up",
	KeyArrowDown:  "down",
	KeyDelete:     "delete",
	KeyHome:       "home",
	KeyEnd:        "end",
	KeyPageUp:     "pgup",
	KeyPageDown:   "pgdown",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= 1 && k <= 26 {
		return fmt.Sprintf("ctrl-%c", 'a'+rune(k)-1)
	}
	if k < 0x20 {
		return fmt.Sprintf("0x%02x", int(k))
	}
	return string(rune(k))
}

// ReadKey blocks until a key is available. An escape byte with nothing
// following it within escDelay is a bare ESC.
func (t *Terminal) ReadKey() (Key, error) {
	r, _, err := t.in.ReadRune()
	if err != nil {
		return 0, &Error{Op: "read", Err: err}
	}
	if r != rune(KeyEscape) || !t.pending() {
		return Key(r), nil
	}
	b, err := t.in.ReadByte()
	if err != nil {
		return KeyEscape, nil
	}
	switch b {
	case '[':
		return t.readCSI(), nil
	case 'O':
		return t.readSS3(), nil
	}
	t.in.UnreadByte()
	return KeyEscape, nil
}

// readCSI decodes the rest of an "ESC [" sequence, consuming bytes up to
// and including the final byte. Sequences too long to be a key are drained
// and reported as a bare ESC.
func (t *Terminal) readCSI() Key {
	var seq [32]byte
	n, overflow := 0, false
	for t.pending() {
		b, err := t.in.ReadByte()
		if err != nil {
			break
		}
		if n < len(seq) {
			seq[n] = b
			n++
		} else {
			overflow = true
		}
		if b == '~' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') {
			break
		}
	}
	if overflow {
		return KeyEscape
	}
	return decodeCSI(seq[:n])
}

func decodeCSI(seq []byte) Key {
	if len(seq) == 0 {
		return KeyEscape
	}
	last := seq[len(seq)-1]
	if last == '~' && len(seq) >= 2 {
		switch string(seq[:len(seq)-1]) {
		case "1", "7":
			return KeyHome
		case "3":
			return KeyDelete
		case "4", "8":
			return KeyEnd
		case "5":
			return KeyPageUp
		case "6":
			return KeyPageDown
		}
		return KeyEscape
	}
	switch last {
	case 'A':
		return KeyArrowUp
	case 'B':
		return KeyArrowDown
	case 'C':
		return KeyArrowRight
	case 'D':
		return KeyArrowLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	return KeyEscape
}

func (t *Terminal) readSS3() Key {
	if !t.pending() {
		return KeyEscape
	}
	b, err := t.in.ReadByte()
	if err != nil {
		return KeyEscape
	}
	switch b {
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	return KeyEscape
}

// pending reports whether another byte can be read without blocking for
// longer than escDelay.
func (t *Terminal) pending() bool {
	if t.in.Buffered() > 0 {
		return true
	}
	if t.fd < 0 {
		return false
	}
	fds := []unix.PollFd{{Fd: int32(t.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, escDelay)
	return err == nil && n > 0 && fds[0].Revents&unix.POLLIN != 0
}

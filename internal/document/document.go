// Package document holds the read-only, line oriented text the editor
// navigates.
package document

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Document is an ordered list of rows. The zero value is an empty scratch
// document.
type Document struct {
	rows []Row
	name string
}

// Empty returns a document with no rows and no name.
func Empty() *Document {
	return &Document{}
}

// Read splits r into rows. Both "\n" and "\r\n" terminate a line, and a
// trailing terminator does not produce an extra empty row.
func Read(r io.Reader) (*Document, error) {
	d := &Document{}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if line[len(line)-1] == '\n' {
				line = line[:len(line)-1]
				if len(line) > 0 && line[len(line)-1] == '\r' {
					line = line[:len(line)-1]
				}
			}
			d.rows = append(d.rows, NewRow(line))
		}
		if errors.Is(err, io.EOF) {
			return d, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Open reads the file at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	d.name = path
	return d, nil
}

// Load is Open that never fails: on error it returns an empty document
// together with the error, which the caller may report or ignore.
func Load(path string) (*Document, error) {
	d, err := Open(path)
	if err != nil {
		return Empty(), err
	}
	return d, nil
}

// Row returns the row at index, or false when index is out of range.
func (d *Document) Row(index int) (*Row, bool) {
	if index < 0 || index >= len(d.rows) {
		return nil, false
	}
	return &d.rows[index], true
}

func (d *Document) RowCount() int { return len(d.rows) }

func (d *Document) IsEmpty() bool { return len(d.rows) == 0 }

// Name is the path the document was opened from, empty for scratch
// documents.
func (d *Document) Name() string { return d.name }

package editor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ezhuthu/internal/document"
	"ezhuthu/internal/terminal"
)

func generateBenchmarkFile(b *testing.B, lines int) string {
	b.Helper()
	path := filepath.Join(b.TempDir(), fmt.Sprintf("bench_%d.txt", lines))
	f, err := os.Create(path)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < lines; i++ {
		fmt.Fprintf(f, "Line %d: The quick brown fox jumps over the lazy dog.\n", i+1)
	}
	f.Close()
	return path
}

func BenchmarkOpenFile(b *testing.B) {
	cases := []struct {
		name  string
		lines int
	}{
		{"Empty", 0},
		{"100", 100},
		{"1K", 1000},
		{"10K", 10000},
	}
	for _, tc := range cases {
		path := generateBenchmarkFile(b, tc.lines)
		b.Run(tc.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := document.Open(path); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRedraw(b *testing.B) {
	doc, err := document.Open(generateBenchmarkFile(b, 1000))
	if err != nil {
		b.Fatal(err)
	}
	term := terminal.NewWithIO(strings.NewReader(""), io.Discard, terminal.Size{Width: 120, Height: 50})
	e := New(term, nil, "bench", WithDocument(doc))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := e.Redraw(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMovement(b *testing.B) {
	doc, err := document.Open(generateBenchmarkFile(b, 1000))
	if err != nil {
		b.Fatal(err)
	}
	e := New(newFakeScreen(80, 24), nil, "bench", WithDocument(doc))
	keys := []terminal.Key{
		terminal.KeyPageDown, terminal.KeyArrowDown, terminal.KeyEnd,
		terminal.KeyArrowUp, terminal.KeyHome, terminal.KeyPageUp,
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.HandleKey(keys[i%len(keys)])
	}
}

package document

// Row is a single line of text. Columns count characters, not bytes.
type Row struct {
	s []rune
}

func NewRow(s string) Row {
	return Row{s: []rune(s)}
}

func (r Row) Len() int { return len(r.s) }

func (r Row) String() string { return string(r.s) }

// Render returns the characters in columns [start, end). Out of range
// bounds are clamped, so the result is empty once start passes the end of
// the row.
func (r Row) Render(start, end int) string {
	end = min(end, len(r.s))
	start = min(start, end)
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	return string(r.s[start:end])
}

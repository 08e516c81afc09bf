// Package debug has helpers for human readable dumps stored in debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// maxTextRunes limits length of text values in dumps.
const maxTextRunes = 120

// TreeWriter accumulates indented lines.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes labeled text value quoted and shortened. Empty values
// are skipped.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	if value == "" {
		return
	}
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if r := []rune(raw); len(r) > maxTextRunes {
		return strconv.Quote(string(r[:maxTextRunes])) + "..."
	}
	return strconv.Quote(raw)
}

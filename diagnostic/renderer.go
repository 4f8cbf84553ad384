// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

const tabWidth = 4

// Renderer formats diagnostics as annotated source snippets.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// Sources holds source text that does not live in a file, such as an
	// expression given on the command line, keyed by source name.
	Sources map[string]string

	// ReadFile reads source files not found in Sources.  If nil, os.ReadFile
	// is used.
	ReadFile func(string) ([]byte, error)
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, w)
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	sevColor := p.boldRed
	if d.Severity == SeverityNote {
		sevColor = p.boldCyan
	}
	ew.printf("%s%s%s: %s%s%s\n", sevColor, d.header(), p.reset, p.bold, d.Message, p.reset)

	for _, span := range d.Spans {
		r.writeSpan(ew, span, p)
	}
	for _, note := range d.Notes {
		ew.printf("   %s=%s note: %s\n", p.boldCyan, p.reset, note)
	}
	for _, frame := range d.Frames {
		ew.printf("   %s=%s in %s\n", p.boldCyan, p.reset, frame)
	}

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// errWriter captures the first write error and drops subsequent writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, p palette) {
	loc := span.File
	if span.Line > 0 {
		loc = fmt.Sprintf("%s:%d", span.File, span.Line)
		if span.Col > 0 {
			loc = fmt.Sprintf("%s:%d:%d", span.File, span.Line, span.Col)
		}
	}
	ew.printf("  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	source, ok := r.sourceLine(span.File, span.Line)
	if !ok {
		ew.printf("   %s|%s\n", p.boldBlue, p.reset)
		return
	}

	lineStr := strconv.Itoa(span.Line)
	pad := strings.Repeat(" ", len(lineStr))
	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
	ew.printf(" %s%s |%s  %s\n", p.boldBlue, lineStr, p.reset, expandTabs(source))

	col := span.Col
	if col <= 0 {
		col = 1
	}
	endCol := span.EndCol
	if endCol <= 0 {
		endCol = tokenEnd(source, col)
	}
	if endCol < col {
		endCol = col
	}
	prefix := ""
	if col-1 <= len(source) {
		prefix = source[:col-1]
	}
	underPad := strings.Repeat(" ", displayWidth(prefix))
	underline := strings.Repeat("^", endCol-col+1)
	ew.printf(" %s%s |%s  %s%s%s%s", p.boldBlue, pad, p.reset, underPad, p.boldRed, underline, p.reset)
	if span.Label != "" {
		ew.printf(" %s%s%s", p.boldRed, span.Label, p.reset)
	}
	ew.printf("\n")
	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
}

// sourceLine returns line number line of the named source.
func (r *Renderer) sourceLine(name string, line int) (string, bool) {
	if line <= 0 || name == "" {
		return "", false
	}
	text, ok := r.Sources[name]
	if !ok {
		readFile := r.ReadFile
		if readFile == nil {
			readFile = os.ReadFile
		}
		b, err := readFile(name)
		if err != nil {
			return "", false
		}
		text = string(b)
	}
	lines := strings.Split(text, "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}

// tokenEnd returns the 1-based column of the last character of the token
// starting at col.
func tokenEnd(source string, col int) int {
	if col > len(source) {
		return col
	}
	end := col - 1
	for end < len(source) {
		ch, size := utf8.DecodeRuneInString(source[end:])
		if strings.ContainsRune(" \t(){}", ch) {
			break
		}
		end += size
	}
	if end == col-1 {
		return col
	}
	return end
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// displayWidth returns the display width of s with tabs expanded.
func displayWidth(s string) int {
	w := 0
	for _, ch := range s {
		if ch == '\t' {
			w += tabWidth
		} else {
			w++
		}
	}
	return w
}

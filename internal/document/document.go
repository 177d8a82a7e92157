// Package document keeps the line-indexed representation of every open
// script and applies incremental edits to it.
package document

import (
	"strings"

	"github.com/Naninovel/Language/internal/script"
	"github.com/Naninovel/Language/internal/text"
)

// Line is the text of a single line together with its parse result.
// Lines are replaced wholesale on reparse, never patched.
type Line struct {
	Text   string
	Script script.Line
	Errors []script.ParseError
}

// Document is an ordered, never empty sequence of lines.
type Document struct {
	lines []Line
}

func newDocument(content string, parse script.ParseFunc) *Document {
	return &Document{lines: parseLines(text.SplitLines(content), parse)}
}

func parseLines(texts []string, parse script.ParseFunc) []Line {
	lines := make([]Line, len(texts))
	for i, t := range texts {
		tree, errs := parse(t)
		lines[i] = Line{Text: t, Script: tree, Errors: errs}
	}
	return lines
}

// Lines returns the document lines. Callers must treat the slice as read-only.
func (d *Document) Lines() []Line {
	return d.lines
}

func (d *Document) Line(index int) Line {
	return d.lines[index]
}

func (d *Document) LineCount() int {
	return len(d.lines)
}

// Text joins the lines with "\n".
func (d *Document) Text() string {
	texts := make([]string, len(d.lines))
	for i, line := range d.lines {
		texts[i] = line.Text
	}
	return strings.Join(texts, "\n")
}

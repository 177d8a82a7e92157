package script

import (
	"unicode"
	"unicode/utf16"
)

const (
	MissingCommandIdentifier = "Missing command identifier."
	MissingClosingBracket    = "Missing closing square bracket for inlined command."
	MissingClosingBrace      = "Missing closing curly bracket for expression."
	MissingClosingQuote      = "Missing closing quote."
	MissingParameterID       = "Missing parameter identifier."
	MissingParameterValue    = "Missing parameter value."
	MultipleNameless         = "Command can't have more than one nameless parameter."
	MissingLabelText         = "Missing label text."
)

// ParseFunc turns the text of a single line into its syntax tree.
type ParseFunc func(text string) (Line, []ParseError)

// ParseLine parses a single line of script text. It never fails: malformed
// content is reported through the returned errors.
func ParseLine(text string) (Line, []ParseError) {
	p := &parser{units: utf16.Encode([]rune(text))}
	line := p.parseLine()
	return line, p.errors
}

type parser struct {
	units  []uint16
	errors []ParseError
}

func (p *parser) parseLine() Line {
	n := len(p.units)
	start := p.skipSpace(0, n)
	if start == n {
		return &EmptyLine{}
	}
	switch p.units[start] {
	case ';':
		span := p.trim(start+1, n)
		return &CommentLine{Text: p.text(span), TextSpan: span}
	case '#':
		span := p.trim(start+1, n)
		if span.Len() == 0 {
			p.errorAt(start, start, MissingLabelText)
		}
		return &LabelLine{Text: p.text(span), TextSpan: span}
	case '@':
		return &CommandLine{Command: p.parseCommand(start, start+1, n)}
	default:
		return p.parseGeneric(start)
	}
}

// parseCommand reads an identifier and parameters in [from, to). marker is
// the index of the '@' or '[' introducing the command.
func (p *parser) parseCommand(marker, from, to int) *Command {
	end := from
	for end < to && !isSpace(p.units[end]) {
		end++
	}
	if end == from {
		p.errorAt(marker, marker, MissingCommandIdentifier)
	}
	id := Identifier{Text: p.text(Span{from, end}), Span: Span{from, end}}
	cmd := &Command{Span: id.Span, Identifier: id}

	hasNameless := false
	for pos := p.skipSpace(end, to); pos < to; pos = p.skipSpace(pos, to) {
		param := p.parseParameter(pos, to)
		if param.Nameless() {
			if hasNameless {
				p.errorAt(param.Span.Start, param.Span.End-1, MultipleNameless)
			}
			hasNameless = true
		}
		cmd.Parameters = append(cmd.Parameters, param)
		cmd.Span.End = param.Span.End
		pos = param.Span.End
	}
	return cmd
}

func (p *parser) parseParameter(start, to int) *Parameter {
	colon, quoteStart := -1, -1
	quoted, sawSyntax := false, false
	var expressions []Expression

	i := start
scan:
	for i < to {
		c := p.units[i]
		switch {
		case c == '\\':
			i = min(i+2, to)
		case c == '{':
			expr := p.parseExpression(i, to)
			expressions = append(expressions, expr)
			sawSyntax = true
			i = expr.Span.End
		case quoted:
			if c == '"' {
				quoted = false
			}
			i++
		case c == '"':
			quoted, sawSyntax, quoteStart = true, true, i
			i++
		case isSpace(c):
			break scan
		case c == ':' && colon < 0 && !sawSyntax:
			colon = i
			i++
		default:
			i++
		}
	}
	if quoted {
		p.errorAt(quoteStart, i-1, MissingClosingQuote)
	}

	param := &Parameter{Span: Span{start, i}}
	valueStart := start
	if colon >= 0 {
		if colon == start {
			p.errorAt(colon, colon, MissingParameterID)
		}
		if colon+1 == i {
			p.errorAt(colon, colon, MissingParameterValue)
		}
		param.Identifier = &Identifier{Text: p.text(Span{start, colon}), Span: Span{start, colon}}
		valueStart = colon + 1
	}
	valueSpan := Span{valueStart, i}
	param.Value = ParameterValue{Span: valueSpan, Text: p.text(valueSpan), Expressions: expressions}
	return param
}

// parseExpression reads a brace-delimited expression opening at open.
func (p *parser) parseExpression(open, to int) Expression {
	depth := 0
	for i := open; i < to; i++ {
		switch p.units[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return Expression{Span: Span{open, i + 1}, Body: p.text(Span{open + 1, i})}
			}
		}
	}
	p.errorAt(open, to-1, MissingClosingBrace)
	return Expression{Span: Span{open, to}, Body: p.text(Span{open + 1, to})}
}

func (p *parser) parseGeneric(start int) *GenericTextLine {
	n := len(p.units)
	line := &GenericTextLine{}
	pos := start
	if prefix, next, ok := p.parsePrefix(start); ok {
		line.Prefix = prefix
		pos = next
	}

	textStart := pos
	var expressions []Expression
	flush := func(end int) {
		if end > textStart {
			span := Span{textStart, end}
			line.Content = append(line.Content, &GenericText{Span: span, Text: p.text(span), Expressions: expressions})
		}
		expressions = nil
	}
	for pos < n {
		switch p.units[pos] {
		case '\\':
			pos = min(pos+2, n)
		case '{':
			expr := p.parseExpression(pos, n)
			expressions = append(expressions, expr)
			pos = expr.Span.End
		case '[':
			flush(pos)
			inlined := p.parseInlined(pos)
			line.Content = append(line.Content, inlined)
			pos = inlined.Span.End
			textStart = pos
		default:
			pos++
		}
	}
	flush(n)
	return line
}

// parsePrefix recognizes "author[.appearance]: " at the start of generic text.
func (p *parser) parsePrefix(start int) (*GenericPrefix, int, bool) {
	n := len(p.units)
	dot := -1
	for i := start; i < n; i++ {
		switch c := p.units[i]; {
		case c == ':':
			if i == start || i+1 >= n || p.units[i+1] != ' ' {
				return nil, 0, false
			}
			authorEnd := i
			if dot >= 0 {
				authorEnd = dot
			}
			if authorEnd == start {
				return nil, 0, false
			}
			prefix := &GenericPrefix{
				Span:   Span{start, i + 1},
				Author: Identifier{Text: p.text(Span{start, authorEnd}), Span: Span{start, authorEnd}},
			}
			if dot >= 0 && dot+1 < i {
				span := Span{dot + 1, i}
				prefix.Appearance = &Identifier{Text: p.text(span), Span: span}
			}
			return prefix, i + 2, true
		case c == '.':
			if dot < 0 {
				dot = i
			}
		case isSpace(c) || c == '[' || c == ']' || c == '{' || c == '}' || c == '"' || c == '\\':
			return nil, 0, false
		}
	}
	return nil, 0, false
}

func (p *parser) parseInlined(open int) *InlinedCommand {
	n := len(p.units)
	closing, end := p.findClosingBracket(open+1), 0
	if closing < 0 {
		p.errorAt(open, n-1, MissingClosingBracket)
		closing, end = n, n
	} else {
		end = closing + 1
	}
	return &InlinedCommand{Span: Span{open, end}, Command: p.parseCommand(open, open+1, closing)}
}

func (p *parser) findClosingBracket(from int) int {
	quoted := false
	depth := 0
	for i := from; i < len(p.units); i++ {
		switch c := p.units[i]; {
		case c == '\\':
			i++
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case depth > 0:
		case c == '"':
			quoted = !quoted
		case c == ']' && !quoted:
			return i
		}
	}
	return -1
}

func (p *parser) skipSpace(from, to int) int {
	for from < to && isSpace(p.units[from]) {
		from++
	}
	return from
}

func (p *parser) trim(from, to int) Span {
	from = p.skipSpace(from, to)
	for to > from && isSpace(p.units[to-1]) {
		to--
	}
	return Span{from, to}
}

func (p *parser) text(span Span) string {
	if span.End <= span.Start {
		return ""
	}
	return string(utf16.Decode(p.units[span.Start:span.End]))
}

func (p *parser) errorAt(start, end int, message string) {
	if end < start {
		end = start
	}
	p.errors = append(p.errors, ParseError{StartIndex: start, EndIndex: end, Message: message})
}

func isSpace(c uint16) bool {
	return unicode.IsSpace(rune(c))
}

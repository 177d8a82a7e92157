// Package script holds the syntax tree of a single script line and the
// parser producing it. All offsets are UTF-16 code units within the line.
package script

// Span is a half-open range [Start, End) of UTF-16 code units in a line.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether character lies within the span.
func (s Span) Contains(character int) bool {
	return character >= s.Start && character < s.End
}

// ParseError describes malformed line content. EndIndex is inclusive.
type ParseError struct {
	StartIndex int
	EndIndex   int
	Message    string
}

type LineKind int

const (
	KindEmpty LineKind = iota
	KindGenericText
	KindCommand
	KindLabel
	KindComment
)

func (k LineKind) String() string {
	switch k {
	case KindGenericText:
		return "GenericTextLine"
	case KindCommand:
		return "CommandLine"
	case KindLabel:
		return "LabelLine"
	case KindComment:
		return "CommentLine"
	default:
		return "EmptyLine"
	}
}

// Line is one of *EmptyLine, *GenericTextLine, *CommandLine, *LabelLine
// or *CommentLine.
type Line interface {
	Kind() LineKind
	line()
}

type EmptyLine struct{}

type CommentLine struct {
	Text     string
	TextSpan Span
}

type LabelLine struct {
	Text     string
	TextSpan Span
}

type CommandLine struct {
	Command *Command
}

type GenericTextLine struct {
	Prefix  *GenericPrefix // nil when the line has no author prefix
	Content []GenericContent
}

func (*EmptyLine) Kind() LineKind       { return KindEmpty }
func (*CommentLine) Kind() LineKind     { return KindComment }
func (*LabelLine) Kind() LineKind       { return KindLabel }
func (*CommandLine) Kind() LineKind     { return KindCommand }
func (*GenericTextLine) Kind() LineKind { return KindGenericText }

func (*EmptyLine) line()       {}
func (*CommentLine) line()     {}
func (*LabelLine) line()       {}
func (*CommandLine) line()     {}
func (*GenericTextLine) line() {}

// Commands returns the commands inlined into the generic text in source order.
func (l *GenericTextLine) Commands() []*Command {
	var commands []*Command
	for _, content := range l.Content {
		if inlined, ok := content.(*InlinedCommand); ok {
			commands = append(commands, inlined.Command)
		}
	}
	return commands
}

// Identifier is a named token with its location.
type Identifier struct {
	Text string
	Span Span
}

type GenericPrefix struct {
	Span       Span
	Author     Identifier
	Appearance *Identifier
}

// GenericContent is either *InlinedCommand or *GenericText.
type GenericContent interface {
	ContentSpan() Span
	content()
}

type InlinedCommand struct {
	Span    Span
	Command *Command
}

// GenericText is a run of printed prose, possibly with embedded expressions.
type GenericText struct {
	Span        Span
	Text        string
	Expressions []Expression
}

func (c *InlinedCommand) ContentSpan() Span { return c.Span }
func (c *GenericText) ContentSpan() Span    { return c.Span }

func (*InlinedCommand) content() {}
func (*GenericText) content()    {}

// Expression is a `{...}` span evaluated at runtime; Span includes the braces.
type Expression struct {
	Span Span
	Body string
}

type Command struct {
	Span       Span
	Identifier Identifier
	Parameters []*Parameter
}

type Parameter struct {
	Span       Span
	Identifier *Identifier // nil for a nameless parameter
	Value      ParameterValue
}

func (p *Parameter) Nameless() bool { return p.Identifier == nil }

// ID returns the parameter identifier, or "" when the parameter is nameless.
func (p *Parameter) ID() string {
	if p.Identifier == nil {
		return ""
	}
	return p.Identifier.Text
}

type ParameterValue struct {
	Span        Span
	Text        string
	Expressions []Expression
}

func (v ParameterValue) Empty() bool { return v.Text == "" }

// Dynamic reports whether the value depends on a runtime expression.
func (v ParameterValue) Dynamic() bool { return len(v.Expressions) > 0 }

func (v ParameterValue) String() string { return v.Text }

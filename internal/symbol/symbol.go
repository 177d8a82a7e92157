// Package symbol builds the document outline: one root symbol per line
// with the syntax of the line nested below it.
package symbol

import (
	"github.com/Naninovel/Language/internal/document"
	"github.com/Naninovel/Language/internal/metadata"
	"github.com/Naninovel/Language/internal/script"
	"github.com/Naninovel/Language/internal/text"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type Handler struct {
	registry *document.Registry
	provider *metadata.Provider
}

func NewHandler(registry *document.Registry, provider *metadata.Provider) *Handler {
	return &Handler{registry: registry, provider: provider}
}

// Symbols returns one root symbol per document line, in line order.
func (h *Handler) Symbols(uri string) ([]protocol.DocumentSymbol, error) {
	doc, err := h.registry.Get(uri)
	if err != nil {
		return nil, err
	}
	symbols := make([]protocol.DocumentSymbol, doc.LineCount())
	for i, line := range doc.Lines() {
		b := builder{provider: h.provider, line: uint32(i)}
		symbols[i] = b.lineSymbol(line)
	}
	return symbols, nil
}

type builder struct {
	provider *metadata.Provider
	line     uint32
}

func (b builder) lineSymbol(line document.Line) protocol.DocumentSymbol {
	whole := script.Span{Start: 0, End: text.UTF16Len(line.Text)}
	switch tree := line.Script.(type) {
	case *script.LabelLine:
		return b.symbol("LabelLine", protocol.SymbolKindNamespace, whole,
			b.symbol("LabelText", protocol.SymbolKindString, tree.TextSpan))
	case *script.CommentLine:
		return b.symbol("CommentLine", protocol.SymbolKindString, whole,
			b.symbol("CommentText", protocol.SymbolKindString, tree.TextSpan))
	case *script.CommandLine:
		return b.symbol("CommandLine", protocol.SymbolKindStruct, whole, b.command(tree.Command))
	case *script.GenericTextLine:
		return b.symbol("GenericTextLine", protocol.SymbolKindString, whole, b.generic(tree)...)
	default:
		return b.symbol("EmptyLine", protocol.SymbolKindNull, script.Span{})
	}
}

func (b builder) generic(line *script.GenericTextLine) []protocol.DocumentSymbol {
	var children []protocol.DocumentSymbol
	if prefix := line.Prefix; prefix != nil {
		author := []protocol.DocumentSymbol{b.symbol("GenericTextAuthor", protocol.SymbolKindKey, prefix.Author.Span)}
		if prefix.Appearance != nil {
			author = append(author, b.symbol("GenericTextAuthorAppearance", protocol.SymbolKindEnum, prefix.Appearance.Span))
		}
		children = append(children, b.symbol("GenericTextPrefix", protocol.SymbolKindConstant, prefix.Span, author...))
	}
	for _, content := range line.Content {
		switch c := content.(type) {
		case *script.InlinedCommand:
			children = append(children, b.symbol("InlinedCommand", protocol.SymbolKindStruct, c.Span, b.command(c.Command)))
		case *script.GenericText:
			children = append(children, b.symbol("GenericText", protocol.SymbolKindString, c.Span, b.expressions(c.Expressions)...))
		}
	}
	return children
}

func (b builder) command(cmd *script.Command) protocol.DocumentSymbol {
	children := []protocol.DocumentSymbol{b.symbol("CommandIdentifier", protocol.SymbolKindKey, cmd.Identifier.Span)}
	for _, param := range cmd.Parameters {
		children = append(children, b.parameter(cmd, param))
	}
	return b.symbol("Command", protocol.SymbolKindFunction, cmd.Span, children...)
}

func (b builder) parameter(cmd *script.Command, param *script.Parameter) protocol.DocumentSymbol {
	var children []protocol.DocumentSymbol
	if !param.Nameless() {
		children = append(children, b.symbol("ParameterIdentifier", protocol.SymbolKindKey, param.Identifier.Span))
	}
	value := b.symbol("ParameterValue", b.valueKind(cmd, param), param.Value.Span, b.expressions(param.Value.Expressions)...)
	children = append(children, value)
	return b.symbol("Parameter", protocol.SymbolKindField, param.Span, children...)
}

// valueKind maps the declared parameter type to a symbol kind. Values with
// expressions are strings since their runtime type is unknown.
func (b builder) valueKind(cmd *script.Command, param *script.Parameter) protocol.SymbolKind {
	if param.Value.Dynamic() || (param.Identifier != nil && param.Identifier.Text == "") {
		return protocol.SymbolKindString
	}
	meta, ok := b.provider.FindParameter(cmd.Identifier.Text, param.ID())
	if !ok {
		return protocol.SymbolKindString
	}
	switch meta.ValueContainerType {
	case metadata.List, metadata.NamedList:
		return protocol.SymbolKindArray
	}
	switch meta.ValueType {
	case metadata.Integer, metadata.Decimal:
		return protocol.SymbolKindNumber
	case metadata.Boolean:
		return protocol.SymbolKindBoolean
	default:
		return protocol.SymbolKindString
	}
}

func (b builder) expressions(expressions []script.Expression) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol
	for _, expr := range expressions {
		symbols = append(symbols, b.symbol("Expression", protocol.SymbolKindProperty, expr.Span))
	}
	return symbols
}

func (b builder) symbol(name string, kind protocol.SymbolKind, span script.Span, children ...protocol.DocumentSymbol) protocol.DocumentSymbol {
	r := protocol.Range{
		Start: protocol.Position{Line: b.line, Character: uint32(span.Start)},
		End:   protocol.Position{Line: b.line, Character: uint32(span.End)},
	}
	return protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          r,
		SelectionRange: r,
		Children:       children,
	}
}

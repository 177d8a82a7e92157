// Package hover resolves the documentation shown when the cursor rests on
// a command or one of its parameters.
package hover

import (
	"github.com/Naninovel/Language/internal/document"
	"github.com/Naninovel/Language/internal/metadata"
	"github.com/Naninovel/Language/internal/script"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type Handler struct {
	registry *document.Registry
	provider *metadata.Provider
}

func NewHandler(registry *document.Registry, provider *metadata.Provider) *Handler {
	return &Handler{registry: registry, provider: provider}
}

// Hover returns nil when nothing documented lies under position.
func (h *Handler) Hover(uri string, position protocol.Position) (*protocol.Hover, error) {
	doc, err := h.registry.Get(uri)
	if err != nil {
		return nil, err
	}
	if int(position.Line) >= doc.LineCount() {
		return nil, nil
	}
	cmd := commandAt(doc.Line(int(position.Line)).Script, int(position.Character))
	if cmd == nil || cmd.Identifier.Text == "" {
		return nil, nil
	}
	meta, ok := h.provider.FindCommand(cmd.Identifier.Text)
	if !ok {
		return nil, nil
	}

	char := int(position.Character)
	if cmd.Identifier.Span.Contains(char) {
		return newHover(position.Line, cmd.Identifier.Span, commandMarkdown(meta)), nil
	}
	for _, param := range cmd.Parameters {
		if !param.Span.Contains(char) {
			continue
		}
		if (param.Identifier != nil && param.Identifier.Text == "") || inExpression(param.Value, char) {
			return nil, nil
		}
		paramMeta, ok := h.provider.FindParameter(meta.ID, param.ID())
		if !ok {
			return nil, nil
		}
		return newHover(position.Line, param.Span, paramMeta.Summary), nil
	}
	return nil, nil
}

func inExpression(value script.ParameterValue, char int) bool {
	for _, expr := range value.Expressions {
		if expr.Span.Contains(char) {
			return true
		}
	}
	return false
}

// commandAt returns the command whose extent covers char, if any.
func commandAt(line script.Line, char int) *script.Command {
	switch tree := line.(type) {
	case *script.CommandLine:
		return tree.Command
	case *script.GenericTextLine:
		for _, content := range tree.Content {
			if inlined, ok := content.(*script.InlinedCommand); ok && inlined.Span.Contains(char) {
				return inlined.Command
			}
		}
	}
	return nil
}

func newHover(line uint32, span script.Span, markdown string) *protocol.Hover {
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: markdown},
		Range: &protocol.Range{
			Start: protocol.Position{Line: line, Character: uint32(span.Start)},
			End:   protocol.Position{Line: line, Character: uint32(span.End)},
		},
	}
}

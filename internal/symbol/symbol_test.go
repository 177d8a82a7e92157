package symbol_test

import (
	"errors"
	"testing"

	"github.com/Naninovel/Language/internal/document"
	"github.com/Naninovel/Language/internal/metadata"
	"github.com/Naninovel/Language/internal/symbol"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type nopDiagnoser struct{}

func (nopDiagnoser) Diagnose(string) error { return nil }

var project = metadata.Project{Commands: []metadata.Command{{
	ID: "c",
	Parameters: []metadata.Parameter{
		{ID: "str", ValueType: metadata.String},
		{ID: "int", ValueType: metadata.Integer},
		{ID: "dec", ValueType: metadata.Decimal},
		{ID: "bool", ValueType: metadata.Boolean},
		{ID: "list", ValueContainerType: metadata.List},
		{ID: "named", ValueContainerType: metadata.NamedList},
		{ID: "single", ValueType: metadata.Integer, ValueContainerType: metadata.Named},
	},
}}}

func symbols(t *testing.T, text string) []protocol.DocumentSymbol {
	t.Helper()
	registry := document.NewRegistry()
	if err := document.NewHandler(registry, nopDiagnoser{}).Open("foo", text); err != nil {
		t.Fatalf("Open: %v", err)
	}
	result, err := symbol.NewHandler(registry, metadata.NewProvider(project)).Symbols("foo")
	if err != nil {
		t.Fatalf("Symbols: %v", err)
	}
	return result
}

func single(t *testing.T, text string) protocol.DocumentSymbol {
	t.Helper()
	result := symbols(t, text)
	if len(result) != 1 {
		t.Fatalf("got %d symbols, want 1", len(result))
	}
	return result[0]
}

func span(line, start, end uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: start},
		End:   protocol.Position{Line: line, Character: end},
	}
}

func check(t *testing.T, s protocol.DocumentSymbol, name string, kind protocol.SymbolKind, r protocol.Range, children int) {
	t.Helper()
	if s.Name != name {
		t.Errorf("name = %q, want %q", s.Name, name)
	}
	if s.Kind != kind {
		t.Errorf("%s kind = %v, want %v", name, s.Kind, kind)
	}
	if s.Range != r {
		t.Errorf("%s range = %+v, want %+v", name, s.Range, r)
	}
	if s.SelectionRange != s.Range {
		t.Errorf("%s selection range = %+v, want %+v", name, s.SelectionRange, s.Range)
	}
	if len(s.Children) != children {
		t.Fatalf("%s has %d children, want %d", name, len(s.Children), children)
	}
}

func TestOneSymbolPerLine(t *testing.T) {
	tests := []struct {
		text     string
		expected int
	}{
		{"", 1},
		{"\n", 2},
		{"@cmd p:{v}\nk: [c]\n#\n;", 4},
	}
	for _, tt := range tests {
		if got := len(symbols(t, tt.text)); got != tt.expected {
			t.Errorf("symbols(%q) = %d, want %d", tt.text, got, tt.expected)
		}
	}
}

func TestRootRangeUsesLineIndex(t *testing.T) {
	result := symbols(t, "\n")
	for i, s := range result {
		if s.Range != span(uint32(i), 0, 0) {
			t.Errorf("symbol %d range = %+v", i, s.Range)
		}
	}
}

func TestEmptyLine(t *testing.T) {
	check(t, single(t, ""), "EmptyLine", protocol.SymbolKindNull, span(0, 0, 0), 0)
}

func TestLabelLine(t *testing.T) {
	s := single(t, "# label")
	check(t, s, "LabelLine", protocol.SymbolKindNamespace, span(0, 0, 7), 1)
	check(t, s.Children[0], "LabelText", protocol.SymbolKindString, span(0, 2, 7), 0)
}

func TestCommentLine(t *testing.T) {
	s := single(t, "; comment")
	check(t, s, "CommentLine", protocol.SymbolKindString, span(0, 0, 9), 1)
	check(t, s.Children[0], "CommentText", protocol.SymbolKindString, span(0, 2, 9), 0)
}

func TestCommandLine(t *testing.T) {
	s := single(t, "@cmd nameless param:{exp}")
	check(t, s, "CommandLine", protocol.SymbolKindStruct, span(0, 0, 25), 1)

	cmd := s.Children[0]
	check(t, cmd, "Command", protocol.SymbolKindFunction, span(0, 1, 25), 3)
	check(t, cmd.Children[0], "CommandIdentifier", protocol.SymbolKindKey, span(0, 1, 4), 0)

	nameless := cmd.Children[1]
	check(t, nameless, "Parameter", protocol.SymbolKindField, span(0, 5, 13), 1)
	check(t, nameless.Children[0], "ParameterValue", protocol.SymbolKindString, span(0, 5, 13), 0)

	named := cmd.Children[2]
	check(t, named, "Parameter", protocol.SymbolKindField, span(0, 14, 25), 2)
	check(t, named.Children[0], "ParameterIdentifier", protocol.SymbolKindKey, span(0, 14, 19), 0)
	check(t, named.Children[1], "ParameterValue", protocol.SymbolKindString, span(0, 20, 25), 1)
	check(t, named.Children[1].Children[0], "Expression", protocol.SymbolKindProperty, span(0, 20, 25), 0)
}

func TestGenericTextLine(t *testing.T) {
	s := single(t, "author.appearance: [cmd] text {exp}")
	check(t, s, "GenericTextLine", protocol.SymbolKindString, span(0, 0, 35), 3)

	prefix := s.Children[0]
	check(t, prefix, "GenericTextPrefix", protocol.SymbolKindConstant, span(0, 0, 18), 2)
	check(t, prefix.Children[0], "GenericTextAuthor", protocol.SymbolKindKey, span(0, 0, 6), 0)
	check(t, prefix.Children[1], "GenericTextAuthorAppearance", protocol.SymbolKindEnum, span(0, 7, 17), 0)

	inlined := s.Children[1]
	check(t, inlined, "InlinedCommand", protocol.SymbolKindStruct, span(0, 19, 24), 1)
	check(t, inlined.Children[0], "Command", protocol.SymbolKindFunction, span(0, 20, 23), 1)
	check(t, inlined.Children[0].Children[0], "CommandIdentifier", protocol.SymbolKindKey, span(0, 20, 23), 0)

	prose := s.Children[2]
	check(t, prose, "GenericText", protocol.SymbolKindString, span(0, 24, 35), 1)
	check(t, prose.Children[0], "Expression", protocol.SymbolKindProperty, span(0, 30, 35), 0)
}

func TestPrefixWithoutAppearance(t *testing.T) {
	s := single(t, "author: text")
	check(t, s.Children[0], "GenericTextPrefix", protocol.SymbolKindConstant, span(0, 0, 7), 1)
	check(t, s.Children[1], "GenericText", protocol.SymbolKindString, span(0, 8, 12), 0)
}

func TestInlinedCommandOnly(t *testing.T) {
	s := single(t, "[i]")
	check(t, s, "GenericTextLine", protocol.SymbolKindString, span(0, 0, 3), 1)
	check(t, s.Children[0], "InlinedCommand", protocol.SymbolKindStruct, span(0, 0, 3), 1)
	check(t, s.Children[0].Children[0], "Command", protocol.SymbolKindFunction, span(0, 1, 2), 1)
	check(t, s.Children[0].Children[0].Children[0], "CommandIdentifier", protocol.SymbolKindKey, span(0, 1, 2), 0)
}

func TestParameterValueKind(t *testing.T) {
	tests := []struct {
		text     string
		expected protocol.SymbolKind
	}{
		{"@c str:x", protocol.SymbolKindString},
		{"@c int:x", protocol.SymbolKindNumber},
		{"@c dec:x", protocol.SymbolKindNumber},
		{"@c bool:true", protocol.SymbolKindBoolean},
		{"@c list:,", protocol.SymbolKindArray},
		{"@c named:.", protocol.SymbolKindArray},
		{"@c single:a.1", protocol.SymbolKindNumber},
		{"@c unknown:1", protocol.SymbolKindString},
		{"@x int:1", protocol.SymbolKindString},
		{"@c str:{}", protocol.SymbolKindString},
		{"@c int:{}", protocol.SymbolKindString},
		{"@c dec:{}", protocol.SymbolKindString},
		{"@c bool:{}", protocol.SymbolKindString},
		{"@c list:{}", protocol.SymbolKindString},
		{"@c named:{}", protocol.SymbolKindString},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			value := single(t, tt.text).Children[0].Children[1].Children[1]
			if value.Name != "ParameterValue" {
				t.Fatalf("symbol = %q, want ParameterValue", value.Name)
			}
			if value.Kind != tt.expected {
				t.Errorf("kind = %v, want %v", value.Kind, tt.expected)
			}
		})
	}
}

func TestSymbolsUnknownDocument(t *testing.T) {
	handler := symbol.NewHandler(document.NewRegistry(), metadata.NewProvider(metadata.Project{}))
	if _, err := handler.Symbols("foo"); !errors.Is(err, document.ErrNotFound) {
		t.Errorf("Symbols error = %v, want ErrNotFound", err)
	}
}

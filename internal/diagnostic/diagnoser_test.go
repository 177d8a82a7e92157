package diagnostic_test

import (
	"errors"
	"testing"

	"github.com/Naninovel/Language/internal/diagnostic"
	"github.com/Naninovel/Language/internal/document"
	"github.com/Naninovel/Language/internal/metadata"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var project = metadata.Project{Commands: []metadata.Command{
	{
		ID: "print",
		Parameters: []metadata.Parameter{
			{ID: "text", Nameless: true, Required: true},
			{ID: "wait", ValueType: metadata.Boolean},
			{ID: "time", Alias: "t", ValueType: metadata.Decimal},
			{ID: "count", ValueType: metadata.Integer},
			{ID: "list", ValueType: metadata.Integer, ValueContainerType: metadata.List},
			{ID: "named", ValueType: metadata.Integer, ValueContainerType: metadata.Named},
			{ID: "nlist", ValueType: metadata.Boolean, ValueContainerType: metadata.NamedList},
		},
	},
	{
		ID:         "char",
		Parameters: []metadata.Parameter{{ID: "id", Label: "ID", Required: true}},
	},
}}

type published struct {
	uri         string
	diagnostics []protocol.Diagnostic
}

type fixture struct {
	handler   *document.Handler
	published []published
}

func newFixture() *fixture {
	f := &fixture{}
	registry := document.NewRegistry()
	diagnoser := diagnostic.NewDiagnoser(registry, metadata.NewProvider(project),
		func(uri string, diagnostics []protocol.Diagnostic) {
			f.published = append(f.published, published{uri, diagnostics})
		})
	f.handler = document.NewHandler(registry, diagnoser)
	return f
}

type expected struct {
	line, start, end uint32
	message          string
}

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []expected
	}{
		{"valid", "@print x wait:true t:1.5 count:-3", nil},
		{"unknown command", "@unknown p:v", []expected{{0, 1, 8, "Command 'unknown' is unknown."}}},
		{"missing required", "@char", []expected{{0, 1, 5, "Required parameter 'ID' is missing."}}},
		{"required by id ignores case", "@char ID:x", nil},
		{"label defaults to id", "@print", []expected{{0, 1, 6, "Required parameter 'text' is missing."}}},
		{"unknown parameter", "@print x foo:1", []expected{{0, 9, 14, "Command 'print' doesn't have 'foo' parameter."}}},
		{"unknown nameless", "@char x", []expected{
			{0, 1, 7, "Required parameter 'ID' is missing."},
			{0, 6, 7, "Command 'char' doesn't have a nameless parameter."},
		}},
		{"invalid boolean", "@print x wait:maybe", []expected{{0, 14, 19, "Invalid value: 'maybe' is not a Boolean."}}},
		{"invalid integer", "@print x count:1.5", []expected{{0, 15, 18, "Invalid value: '1.5' is not a Integer."}}},
		{"invalid decimal by alias", "@print x t:fast", []expected{{0, 11, 15, "Invalid value: 'fast' is not a Decimal."}}},
		{"dynamic value", "@print x wait:{flag} count:{n}", nil},
		{"list skips empty entries", "@print x list:1,,2", nil},
		{"invalid list", "@print x list:1,a", []expected{{0, 14, 17, "Invalid value: '1,a' is not a List<Integer>."}}},
		{"named", "@print x named:foo.5", nil},
		{"named without dot", "@print x named:foo", []expected{{0, 15, 18, "Invalid value: 'foo' is not a Named<Integer>."}}},
		{"named list", "@print x nlist:a.true,b.False", nil},
		{"invalid named list", "@print x nlist:a.true,b", []expected{{0, 15, 23, "Invalid value: 'a.true,b' is not a List<Named<Boolean>>."}}},
		{"quoted integer", `@print x count:"5"`, nil},
		{"quoted boolean", `@print x wait:"true"`, nil},
		{"quoted decimal", `@print x t:"1.5"`, nil},
		{"quoted list", `@print x list:"1, 2",3`, nil},
		{"quoted named list", `@print x nlist:"a.true, b.false"`, nil},
		{"invalid quoted integer", `@print x count:"x"`, []expected{{0, 15, 18, `Invalid value: '"x"' is not a Integer.`}}},
		{"escaped list separator", `@print x list:1\,2`, []expected{{0, 14, 18, `Invalid value: '1\,2' is not a List<Integer>.`}}},
		{"escaped named separator", `@print x named:a\.5`, []expected{{0, 15, 19, `Invalid value: 'a\.5' is not a Named<Integer>.`}}},
		{"decimal exponent", "@print x t:-2.5e3", nil},
		{"decimal nan", "@print x t:NaN", nil},
		{"decimal infinity", "@print x t:-Infinity", nil},
		{"decimal inf", "@print x t:inf", []expected{{0, 11, 14, "Invalid value: 'inf' is not a Decimal."}}},
		{"decimal hex", "@print x t:0x1p3", []expected{{0, 11, 16, "Invalid value: '0x1p3' is not a Decimal."}}},
		{"parse error", "@", []expected{{0, 0, 1, "Missing command identifier."}}},
		{"inlined command", "text [unknown] more", []expected{{0, 6, 13, "Command 'unknown' is unknown."}}},
		{"inlined valid", "text [print x]", nil},
		{"second line", "; comment\n@unknown", []expected{{1, 1, 8, "Command 'unknown' is unknown."}}},
		{"prose is not validated", "author: wait:maybe", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if err := f.handler.Open("foo", tt.text); err != nil {
				t.Fatalf("Open: %v", err)
			}
			if len(f.published) != 1 {
				t.Fatalf("published %d times, want 1", len(f.published))
			}
			got := f.published[0].diagnostics
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d diagnostics %+v, want %d", len(got), got, len(tt.expected))
			}
			for i, want := range tt.expected {
				d := got[i]
				if d.Message != want.message {
					t.Errorf("diagnostic %d message = %q, want %q", i, d.Message, want.message)
				}
				r := protocol.Range{
					Start: protocol.Position{Line: want.line, Character: want.start},
					End:   protocol.Position{Line: want.line, Character: want.end},
				}
				if d.Range != r {
					t.Errorf("diagnostic %d range = %+v, want %+v", i, d.Range, r)
				}
				if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
					t.Errorf("diagnostic %d severity = %v, want error", i, d.Severity)
				}
			}
		})
	}
}

func TestPublishesEmptyBatch(t *testing.T) {
	f := newFixture()
	_ = f.handler.Open("foo", "")
	_ = f.handler.Change("foo", nil)
	if len(f.published) != 2 {
		t.Fatalf("published %d times, want 2", len(f.published))
	}
	for _, p := range f.published {
		if p.uri != "foo" {
			t.Errorf("published uri = %q", p.uri)
		}
		if p.diagnostics == nil || len(p.diagnostics) != 0 {
			t.Errorf("published %#v, want empty non-nil batch", p.diagnostics)
		}
	}
}

func TestDiagnosticsFollowEdits(t *testing.T) {
	f := newFixture()
	_ = f.handler.Open("foo", "@unknown")
	fix := document.Change{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 0, Character: 1},
			End:   protocol.Position{Line: 0, Character: 8},
		},
		Text: "print x",
	}
	if err := f.handler.Change("foo", []document.Change{fix}); err != nil {
		t.Fatalf("Change: %v", err)
	}
	if n := len(f.published[0].diagnostics); n != 1 {
		t.Errorf("before fix: %d diagnostics, want 1", n)
	}
	if n := len(f.published[1].diagnostics); n != 0 {
		t.Errorf("after fix: %d diagnostics, want 0", n)
	}
}

func TestDiagnoseUnknownDocument(t *testing.T) {
	registry := document.NewRegistry()
	diagnoser := diagnostic.NewDiagnoser(registry, metadata.NewProvider(metadata.Project{}),
		func(string, []protocol.Diagnostic) { t.Error("unexpected publish") })
	if err := diagnoser.Diagnose("foo"); !errors.Is(err, document.ErrNotFound) {
		t.Errorf("Diagnose error = %v, want ErrNotFound", err)
	}
}

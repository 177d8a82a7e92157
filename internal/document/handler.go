package document

import (
	"fmt"
	"slices"

	"github.com/Naninovel/Language/internal/script"
	"github.com/Naninovel/Language/internal/text"
	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var log = commonlog.GetLogger("naninovel.document")

// Diagnoser validates a registered document and publishes the result.
type Diagnoser interface {
	Diagnose(uri string) error
}

// Change replaces the text spanned by Range with Text. A nil Range
// replaces the whole document.
type Change struct {
	Range *protocol.Range
	Text  string
}

// Handler owns document lifecycle: it is the only writer of documents in
// its registry.
type Handler struct {
	registry  *Registry
	diagnoser Diagnoser
	parse     script.ParseFunc
}

func NewHandler(registry *Registry, diagnoser Diagnoser) *Handler {
	return &Handler{
		registry:  registry,
		diagnoser: diagnoser,
		parse:     script.ParseLine,
	}
}

// Open parses content, registers the document and diagnoses it.
func (h *Handler) Open(uri string, content string) error {
	doc := newDocument(content, h.parse)
	if err := h.registry.Add(uri, doc); err != nil {
		return err
	}
	log.Debugf("opened %s with %d lines", uri, doc.LineCount())
	return h.diagnoser.Diagnose(uri)
}

func (h *Handler) Close(uri string) error {
	if err := h.registry.Remove(uri); err != nil {
		return err
	}
	log.Debugf("closed %s", uri)
	return nil
}

// Change applies changes in order, each against the result of the
// previous one. Either all changes are applied or none is. The document
// is diagnosed once afterwards, even when changes is empty.
func (h *Handler) Change(uri string, changes []Change) error {
	doc, err := h.registry.Get(uri)
	if err != nil {
		return err
	}
	lines := doc.lines
	for i, change := range changes {
		if lines, err = h.apply(lines, change); err != nil {
			return fmt.Errorf("applying change %d to %s: %w", i, uri, err)
		}
	}
	doc.lines = lines
	return h.diagnoser.Diagnose(uri)
}

// Replace swaps the whole content of an open document.
func (h *Handler) Replace(uri string, content string) error {
	return h.Change(uri, []Change{{Text: content}})
}

// apply returns a new line slice with change applied; lines is left intact.
func (h *Handler) apply(lines []Line, change Change) ([]Line, error) {
	if change.Range == nil {
		return parseLines(text.SplitLines(change.Text), h.parse), nil
	}
	start, end := change.Range.Start, change.Range.End
	if int(start.Line) >= len(lines) || int(end.Line) >= len(lines) ||
		start.Line > end.Line || (start.Line == end.Line && start.Character > end.Character) {
		return nil, invalidRange(*change.Range)
	}

	head := lines[start.Line].Text
	tail := lines[end.Line].Text
	headEnd, ok := text.ByteOffset(head, int(start.Character))
	if !ok {
		return nil, invalidRange(*change.Range)
	}
	tailStart, ok := text.ByteOffset(tail, int(end.Character))
	if !ok {
		return nil, invalidRange(*change.Range)
	}

	replaced := parseLines(text.SplitLines(head[:headEnd]+change.Text+tail[tailStart:]), h.parse)
	return slices.Concat(lines[:start.Line], replaced, lines[end.Line+1:]), nil
}

func invalidRange(r protocol.Range) error {
	return fmt.Errorf("%w: %d:%d-%d:%d", ErrInvalidRange,
		r.Start.Line, r.Start.Character, r.End.Line, r.End.Character)
}

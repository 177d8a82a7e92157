// Package folding groups runs of adjacent comment and command lines into
// collapsible regions.
package folding

import (
	"github.com/Naninovel/Language/internal/document"
	"github.com/Naninovel/Language/internal/script"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type Handler struct {
	registry *document.Registry
}

func NewHandler(registry *document.Registry) *Handler {
	return &Handler{registry: registry}
}

// FoldingRanges returns the regions in document order. An isolated
// foldable line yields a single-line region.
func (h *Handler) FoldingRanges(uri string) ([]protocol.FoldingRange, error) {
	doc, err := h.registry.Get(uri)
	if err != nil {
		return nil, err
	}
	ranges := []protocol.FoldingRange{}
	var current *protocol.FoldingRange
	for i, line := range doc.Lines() {
		if !foldable(line.Script) {
			continue
		}
		index := uint32(i)
		if current != nil && index == current.EndLine+1 {
			current.EndLine = index
			continue
		}
		if current != nil {
			ranges = append(ranges, *current)
		}
		current = &protocol.FoldingRange{StartLine: index, EndLine: index}
	}
	if current != nil {
		ranges = append(ranges, *current)
	}
	return ranges, nil
}

func foldable(line script.Line) bool {
	switch line.Kind() {
	case script.KindComment, script.KindCommand:
		return true
	default:
		return false
	}
}

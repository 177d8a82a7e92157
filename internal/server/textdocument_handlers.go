package server

import (
	"fmt"

	"github.com/Naninovel/Language/internal/document"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documents.Open(params.TextDocument.URI, params.TextDocument.Text)
}

func (s *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	changes := make([]document.Change, 0, len(params.ContentChanges))
	for _, raw := range params.ContentChanges {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEvent:
			changes = append(changes, document.Change{Range: change.Range, Text: change.Text})
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, document.Change{Text: change.Text})
		default:
			return fmt.Errorf("unexpected change event type %T", raw)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documents.Change(params.TextDocument.URI, changes)
}

func (s *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	uri := params.TextDocument.URI
	if err := s.documents.Close(uri); err != nil {
		return err
	}
	s.publish(uri, []protocol.Diagnostic{})
	return nil
}

func (s *Server) textDocumentHover(
	context *glsp.Context,
	params *protocol.HoverParams,
) (*protocol.Hover, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hover.Hover(params.TextDocument.URI, params.Position)
}

func (s *Server) textDocumentDocumentSymbol(
	context *glsp.Context,
	params *protocol.DocumentSymbolParams,
) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.symbols.Symbols(params.TextDocument.URI)
}

func (s *Server) textDocumentFoldingRange(
	context *glsp.Context,
	params *protocol.FoldingRangeParams,
) ([]protocol.FoldingRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.folding.FoldingRanges(params.TextDocument.URI)
}

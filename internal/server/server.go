// Package server wires the document engine and its projections to the
// language server protocol.
package server

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/Naninovel/Language/internal/config"
	"github.com/Naninovel/Language/internal/diagnostic"
	"github.com/Naninovel/Language/internal/document"
	"github.com/Naninovel/Language/internal/folding"
	"github.com/Naninovel/Language/internal/hover"
	"github.com/Naninovel/Language/internal/metadata"
	"github.com/Naninovel/Language/internal/scheduler"
	"github.com/Naninovel/Language/internal/symbol"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"
)

var log = commonlog.GetLogger("naninovel.server")

const (
	Name = "naninovel-lsp"

	// MethodUpdateMetadata is a client notification carrying a complete
	// metadata.Project that replaces the current schema.
	MethodUpdateMetadata = "naninovel/updateMetadata"

	// CommandReloadMetadata re-reads the configured metadata file.
	CommandReloadMetadata = "naninovel.reloadMetadata"
)

// Server handles one client connection. Requests are processed one at a
// time.
type Server struct {
	mu      sync.Mutex
	version string
	handler *protocol.Handler
	config  config.Config
	notify  glsp.NotifyFunc

	registry  *document.Registry
	provider  *metadata.Provider
	documents *document.Handler
	diagnoser *diagnostic.Diagnoser
	hover     *hover.Handler
	symbols   *symbol.Handler
	folding   *folding.Handler

	scheduler *scheduler.Scheduler
	watcher   *metadata.Watcher
}

// New returns a server with an empty schema and default configuration.
func New(version string) *Server {
	s := &Server{
		version:   version,
		config:    config.Default(),
		notify:    func(string, any) {},
		registry:  document.NewRegistry(),
		provider:  metadata.NewProvider(metadata.Project{}),
		scheduler: scheduler.NewScheduler(16),
	}
	s.diagnoser = diagnostic.NewDiagnoser(s.registry, s.provider, s.publish)
	s.documents = document.NewHandler(s.registry, s.diagnoser)
	s.hover = hover.NewHandler(s.registry, s.provider)
	s.symbols = symbol.NewHandler(s.registry, s.provider)
	s.folding = folding.NewHandler(s.registry)
	s.handler = &protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentHover:          s.textDocumentHover,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
		TextDocumentFoldingRange:   s.textDocumentFoldingRange,
		WorkspaceExecuteCommand:    s.workspaceExecuteCommand,
	}
	s.scheduler.Run()
	return s
}

// NewServer returns a glsp server speaking for a new Server.
func NewServer(version string) *glspserver.Server {
	return glspserver.NewServer(New(version), Name, false)
}

// Handle implements glsp.Handler, adding the custom metadata notification
// to the standard protocol methods.
func (s *Server) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	if context.Method != MethodUpdateMetadata {
		return s.handler.Handle(context)
	}
	if !s.handler.IsInitialized() {
		return nil, true, true, errors.New("server not initialized")
	}
	var project metadata.Project
	if err := json.Unmarshal(context.Params, &project); err != nil {
		return nil, true, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyMetadata(project)
	return nil, true, true, nil
}

func (s *Server) publish(uri string, diagnostics []protocol.Diagnostic) {
	s.notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

package server

import (
	"github.com/Naninovel/Language/internal/config"
	"github.com/Naninovel/Language/internal/resolver"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notify = context.Notify

	cfg, err := config.Load(params.InitializationOptions)
	if err != nil {
		return nil, err
	}
	if root, ok := rootPath(params); ok {
		cfg.Root = root
	}
	s.config = cfg
	log.Infof("config: %+v", cfg)

	if err := s.loadMetadata(); err != nil {
		log.Warningf("metadata not loaded: %s", err)
	}
	if cfg.WatchMetadata {
		s.watchMetadata()
	}

	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{CommandReloadMetadata},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &s.version,
		},
	}, nil
}

// rootPath returns the workspace root announced by the client, if any.
func rootPath(params *protocol.InitializeParams) (string, bool) {
	if params.RootURI != nil && *params.RootURI != "" {
		r, err := resolver.FromURI(*params.RootURI)
		if err != nil {
			log.Warningf("ignoring root uri: %s", err)
			return "", false
		}
		return r.Root(), true
	}
	if params.RootPath != nil && *params.RootPath != "" {
		return *params.RootPath, true
	}
	return "", false
}

func (s *Server) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	log.Info("client initialized")
	return nil
}

func (s *Server) shutdown(context *glsp.Context) error {
	s.mu.Lock()
	watcher := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if watcher != nil {
		if err := watcher.Close(); err != nil {
			log.Errorf("closing metadata watcher: %s", err)
		}
	}
	s.scheduler.Stop()
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

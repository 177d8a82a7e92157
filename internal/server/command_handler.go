package server

import (
	"fmt"

	"github.com/Naninovel/Language/internal/metadata"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) workspaceExecuteCommand(
	context *glsp.Context,
	params *protocol.ExecuteCommandParams,
) (any, error) {
	switch params.Command {
	case CommandReloadMetadata:
		s.mu.Lock()
		defer s.mu.Unlock()
		return nil, s.loadMetadata()
	default:
		return nil, fmt.Errorf("unknown command %q", params.Command)
	}
}

// loadMetadata reads the configured metadata file into the provider.
func (s *Server) loadMetadata() error {
	path := s.config.ResolveMetadataPath()
	if path == "" {
		return nil
	}
	project, err := metadata.LoadFile(path)
	if err != nil {
		return err
	}
	s.applyMetadata(project)
	return nil
}

func (s *Server) watchMetadata() {
	path := s.config.ResolveMetadataPath()
	if path == "" || s.watcher != nil {
		return
	}
	watcher, err := metadata.Watch(path, s.scheduler, func(project metadata.Project) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.applyMetadata(project)
	})
	if err != nil {
		log.Warningf("metadata changes will not be tracked: %s", err)
		return
	}
	s.watcher = watcher
}

// applyMetadata swaps the schema and re-diagnoses every open document.
// Callers hold s.mu.
func (s *Server) applyMetadata(project metadata.Project) {
	s.provider.Update(project)
	log.Infof("metadata updated: %d commands", s.provider.Len())
	for _, uri := range s.registry.URIs() {
		if err := s.diagnoser.Diagnose(uri); err != nil {
			log.Errorf("diagnosing %s: %s", uri, err)
		}
	}
}

// Package scanner collects the script files of a workspace.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Naninovel/Language/internal/config"
	"github.com/Naninovel/Language/internal/resolver"
	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var log = commonlog.GetLogger("naninovel.scanner")

// Script is a workspace file with one of the configured script extensions.
type Script struct {
	Path     string // absolute
	Relative string // slash separated, relative to the workspace root
	URI      protocol.DocumentUri
	Content  []byte
}

type Scanner struct {
	resolver *resolver.Resolver
	config   config.Config
}

// New returns a scanner for the workspace rooted at cfg.Root.
func New(cfg config.Config) (*Scanner, error) {
	res, err := resolver.New(cfg.Root)
	if err != nil {
		return nil, err
	}
	return &Scanner{resolver: res, config: cfg}, nil
}

func (s *Scanner) Root() string {
	return s.resolver.Root()
}

// Scan walks the workspace and passes every script to callback, one at a
// time in walk order. Hidden directories below the root are skipped and
// unreadable entries are logged. Files are read on a separate goroutine
// while the walk continues. Scan returns the number of scripts delivered
// once every callback has completed.
func (s *Scanner) Scan(callback func(Script)) (int, error) {
	paths := make(chan string, 100)
	var wg sync.WaitGroup
	delivered := 0

	wg.Add(1)
	go func() {
		defer wg.Done()
		for path := range paths {
			script, err := s.load(path)
			if err != nil {
				log.Errorf("%s", err)
				continue
			}
			callback(script)
			delivered++
		}
	}()

	root := s.resolver.Root()
	log.Debugf("scanning %q", root)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil && path == root:
			return err
		case err != nil:
			log.Warningf("walk error: %s", err)
			return nil
		case d.IsDir() && path != root && resolver.IgnoreDir(path):
			log.Debugf("skipping %q", path)
			return fs.SkipDir
		case d.IsDir() || !d.Type().IsRegular():
			return nil
		case s.config.IsScript(path):
			paths <- path
		}
		return nil
	})

	close(paths)
	wg.Wait()
	if err != nil {
		return delivered, fmt.Errorf("scanning %s: %w", root, err)
	}
	return delivered, nil
}

func (s *Scanner) load(path string) (Script, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("reading script: %w", err)
	}
	relative, err := s.resolver.Relative(path)
	if err != nil {
		relative = path
	}
	return Script{
		Path:     path,
		Relative: filepath.ToSlash(relative),
		URI:      resolver.URIFromPath(path),
		Content:  content,
	}, nil
}

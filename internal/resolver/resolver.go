// Package resolver converts between workspace paths and document URIs.
package resolver

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

type Resolver struct {
	root string
}

// New returns a resolver for paths below root.
func New(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}
	return &Resolver{root: abs}, nil
}

// FromURI builds a resolver rooted at the directory named by a file URI.
func FromURI(uri protocol.DocumentUri) (*Resolver, error) {
	path, err := PathFromURI(uri)
	if err != nil {
		return nil, err
	}
	return New(path)
}

func (r *Resolver) Root() string {
	return r.root
}

// Resolve returns path as an absolute path, joining it with the root when
// relative.
func (r *Resolver) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(r.root, path)
}

// Relative returns path relative to the root.
func (r *Resolver) Relative(path string) (string, error) {
	return filepath.Rel(r.root, r.Resolve(path))
}

// PathFromURI returns the local path of a file URI.
func PathFromURI(uri protocol.DocumentUri) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("failed to parse uri: %w", err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported uri scheme %q in %s", u.Scheme, uri)
	}
	path := u.Path
	// file:///C:/dir
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

// URIFromPath returns the file URI of an absolute path.
func URIFromPath(path string) protocol.DocumentUri {
	slashed := filepath.ToSlash(filepath.Clean(path))
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	u := url.URL{Scheme: "file", Path: slashed}
	return u.String()
}

// IgnoreDir reports whether a directory is hidden and must not be scanned.
func IgnoreDir(path string) bool {
	base := filepath.Base(path)
	return len(base) > 1 && strings.HasPrefix(base, ".") && base != ".."
}

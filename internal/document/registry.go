package document

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrDuplicateKey is returned when a document is registered twice.
	ErrDuplicateKey = errors.New("document already registered")

	// ErrNotFound is returned for identifiers that are not registered.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidRange is returned when a change addresses text outside the document.
	ErrInvalidRange = errors.New("change range out of bounds")
)

// Registry maps document URIs to their live documents.
type Registry struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewRegistry() *Registry {
	return &Registry{docs: make(map[string]*Document)}
}

func (r *Registry) Add(uri string, doc *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[uri]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, uri)
	}
	r.docs[uri] = doc
	return nil
}

func (r *Registry) Get(uri string) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uri)
	}
	return doc, nil
}

func (r *Registry) Remove(uri string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[uri]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, uri)
	}
	delete(r.docs, uri)
	return nil
}

func (r *Registry) Contains(uri string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.docs[uri]
	return ok
}

// URIs returns the registered identifiers in sorted order.
func (r *Registry) URIs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	uris := make([]string, 0, len(r.docs))
	for uri := range r.docs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

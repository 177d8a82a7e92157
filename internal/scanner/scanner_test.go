package scanner_test

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Naninovel/Language/internal/config"
	"github.com/Naninovel/Language/internal/resolver"
	"github.com/Naninovel/Language/internal/scanner"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newScanner(t *testing.T, root string, extensions ...string) *scanner.Scanner {
	t.Helper()
	cfg := config.Default()
	cfg.Root = root
	if len(extensions) > 0 {
		cfg.FileExtensions = extensions
	}
	s, err := scanner.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.nani"), "a")
	write(t, filepath.Join(root, "sub", "b.NANI"), "b")
	write(t, filepath.Join(root, "sub", "c.txt"), "c")
	write(t, filepath.Join(root, ".hidden", "d.nani"), "d")

	var got []string
	n, err := newScanner(t, root).Scan(func(s scanner.Script) {
		got = append(got, s.Relative+"="+string(s.Content))
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	slices.Sort(got)
	if !slices.Equal(got, []string{"a.nani=a", "sub/b.NANI=b"}) {
		t.Errorf("scanned %v", got)
	}
	if n != 2 {
		t.Errorf("Scan returned %d, want 2", n)
	}
}

func TestScanBuildsURIs(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "dir with space", "main.nani")
	write(t, path, "@print")

	var scripts []scanner.Script
	if _, err := newScanner(t, root).Scan(func(s scanner.Script) { scripts = append(scripts, s) }); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(scripts) != 1 {
		t.Fatalf("scanned %d scripts, want 1", len(scripts))
	}
	s := scripts[0]
	if !strings.HasPrefix(s.URI, "file://") || !strings.Contains(s.URI, "dir%20with%20space") {
		t.Errorf("URI = %q", s.URI)
	}
	back, err := resolver.PathFromURI(s.URI)
	if err != nil || back != s.Path {
		t.Errorf("PathFromURI(%q) = %q, %v, want %q", s.URI, back, err, s.Path)
	}
}

func TestScanConfiguredExtensions(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.nani"), "a")
	write(t, filepath.Join(root, "b.txt"), "b")

	var got []string
	if _, err := newScanner(t, root, ".txt").Scan(func(s scanner.Script) { got = append(got, s.Relative) }); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !slices.Equal(got, []string{"b.txt"}) {
		t.Errorf("scanned %v", got)
	}
}

func TestScanMissingRoot(t *testing.T) {
	s := newScanner(t, filepath.Join(t.TempDir(), "missing"))
	if _, err := s.Scan(func(scanner.Script) { t.Error("unexpected callback") }); err == nil {
		t.Error("expected error for missing root")
	}
}

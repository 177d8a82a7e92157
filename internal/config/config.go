// Package config holds the server settings supplied by the client or a
// configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
)

type Config struct {
	// MetadataPath points to the command schema, relative to Root unless absolute.
	MetadataPath   string   `json:"metadata_path"`
	WatchMetadata  bool     `json:"watch_metadata"`
	FileExtensions []string `json:"file_extensions"`
	Root           string   `json:"root"`
}

var defaultConfig = Config{
	MetadataPath:   ".nani/metadata.json",
	WatchMetadata:  true,
	FileExtensions: []string{".nani"},
	Root:           ".",
}

// Default returns a copy of the default configuration.
func Default() Config {
	cfg := defaultConfig
	cfg.FileExtensions = slices.Clone(defaultConfig.FileExtensions)
	return cfg
}

// Load overlays v, typically the LSP initializationOptions, on the defaults.
func Load(v any) (Config, error) {
	cfg := Default()
	if v == nil {
		return cfg, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return Config{}, fmt.Errorf("failed to marshal source: %w", err)
	}

	// only fields present in src will overwrite.
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal into Config: %w", err)
	}

	return cfg, nil
}

// LoadFromJSON reads JSON from r into a Config.
func LoadFromJSON(r io.Reader) (Config, error) {
	cfg := Default()

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ResolveMetadataPath returns MetadataPath joined with Root when relative.
// It returns "" when no metadata path is configured.
func (c Config) ResolveMetadataPath() string {
	if c.MetadataPath == "" {
		return ""
	}
	if filepath.IsAbs(c.MetadataPath) {
		return filepath.Clean(c.MetadataPath)
	}
	return filepath.Join(c.Root, c.MetadataPath)
}

// IsScript reports whether path has one of the configured extensions.
func (c Config) IsScript(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.FileExtensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

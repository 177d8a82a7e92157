package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for metadata files with an unknown extension.
var ErrUnsupportedFormat = errors.New("metadata: unsupported file format")

// LoadFile reads a project schema from a JSON, YAML or TOML file,
// chosen by extension.
func LoadFile(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("reading metadata %s: %w", path, err)
	}
	project, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return Project{}, fmt.Errorf("decoding metadata %s: %w", path, err)
	}
	return project, nil
}

// Decode parses data in the format named by ext (".json", ".yaml",
// ".yml" or ".toml").
func Decode(data []byte, ext string) (Project, error) {
	var project Project
	var err error
	switch strings.ToLower(ext) {
	case ".json":
		err = json.Unmarshal(data, &project)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &project)
	case ".toml":
		err = toml.Unmarshal(data, &project)
	default:
		return Project{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Project{}, err
	}
	return project, nil
}

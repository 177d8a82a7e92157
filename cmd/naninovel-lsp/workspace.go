package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Naninovel/Language/internal/config"
	"github.com/Naninovel/Language/internal/metadata"
	"github.com/spf13/cobra"
)

// workspaceFlags are shared by the offline commands.
type workspaceFlags struct {
	configPath   string
	metadataPath string
}

func (f *workspaceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "JSON configuration file")
	cmd.Flags().StringVarP(&f.metadataPath, "metadata", "m", "", "metadata file (overrides the configuration)")
}

// load returns the configuration rooted at root and the schema it names.
// A missing metadata file yields an empty schema.
func (f *workspaceFlags) load(root string) (config.Config, *metadata.Provider, error) {
	cfg := config.Default()
	if f.configPath != "" {
		file, err := os.Open(f.configPath)
		if err != nil {
			return cfg, nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if cfg, err = config.LoadFromJSON(file); err != nil {
			return cfg, nil, fmt.Errorf("read config %s: %w", f.configPath, err)
		}
	}
	cfg.Root = root
	if f.metadataPath != "" {
		cfg.MetadataPath = f.metadataPath
	}

	project, err := metadata.LoadFile(cfg.ResolveMetadataPath())
	switch {
	case err == nil:
	case f.metadataPath == "" && errors.Is(err, fs.ErrNotExist):
		log.Warningf("no metadata at %s, all commands will be reported as unknown", cfg.ResolveMetadataPath())
	default:
		return cfg, nil, err
	}
	return cfg, metadata.NewProvider(project), nil
}

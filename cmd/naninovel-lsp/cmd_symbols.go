package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Naninovel/Language/internal/document"
	"github.com/Naninovel/Language/internal/folding"
	"github.com/Naninovel/Language/internal/resolver"
	"github.com/Naninovel/Language/internal/symbol"
	"github.com/spf13/cobra"
)

type nopDiagnoser struct{}

func (nopDiagnoser) Diagnose(string) error { return nil }

func newSymbolsCmd() *cobra.Command {
	var (
		flags       workspaceFlags
		foldingFlag bool
		compactFlag bool
	)

	cmd := &cobra.Command{
		Use:   "symbols <file>",
		Short: "Print the document outline of a script as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			_, provider, err := flags.load(filepath.Dir(path))
			if err != nil {
				return err
			}

			registry := document.NewRegistry()
			uri := resolver.URIFromPath(path)
			if err := document.NewHandler(registry, nopDiagnoser{}).Open(uri, string(content)); err != nil {
				return err
			}

			var result any
			if foldingFlag {
				result, err = folding.NewHandler(registry).FoldingRanges(uri)
			} else {
				result, err = symbol.NewHandler(registry, provider).Symbols(uri)
			}
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			if !compactFlag {
				encoder.SetIndent("", "  ")
			}
			return encoder.Encode(result)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&foldingFlag, "folding", false, "print folding ranges instead of symbols")
	cmd.Flags().BoolVar(&compactFlag, "compact", false, "print compact JSON")

	return cmd
}

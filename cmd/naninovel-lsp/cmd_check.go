package main

import (
	"fmt"
	"path/filepath"

	"github.com/Naninovel/Language/internal/diagnostic"
	"github.com/Naninovel/Language/internal/document"
	"github.com/Naninovel/Language/internal/scanner"
	"github.com/spf13/cobra"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func newCheckCmd() *cobra.Command {
	var flags workspaceFlags

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Report diagnostics for every script under a directory",
		Long: `Diagnose every script file under dir (default: the current directory)
and print one line per problem as path:line:column: severity: message.

The command exits with a non-zero status when any problem was found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			abs, err := filepath.Abs(root)
			if err != nil {
				return err
			}
			cfg, provider, err := flags.load(abs)
			if err != nil {
				return err
			}
			scan, err := scanner.New(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			problems := 0
			relative := map[string]string{}
			registry := document.NewRegistry()
			diagnoser := diagnostic.NewDiagnoser(registry, provider, func(uri string, diagnostics []protocol.Diagnostic) {
				for _, d := range diagnostics {
					fmt.Fprintf(out, "%s:%d:%d: %s: %s\n", relative[uri],
						d.Range.Start.Line+1, d.Range.Start.Character+1, severity(d), d.Message)
				}
				problems += len(diagnostics)
			})
			documents := document.NewHandler(registry, diagnoser)
			files, err := scan.Scan(func(script scanner.Script) {
				relative[script.URI] = script.Relative
				if err := documents.Open(script.URI, string(script.Content)); err != nil {
					log.Errorf("%s: %s", script.Relative, err)
				}
				if err := documents.Close(script.URI); err != nil {
					log.Errorf("%s: %s", script.Relative, err)
				}
			})
			if err != nil {
				return err
			}
			log.Infof("checked %d files", files)
			if problems > 0 {
				return fmt.Errorf("%d problem(s) found in %d file(s)", problems, files)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func severity(d protocol.Diagnostic) string {
	if d.Severity == nil {
		return "error"
	}
	switch *d.Severity {
	case protocol.DiagnosticSeverityWarning:
		return "warning"
	case protocol.DiagnosticSeverityInformation:
		return "info"
	case protocol.DiagnosticSeverityHint:
		return "hint"
	default:
		return "error"
	}
}

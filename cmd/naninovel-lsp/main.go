package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("naninovel.cli")

// Version will be set during the build process using ldflags
var Version = "(dev) v0.0.0"

func main() {
	var (
		logfile   string
		verbosity int
	)

	rootCmd := &cobra.Command{
		Use:          "naninovel-lsp",
		Short:        "Language server for Naninovel scripts",
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if logfile != "" {
				path = &logfile
			}
			commonlog.Configure(verbosity, path)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "path to log file (defaults to stderr)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newSymbolsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

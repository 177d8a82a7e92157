package main

import (
	"github.com/Naninovel/Language/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		tcp       string
		websocket string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the language server (stdio unless an address is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := server.NewServer(Version)
			switch {
			case tcp != "":
				return s.RunTCP(tcp)
			case websocket != "":
				return s.RunWebSocket(websocket)
			default:
				return s.RunStdio()
			}
		},
	}

	cmd.Flags().StringVar(&tcp, "tcp", "", "listen for a client on this TCP address")
	cmd.Flags().StringVar(&websocket, "websocket", "", "listen for a client on this WebSocket address")

	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/kipaco/lsp"
)

func newLSPCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(s.registry, version)
			return server.RunStdio()
		},
	}
}

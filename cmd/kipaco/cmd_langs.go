package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLangsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List the known languages and their file extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, l := range s.registry.Languages() {
				fmt.Fprintf(out, "%-6s %s\n", l.Name, strings.Join(l.Extensions, " "))
			}
			return nil
		},
	}
}

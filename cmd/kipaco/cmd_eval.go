package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/kipaco/lang/calc"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an integer arithmetic expression",
		Long: `Evaluate an expression of the calc language. Arguments are joined with
spaces, so the expression need not be quoted.

Examples:
  kipaco eval '2 * (3 + 4)'
  kipaco eval -- -5 % 3`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := calc.Eval(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

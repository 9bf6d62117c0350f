package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/kipaco/ebnfdoc"
	"github.com/dhamidi/kipaco/lang"
)

func newEbnfCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ebnf",
		Short: "EBNF grammar documentation tools",
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfShowCmd(s))
	cmd.AddCommand(newEbnfMatchCmd(s))

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Parse and verify an EBNF grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}

			if _, err := ebnfdoc.Check(filename, string(data), startProduction); err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newEbnfShowCmd(s *session) *cobra.Command {
	var productions bool

	cmd := &cobra.Command{
		Use:          "show <lang>",
		Short:        "Print the EBNF description of a language",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := lookupLanguage(s.registry, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !productions {
				fmt.Fprint(out, l.Grammar)
				return nil
			}

			g, err := ebnfdoc.Parse(l.Name, l.Grammar)
			if err != nil {
				return err
			}
			for _, p := range ebnfdoc.Productions(g) {
				kind := "syntax"
				if p.Lexical {
					kind = "lexical"
				}
				marker := " "
				if p.Name == l.Start {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-12s %-7s line %d\n", marker, p.Name, kind, p.Position.Line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&productions, "productions", "p", false, "list productions instead of the grammar text")

	return cmd
}

func newEbnfMatchCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "match <lang> <production> <text>",
		Short: "Check text against a production of a language's EBNF description",
		Long: `Check whether a production of a language's EBNF description matches all of
the given text. Useful to compare the documentation with the parser.

Examples:
  kipaco ebnf match json number -12.5e3
  kipaco ebnf match conf integer +42`,
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := lookupLanguage(s.registry, args[0])
			if err != nil {
				return err
			}
			g, err := ebnfdoc.Parse(l.Name, l.Grammar)
			if err != nil {
				return err
			}
			production, text := args[1], args[2]
			if _, ok := g[production]; !ok {
				return fmt.Errorf("%s has no production %s", l.Name, production)
			}

			n, ok := ebnfdoc.NewMatcher(g, text).Match(production)
			switch {
			case !ok:
				return fmt.Errorf("%s does not match %q", production, text)
			case n < len(text):
				return fmt.Errorf("%s matches only %q of %q", production, text[:n], text)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s matches %q\n", production, text)
			return nil
		},
	}
}

func lookupLanguage(reg *lang.Registry, name string) (lang.Language, error) {
	l, ok := reg.Lookup(name)
	if !ok {
		return lang.Language{}, fmt.Errorf("unknown language: %s", name)
	}
	return l, nil
}

func printErrors(w io.Writer, err error) {
	for _, e := range ebnfdoc.Errors(err) {
		fmt.Fprintln(w, e)
	}
}

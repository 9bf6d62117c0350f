package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/kipaco/format"
	"github.com/dhamidi/kipaco/lang"
	"github.com/dhamidi/kipaco/parse"
)

func newParseCmd(s *session) *cobra.Command {
	var langName string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and print the result",
		Long: `Parse a file with the language registered for its extension and print
the parsed value.

Use - to read standard input; --lang is then required.

Examples:
  kipaco parse data.json
  kipaco parse --format yaml settings.toml
  echo '1 + 2' | kipaco parse --lang calc -
  kipaco parse --trace expr.calc`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			l, err := chooseLanguage(s.registry, filename, langName)
			if err != nil {
				return err
			}

			src, err := readSource(cmd.InOrStdin(), filename)
			if err != nil {
				return err
			}

			value, err := l.Parse(filename, src)
			if err != nil {
				printParseError(cmd.ErrOrStderr(), err)
				return fmt.Errorf("parse %s: syntax error", filename)
			}

			doc := format.Document{Language: l.Name, Value: value}
			if filename != "-" {
				doc.File = filename
			}
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&langName, "lang", "l", "", "language name (default: from the file extension)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, yaml, lines)")
	cmd.Flags().Bool("trace", false, "log every parser attempt")

	return cmd
}

func chooseLanguage(reg *lang.Registry, filename, name string) (lang.Language, error) {
	if name != "" {
		return lookupLanguage(reg, name)
	}
	l, ok := reg.ForFile(filename)
	if !ok {
		return lang.Language{}, fmt.Errorf("no language for %s (use --lang)", filename)
	}
	return l, nil
}

func readSource(stdin io.Reader, filename string) (string, error) {
	var data []byte
	var err error
	if filename == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	return string(data), nil
}

// printParseError prints err with the offending source line when it is a
// syntax error.
func printParseError(w io.Writer, err error) {
	fmt.Fprintln(w, err)
	var perr *parse.Error
	if errors.As(err, &perr) {
		fmt.Fprintln(w, parse.Snippet(perr))
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/kipaco/format"
	"github.com/dhamidi/kipaco/workspace"
)

func newCheckCmd(s *session) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Report syntax errors in files and directories",
		Long: `Parse every given file, and every file below the given directories whose
extension belongs to a language, and report the syntax errors.

The command fails when any file has an error.

Examples:
  kipaco check a.json b.calc
  kipaco check --format json ./configs`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat != "text" && !format.Valid(outputFormat) {
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			var files []*workspace.File
			for _, path := range args {
				info, err := os.Stat(path)
				if err != nil {
					return fmt.Errorf("stat %s: %w", path, err)
				}
				ws := workspace.New(path, s.registry)
				if info.IsDir() {
					scanned, err := ws.ScanAll()
					if err != nil {
						return fmt.Errorf("scan %s: %w", path, err)
					}
					files = append(files, scanned...)
					continue
				}
				if _, ok := s.registry.ForFile(path); !ok {
					return fmt.Errorf("no language for %s", path)
				}
				f, err := ws.ScanFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				files = append(files, f)
			}

			diagnostics := []format.Diagnostic{}
			for _, f := range files {
				if f.ParseErr != nil {
					diagnostics = append(diagnostics, format.NewDiagnostic(f.Path, f.ParseErr))
				}
			}

			out := cmd.OutOrStdout()
			if outputFormat == "text" {
				for _, d := range diagnostics {
					fmt.Fprintf(out, "%s:%d:%d: %s\n", d.File, d.Line, d.Column, d.Message)
				}
			} else {
				enc, err := format.NewEncoder(outputFormat, out)
				if err != nil {
					return err
				}
				if err := enc.Encode(diagnostics); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			}

			if len(diagnostics) > 0 {
				return fmt.Errorf("%d of %d files have syntax errors", len(diagnostics), len(files))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, yaml, lines)")

	return cmd
}

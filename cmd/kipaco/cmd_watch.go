package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/kipaco/watch"
	"github.com/dhamidi/kipaco/workspace"
)

func newWatchCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Re-parse files as they change and report syntax errors",
		Long: `Parse every file below a directory whose extension belongs to a language,
then keep watching and report each file again when it changes.

Stop with Ctrl-C.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("stat %s: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			w := watch.New(workspace.New(dir, s.registry), func(r watch.Report) {
				switch {
				case r.Removed:
					fmt.Fprintf(out, "removed %s\n", r.Path)
				case r.Err != nil:
					fmt.Fprintf(out, "error   %s\n", r.Err)
				default:
					fmt.Fprintf(out, "ok      %s\n", r.Path)
				}
			})
			return w.Run(ctx)
		},
	}
}

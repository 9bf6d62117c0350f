package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/kipaco/config"
	"github.com/dhamidi/kipaco/lang"
	"github.com/dhamidi/kipaco/parse"
)

const version = "0.1.0"

var log = commonlog.GetLogger("kipaco.cli")

// session holds what the commands share once flags are parsed.
type session struct {
	config   *config.Config
	registry *lang.Registry
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var verbose int
	s := &session{}

	rootCmd := &cobra.Command{
		Use:     "kipaco",
		Short:   "Parse, check and watch files with parser combinator grammars",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			trace, _ := cmd.Flags().GetBool("trace")
			return s.setup(configPath, verbose, trace)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "configuration file")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(newParseCmd(s))
	rootCmd.AddCommand(newCheckCmd(s))
	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newWatchCmd(s))
	rootCmd.AddCommand(newLSPCmd(s))
	rootCmd.AddCommand(newLangsCmd(s))
	rootCmd.AddCommand(newEbnfCmd(s))
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// setup loads the configuration, configures logging and builds the registry.
func (s *session) setup(configPath string, verbose int, trace bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	verbosity := max(cfg.Log.Verbosity, verbose)
	trace = trace || cfg.Trace
	if trace {
		// trace output is logged at debug level
		verbosity = max(verbosity, 2)
	}
	var logFile *string
	if cfg.Log.File != "" {
		logFile = &cfg.Log.File
	}
	commonlog.Configure(verbosity, logFile)
	parse.SetTracing(trace)

	reg := lang.Default()
	if err := cfg.Apply(reg); err != nil {
		return err
	}

	s.config = cfg
	s.registry = reg
	log.Debugf("loaded %s (verbosity %d, trace %v)", configPath, verbosity, trace)
	return nil
}

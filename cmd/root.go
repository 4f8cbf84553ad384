// Copyright © 2018 The ELPS authors

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luthersystems/lispy/diagnostic"
	"github.com/luthersystems/lispy/repl"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys.  Each key may be set in the config file, through an
// environment variable with the LISPY_ prefix (LISPY_LOG_LEVEL), or by the
// flag of the same name.
const (
	keyColor          = "color"
	keyLogLevel       = "log-level"
	keyMaxStackHeight = "max-stack-height"
	keyPrelude        = "prelude"
	keyHistoryFile    = "history-file"
)

// errReported is returned by commands which have already written a
// diagnostic for the failure.
var errReported = errors.New("error reported")

// NewRootCommand returns the lispy command and its subcommands.
func NewRootCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "lispy",
		Short: "Lispy: a small embeddable Lisp interpreter",
		Long: `Lispy is a small Lisp interpreter implemented in Go.  Programs are built
from numbers, symbols, S-expressions ( ... ) which are evaluated, and
Q-expressions { ... } which are left unevaluated until passed to eval.

Getting started:
  lispy run file.lisp                  Run a Lisp source file
  lispy run -p -e '(+ 1 2)'            Evaluate and print an expression
  lispy repl                           Start an interactive REPL
  lispy doc head                       Show documentation for a builtin

Configuration is read from $HOME/.lispy.yaml and from environment variables
prefixed with LISPY_ (for example LISPY_LOG_LEVEL=debug).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(cfg.viper, cfgFile); err != nil {
				return err
			}
			level, err := log.ParseLevel(cfg.viper.GetString(keyLogLevel))
			if err != nil {
				return err
			}
			cfg.logger.SetLevel(level)
			cfg.logger.SetOutput(cfg.stderr)
			if cfg.viper.ConfigFileUsed() != "" {
				cfg.logger.WithField("file", cfg.viper.ConfigFileUsed()).Debug("using config file")
			}
			_, err = diagnostic.ParseColorMode(cfg.viper.GetString(keyColor))
			return err
		},
	}
	rootCmd.SetIn(cfg.stdin)
	rootCmd.SetOut(cfg.stdout)
	rootCmd.SetErr(cfg.stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lispy.yaml)")
	flags.String(keyColor, "auto", `Control colored output: "auto", "always", or "never".`)
	flags.String(keyLogLevel, "warning", "Logging level (debug, info, warning, error).")
	flags.Int(keyMaxStackHeight, 0, "Maximum call stack height (0 is unlimited).")
	flags.Bool(keyPrelude, true, "Load the prelude into new environments.")
	flags.String(keyHistoryFile, repl.DefaultHistoryFile(), "REPL history file.")
	for _, key := range []string{keyColor, keyLogLevel, keyMaxStackHeight, keyPrelude, keyHistoryFile} {
		_ = cfg.viper.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(
		newReplCommand(cfg),
		newRunCommand(cfg),
		newDocCommand(cfg),
	)
	return rootCmd
}

// Execute runs the lispy command with the process arguments.  This is called
// by main.main().
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("LISPY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
		return v.ReadInConfig()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.SetConfigFile(filepath.Join(home, ".lispy.yaml"))
	// The default config file is optional.
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// Copyright © 2018 The ELPS authors

package cmd

import (
	"os"
	"path/filepath"

	"github.com/luthersystems/lispy/repl"
	"github.com/spf13/cobra"
)

func newReplCommand(cfg *cmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Lispy REPL",
		Long: `Start an interactive read-eval-print loop.

The builtins and the prelude are loaded automatically.  Line editing,
completion of defined names and command history are supported via readline.
An expression may span several lines.  Ctrl-C abandons the current
expression and Ctrl-D exits.

Example REPL session:
  lispy> (+ 1 2)
  3
  lispy> (fun {sq x} {* x x})
  ()
  lispy> (sq 5)
  25
  lispy> (head {1 2 3})
  1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl.RunRepl(filepath.Base(os.Args[0])+"> ",
				repl.WithStdin(cfg.stdin),
				repl.WithStderr(cfg.stderr),
				repl.WithHistoryFile(cfg.viper.GetString(keyHistoryFile)),
				repl.WithEnvConfig(cfg.envConfig()...),
			)
		},
	}
}

// Copyright © 2018 The ELPS authors

package repl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser"
	log "github.com/sirupsen/logrus"
)

// HistoryFileName is the name of the history file kept in the user's home
// directory.
const HistoryFileName = ".lispy_history"

type config struct {
	stdin       io.ReadCloser
	stderr      io.Writer
	historyFile string
	envConfig   []lisp.Config
}

func newConfig(opts ...Option) *config {
	c := &config{
		historyFile: DefaultHistoryFile(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output of the REPL.
func WithStderr(stderr io.Writer) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithHistoryFile sets the file used to persist input history.  An empty
// path disables history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
	}
}

// WithEnvConfig adds configuration applied to the environment created by
// RunRepl.
func WithEnvConfig(cfgs ...lisp.Config) Option {
	return func(c *config) {
		c.envConfig = append(c.envConfig, cfgs...)
	}
}

// RunRepl runs a simple repl in a new global environment.
func RunRepl(prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	envOpts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
	}
	if cfg.stderr != nil {
		envOpts = append(envOpts, lisp.WithStdout(cfg.stderr), lisp.WithStderr(cfg.stderr))
	}
	envOpts = append(envOpts, cfg.envConfig...)
	env, err := lisp.NewGlobalEnv(envOpts...)
	if err != nil {
		return fmt.Errorf("language initialization failure: %w", err)
	}
	return RunEnv(env, prompt, opts...)
}

// RunEnv runs a simple repl with env as a root environment.  RunEnv returns
// when the input is exhausted.
func RunEnv(env *lisp.Env, prompt string, opts ...Option) error {
	if !env.IsRoot() {
		return errors.New("repl environment is not a root environment")
	}
	cfg := newConfig(opts...)
	out := cfg.stderr
	if out == nil {
		out = env.Runtime.Stderr
	}
	reader := env.Runtime.Reader
	if reader == nil {
		reader = parser.NewReader()
	}
	cont := strings.Repeat(" ", len(prompt))

	ensureHistoryFilePermissions(cfg.historyFile)
	rlCfg := &readline.Config{
		Stdout:            out,
		Stderr:            out,
		Prompt:            prompt,
		HistoryFile:       cfg.historyFile,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{env: env},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	fmt.Fprintf(out, "Lispy version %s\nPress Ctrl+c to Exit\n\n", lisp.LispyVersion) //nolint:errcheck // best-effort banner

	var pending []byte
	for {
		line, err := rl.ReadLine()
		if err == readline.ErrInterrupt {
			// Ctrl-C abandons the expression being typed
			pending = nil
			rl.SetPrompt(prompt)
			continue
		}
		if err != nil {
			return nil
		}
		if len(pending) == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		pending = append(pending, line...)
		pending = append(pending, '\n')
		exprs, err := reader.Read("stdin", bytes.NewReader(pending))
		if parser.IsIncomplete(err) {
			rl.SetPrompt(cont)
			continue
		}
		pending = nil
		rl.SetPrompt(prompt)
		if err != nil {
			fmt.Fprintln(out, err) //nolint:errcheck // best-effort error display
			continue
		}
		for _, expr := range exprs {
			fmt.Fprintln(out, env.Eval(expr).String()) //nolint:errcheck // best-effort REPL output
		}
	}
}

// DefaultHistoryFile returns the path of the history file in the user's home
// directory, or the empty string when there is no home directory.
func DefaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, HistoryFileName)
}

// ensureHistoryFilePermissions creates the history file if necessary and
// makes it readable only by its owner.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0600) //nolint:gosec // path is the user's configured history file
	if err != nil {
		log.WithError(err).WithField("path", path).Debug("unable to create history file")
		return
	}
	_ = f.Close()
	if err := os.Chmod(path, 0600); err != nil {
		log.WithError(err).WithField("path", path).Debug("unable to restrict history file")
	}
}

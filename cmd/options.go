// Copyright © 2024 The ELPS authors

package cmd

import (
	"io"
	"os"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Option configures a command created by NewRootCommand.
type Option func(*cmdConfig)

type cmdConfig struct {
	stdin  io.ReadCloser
	stdout io.Writer
	stderr io.Writer
	exit   func(code int)
	viper  *viper.Viper
	logger *log.Logger
}

func newCmdConfig(opts ...Option) *cmdConfig {
	c := &cmdConfig{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		exit:   os.Exit,
		logger: log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.viper == nil {
		c.viper = viper.New()
	}
	return c
}

// WithIO overrides the standard streams used by commands.
func WithIO(stdin io.ReadCloser, stdout, stderr io.Writer) Option {
	return func(c *cmdConfig) {
		c.stdin = stdin
		c.stdout = stdout
		c.stderr = stderr
	}
}

// WithExit overrides the function called by the lisp exit builtin.
func WithExit(fn func(code int)) Option {
	return func(c *cmdConfig) { c.exit = fn }
}

// WithViper injects the configuration registry used by commands.
func WithViper(v *viper.Viper) Option {
	return func(c *cmdConfig) { c.viper = v }
}

// WithLogger sets the logger configured by the log-level setting and used by
// lisp environments.
func WithLogger(logger *log.Logger) Option {
	return func(c *cmdConfig) { c.logger = logger }
}

// envConfig returns the configuration shared by environments created for
// commands.
func (c *cmdConfig) envConfig() []lisp.Config {
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(c.stderr),
		lisp.WithLogger(c.logger),
		lisp.WithExit(c.exit),
	}
	if n := c.viper.GetInt(keyMaxStackHeight); n > 0 {
		config = append(config, lisp.WithMaximumStackHeight(n))
	}
	if !c.viper.GetBool(keyPrelude) {
		config = append(config, lisp.WithoutPrelude())
	}
	return config
}

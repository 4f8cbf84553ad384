// Copyright © 2021 The ELPS authors

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/luthersystems/lispy/docs"
	"github.com/luthersystems/lispy/lisp"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

const docIndent = 4

func newDocCommand(cfg *cmdConfig) *cobra.Command {
	var width int
	var guide bool
	docCmd := &cobra.Command{
		Use:   "doc [flags] [NAME]",
		Short: "Show documentation for builtin functions",
		Long: `Show documentation for the functions bound in a new global environment.

Without an argument every builtin is listed with its documentation, followed
by the functions defined by the prelude.  With an argument only the named
function is shown.

Examples:
  lispy doc                        List all builtins
  lispy doc join                   Show docs for join
  lispy doc fun                    Show the definition of the prelude fun
  lispy doc --guide                Print the language guide`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if guide {
				_, err := io.WriteString(cfg.stdout, docs.LangGuide)
				return err
			}
			env, err := lisp.NewGlobalEnv(cfg.envConfig()...)
			if err != nil {
				return fmt.Errorf("language initialization failure: %w", err)
			}
			out := bufio.NewWriter(cfg.stdout)
			defer out.Flush() //nolint:errcheck // best-effort flush on exit
			if len(args) == 0 {
				return docAll(out, env, width)
			}
			return docName(out, env, args[0], width)
		},
	}
	docCmd.Flags().IntVarP(&width, "width", "w", 72, "Wrap documentation at this column.")
	docCmd.Flags().BoolVar(&guide, "guide", false, "Print the language guide.")
	return docCmd
}

// docSignature renders a call to fun with its formal arguments.
func docSignature(name string, formals *lisp.QExpr) string {
	parts := []string{name}
	if formals != nil {
		for _, c := range formals.Cells {
			parts = append(parts, c.String())
		}
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func docBuiltin(w io.Writer, b *lisp.Builtin, width int) error {
	_, err := fmt.Fprintln(w, docSignature(b.Name, b.Formals))
	if err != nil {
		return err
	}
	doc := strings.Join(strings.Fields(b.Doc), " ")
	if doc == "" {
		doc = "No documentation."
	}
	doc = indent.String(wordwrap.String(doc, width-docIndent), docIndent)
	_, err = fmt.Fprintln(w, doc)
	return err
}

func docClosure(w io.Writer, name string, fun *lisp.Closure, width int) error {
	_, err := fmt.Fprintln(w, docSignature(name, fun.Formals))
	if err != nil {
		return err
	}
	def := indent.String(wordwrap.String(fun.String(), width-docIndent), docIndent)
	_, err = fmt.Fprintln(w, def)
	return err
}

func docAll(w io.Writer, env *lisp.Env, width int) error {
	for i, b := range lisp.Builtins() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := docBuiltin(w, b, width); err != nil {
			return err
		}
	}
	var closures []string
	for _, name := range env.Names() {
		if env.Lookup(name).Type() == lisp.LFun {
			closures = append(closures, name)
		}
	}
	if len(closures) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "\nPrelude functions:\n%s\n",
		indent.String(wordwrap.String(strings.Join(closures, " "), width-docIndent), docIndent))
	return err
}

func docName(w io.Writer, env *lisp.Env, name string, width int) error {
	switch fun := env.Lookup(name).(type) {
	case *lisp.Builtin:
		return docBuiltin(w, fun, width)
	case *lisp.Closure:
		return docClosure(w, name, fun, width)
	case *lisp.Error:
		return fmt.Errorf("no function named %q", name)
	default:
		return fmt.Errorf("%s is not a function: %s", name, fun.Type())
	}
}

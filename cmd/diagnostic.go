// Copyright © 2024 The ELPS authors

package cmd

import (
	"errors"
	"io"

	"github.com/luthersystems/lispy/diagnostic"
	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser"
)

func (c *cmdConfig) colorMode() diagnostic.ColorMode {
	mode, _ := diagnostic.ParseColorMode(c.viper.GetString(keyColor))
	return mode
}

func (c *cmdConfig) newRenderer(sources map[string]string) *diagnostic.Renderer {
	return &diagnostic.Renderer{
		Color:   c.colorMode(),
		Sources: sources,
	}
}

// lispErrorToDiagnostic converts an Error value to a Diagnostic for display.
// The condition becomes the diagnostic code.
func lispErrorToDiagnostic(lerr *lisp.Error) diagnostic.Diagnostic {
	d := diagnostic.Errorf(string(lerr.Condition), lerr.Message)
	if lerr.Stack != nil {
		for i := len(lerr.Stack.Frames) - 1; i >= 0; i-- {
			d.Frames = append(d.Frames, lerr.Stack.Frames[i].String())
		}
	}
	return d
}

// goErrorToDiagnostic converts an error returned while reading source into a
// Diagnostic.  Syntax errors are annotated with their source location.
func goErrorToDiagnostic(err error) diagnostic.Diagnostic {
	d := diagnostic.Errorf("", err.Error())
	var perr *parser.Error
	if errors.As(err, &perr) {
		d.Message = perr.Msg
		d.Spans = append(d.Spans, diagnostic.Span{
			File: perr.Name,
			Line: perr.Line,
			Col:  perr.Col,
		})
		if perr.Incomplete {
			d.Notes = append(d.Notes, "the source ends inside an open expression")
		}
	}
	return d
}

// renderError writes a diagnostic for err to w.
func (c *cmdConfig) renderError(w io.Writer, sources map[string]string, err error) {
	var d diagnostic.Diagnostic
	var lerr *lisp.Error
	if errors.As(err, &lerr) {
		d = lispErrorToDiagnostic(lerr)
	} else {
		d = goErrorToDiagnostic(err)
	}
	_ = c.newRenderer(sources).Render(w, d)
}

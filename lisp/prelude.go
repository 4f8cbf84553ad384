// Copyright © 2024 The ELPS authors

package lisp

import (
	_ "embed"
)

// Prelude is lisp source loaded into every environment created by
// NewGlobalEnv unless WithoutPrelude is given.  It defines functions built
// solely from the builtin library.
//
//go:embed prelude.lisp
var Prelude string

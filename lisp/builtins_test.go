// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/lispy/lispytest"
)

func TestArithmetic(t *testing.T) {
	tests := lispytest.TestSuite{
		{"arithmetic", lispytest.TestSequence{
			{"(+ 1 2 3)", "6", ""},
			{"(+ 2)", "2", ""},
			{"(- 5)", "-5", ""},
			{"(- 10 1 2)", "7", ""},
			{"(* 2 3 4)", "24", ""},
			{"(/ 7 2)", "3", ""},
			{"(/ -7 2)", "-3", ""},
			{"(+ 1 (* 2 3))", "7", ""},
		}},
		{"arithmetic errors", lispytest.TestSequence{
			{"(/ 1 0)", "Error: Division by zero", ""},
			{"(/ 10 2 0 3)", "Error: Division by zero", ""},
			{"(+ 1 {2 3})", "Error: +: argument 1 has wrong type; expected Number, got Q-expression", ""},
			{"(* {1} 2)", "Error: *: argument 0 has wrong type; expected Number, got Q-expression", ""},
			{"(+)", "Error: +: passed too few arguments; got 0, expected at least 1", ""},
		}},
	}
	lispytest.RunTestSuite(t, tests)
}

func TestLists(t *testing.T) {
	tests := lispytest.TestSuite{
		{"list", lispytest.TestSequence{
			{"(list 1 2 3)", "{1 2 3}", ""},
			{"(list)", "{}", ""},
			{"(list (+ 1 1) {x})", "{2 {x}}", ""},
		}},
		{"head tail init", lispytest.TestSequence{
			{"(head {1 2 3})", "1", ""},
			{"(head {a b})", "a", ""},
			{"(head {{1} 2})", "{1}", ""},
			{"(tail {1 2 3})", "{2 3}", ""},
			{"(tail {1})", "{}", ""},
			{"(init {1 2 3})", "{1 2}", ""},
			{"(init {1})", "{}", ""},
		}},
		{"empty list access", lispytest.TestSequence{
			{"(head {})", "Error: head: empty Q-expression", ""},
			{"(tail {})", "Error: tail: empty Q-expression", ""},
			{"(init {})", "Error: init: empty Q-expression", ""},
		}},
		{"len join cons", lispytest.TestSequence{
			{"(len {1 2 3})", "3", ""},
			{"(len {})", "0", ""},
			{"(join {1} {2 3} {})", "{1 2 3}", ""},
			{"(join {})", "{}", ""},
			{"(cons 1 {2 3})", "{1 2 3}", ""},
			{"(cons {1} {})", "{{1}}", ""},
		}},
		{"list algebra", lispytest.TestSequence{
			{"(join (list) {1 2})", "{1 2}", ""},
			{"(head (cons 5 {1 2}))", "5", ""},
			{"(tail (cons 5 {1 2}))", "{1 2}", ""},
			{"(len (join {1 2} {3}))", "3", ""},
		}},
		{"list errors", lispytest.TestSequence{
			{"(head 1)", "Error: head: argument 0 has wrong type; expected Q-expression, got Number", ""},
			{"(head {1} {2})", "Error: head: passed incorrect number of arguments; got 2, expected 1", ""},
			{"(join {1} 2)", "Error: join: argument 1 has wrong type; expected Q-expression, got Number", ""},
			{"(join)", "Error: join: passed too few arguments; got 0, expected at least 1", ""},
			{"(cons 1 2)", "Error: cons: argument 1 has wrong type; expected Q-expression, got Number", ""},
			{"(len 1)", "Error: len: argument 0 has wrong type; expected Q-expression, got Number", ""},
		}},
		{"eval", lispytest.TestSequence{
			{"(eval {+ 1 2})", "3", ""},
			{"(eval (tail {1 + 2 3}))", "5", ""},
			{"(eval {})", "()", ""},
			{"(eval {head {4 5}})", "4", ""},
			{"(eval 1)", "Error: eval: argument 0 has wrong type; expected Q-expression, got Number", ""},
		}},
	}
	lispytest.RunTestSuite(t, tests)
}

func TestDef(t *testing.T) {
	tests := lispytest.TestSuite{
		{"def", lispytest.TestSequence{
			{"(def {x} 10)", "()", ""},
			{"x", "10", ""},
			{"(def {a b} 1 2)", "()", ""},
			{"(+ a b)", "3", ""},
			{"(def {x} {1 2})", "()", ""},
			{"x", "{1 2}", ""},
			{"y", "Error: Unbound symbol 'y'", ""},
		}},
		{"def errors", lispytest.TestSequence{
			{"(def {a} 1 2)", "Error: def: passed 1 symbols for 2 values", ""},
			{"(def {1} 2)", "Error: def: cannot define non-symbol; got Number", ""},
			{"(def 1 2)", "Error: def: argument 0 has wrong type; expected Q-expression, got Number", ""},
			{"(def {})", "Error: def: passed too few arguments; got 1, expected at least 2", ""},
			{"(def {x})", "Error: def: passed too few arguments; got 1, expected at least 2", ""},
			{"(= {})", "Error: =: passed too few arguments; got 1, expected at least 2", ""},
			{"a", "Error: Unbound symbol 'a'", ""},
		}},
		{"def is global", lispytest.TestSequence{
			{"(def {x} 1)", "()", ""},
			{`(def {setx} (\ {v} {def {x} v}))`, "()", ""},
			{"(setx 7)", "()", ""},
			{"x", "7", ""},
		}},
		{"local binding", lispytest.TestSequence{
			{"(def {x} 1)", "()", ""},
			{`((\ {y} {= {x} y}) 5)`, "()", ""},
			{"x", "1", ""},
			{`((\ {y} {join (list (= {x} y)) (list x)}) 5)`, "{() 5}", ""},
			{"(= {z} 3)", "()", ""},
			{"z", "3", ""},
		}},
		{"builtins are values", lispytest.TestSequence{
			{"(def {first} head)", "()", ""},
			{"first", "<builtin function>", ""},
			{"(first {9 8})", "9", ""},
		}},
	}
	lispytest.RunTestSuite(t, tests)
}

func TestPrintEnv(t *testing.T) {
	tests := lispytest.TestSuite{
		{"print-env", lispytest.TestSequence{
			{`((\ {x y} {print-env}) 1 {2})`, "()", "x: 1\ny: {2}\n"},
			{`(print-env 1)`, "Error: print-env: passed incorrect number of arguments; got 1, expected 0", ""},
		}},
	}
	lispytest.RunTestSuite(t, tests)
}

func TestExit(t *testing.T) {
	tests := lispytest.TestSuite{
		{"exit", lispytest.TestSequence{
			{"(exit)", "()", ""},
			{"(exit 1)", "Error: exit: passed incorrect number of arguments; got 1, expected 0", ""},
		}},
	}
	lispytest.RunTestSuite(t, tests)
}

func TestPrelude(t *testing.T) {
	tests := lispytest.TestSuite{
		{"fun", lispytest.TestSequence{
			{"(fun {add3 a b c} {+ a b c})", "()", ""},
			{"(add3 1 2 3)", "6", ""},
			{"((add3 1) 2 3)", "6", ""},
		}},
		{"unpack pack", lispytest.TestSequence{
			{"(unpack + {1 2 3})", "6", ""},
			{"(curry * {2 3})", "6", ""},
			{"(pack head 5 6 7)", "5", ""},
			{"(uncurry len 1 2 3)", "3", ""},
		}},
	}
	lispytest.RunTestSuite(t, tests)
}

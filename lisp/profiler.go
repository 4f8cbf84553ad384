package lisp

// LispyVersion is the language version reported by the REPL banner.
const LispyVersion = "0.4"

// Interface for a profiler
type Profiler interface {
	// Is the profiler enabled?
	IsEnabled() bool
	// Enable the profiler
	Enable() error
	// End the profiling session
	Complete() error
	// Marks the start of a function application.  The returned function
	// marks its end.
	Start(fun Value) func()
}

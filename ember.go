// Package ember is the embedding surface of the interpreter: Evaluate runs
// untrusted source text against a caller-controlled global table and
// settles a promise with the outcome. The evaluator adds no implicit
// names — every binding the program can see comes in through the globals
// map, and every top-level binding the program defines is mirrored back
// into it on successful completion.
package ember

import (
	"io"

	"github.com/cwbudde/ember/internal/eval"
	"github.com/cwbudde/ember/internal/runtime"
)

// Runtime value types, re-exported so an embedder can build a globals
// table and inspect results without reaching into internal packages.
type (
	Value          = runtime.Value
	Undefined      = runtime.Undefined
	Null           = runtime.Null
	Bool           = runtime.Bool
	Number         = runtime.Number
	String         = runtime.String
	Array          = runtime.Array
	Object         = runtime.Object
	ErrorValue     = runtime.ErrorValue
	HostOpaque     = runtime.HostOpaque
	NativeFunction = runtime.NativeFunction
	Promise        = runtime.Promise
)

// Evaluate parses and runs source against a root environment seeded from
// globals and nothing else. The returned promise is fulfilled with the
// final statement's value, or rejected with an *ErrorValue whose Kind and
// Message come from the formatted diagnostic (source window and caret
// included for positioned faults).
//
// On successful completion every top-level binding is mirrored back into
// globals, so the caller observes both the names the program defined and
// any reassignments of the seeds it provided. On failure globals is left
// untouched.
func Evaluate(globals map[string]Value, source string) *Promise {
	p := runtime.NewPromise()

	ev := eval.New(eval.WithSeedGlobals(false))
	for name, v := range globals {
		ev.Global.Define(name, v)
	}

	val, d := ev.Run(source)
	if d != nil {
		ev.Global.Destroy()
		p.Reject(&runtime.ErrorValue{Kind: string(d.Kind), Message: d.Message})
		return p
	}

	if globals != nil {
		ev.Global.ForEachOwn(func(name string, v Value) {
			globals[name] = v
		})
	}
	ev.Global.Destroy()
	p.Resolve(val)
	return p
}

// SeedConvenienceGlobals adds the optional convenience host values — a
// console object whose log/error write to stdout/stderr — for callers
// that want observable output without assembling the table by hand.
// Nothing async (no Promise constructor, no timers) is seeded: those are
// the host-controlled primitives an embedder supplies itself.
func SeedConvenienceGlobals(globals map[string]Value, stdout, stderr io.Writer) {
	globals["console"] = runtime.ConsoleObject(stdout, stderr)
}

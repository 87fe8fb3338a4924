package runtime

import (
	"fmt"
	"io"
	"strings"
)

// SeedConvenienceGlobals installs the small set of host bindings the
// language relies on for observable output during scripts and tests:
// console.log and console.error, each joining its stringified arguments
// with a single space and a trailing newline, matching the host
// language's console formatting. Nothing else (no Promise constructor, no
// timers) is seeded here — those are supplied by whatever embeds the
// evaluator, per the Promise abstraction in promise.go.
func SeedConvenienceGlobals(env *Environment, stdout, stderr io.Writer) {
	env.Define("console", ConsoleObject(stdout, stderr))
}

// ConsoleObject builds the console value SeedConvenienceGlobals installs,
// exposed separately so an embedder assembling its own globals table can
// reuse it without going through an Environment.
func ConsoleObject(stdout, stderr io.Writer) *Object {
	console := NewObject()
	console.Set("log", &NativeFunction{Name: "console.log", Fn: logTo(stdout)})
	console.Set("error", &NativeFunction{Name: "console.error", Fn: logTo(stderr)})
	return console
}

func logTo(w io.Writer) func(Value, []Value) (Value, error) {
	return func(_ Value, args []Value) (Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = ToString(a)
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
		return Undefined{}, nil
	}
}

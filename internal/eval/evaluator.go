// Package eval walks the AST internal/parser produces and evaluates it
// against the value and environment model in internal/runtime. Parsing
// happens exactly once per run; the walker itself never re-parses or
// re-inspects source text.
package eval

import (
	"io"
	"os"

	"github.com/cwbudde/ember/internal/ast"
	"github.com/cwbudde/ember/internal/diag"
	"github.com/cwbudde/ember/internal/runtime"
)

// Evaluator owns the global environment and the per-run configuration
// (output sinks, recursion guard, memory tracker) a single program
// execution needs. A fresh Evaluator should be built per run; it is not
// safe for concurrent use.
type Evaluator struct {
	Global  *runtime.Environment
	Tracker *runtime.MemoryTracker
	Stdout  io.Writer
	Stderr  io.Writer

	source string

	callDepth    int
	maxCallDepth int
	seedGlobals  bool
}

// Option configures a new Evaluator.
type Option func(*Evaluator)

// WithOutput overrides the writers console.log/console.error write to.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(e *Evaluator) {
		e.Stdout = stdout
		e.Stderr = stderr
	}
}

// WithMemoryTracker attaches a caller-supplied tracker in place of the
// fresh one New creates — tests use this to read a run's counts.
func WithMemoryTracker(t *runtime.MemoryTracker) Option {
	return func(e *Evaluator) { e.Tracker = t }
}

// WithMaxCallDepth overrides the recursion guard's limit.
func WithMaxCallDepth(n int) Option {
	return func(e *Evaluator) { e.maxCallDepth = n }
}

// WithSeedGlobals controls whether New installs the convenience globals
// (console.log/console.error) into the root environment — the CLI wires
// this to --seed-globals. With seeding disabled the root environment
// starts strictly empty and every visible name comes from the embedder.
func WithSeedGlobals(seed bool) Option {
	return func(e *Evaluator) { e.seedGlobals = seed }
}

// New creates an Evaluator with a fresh root environment, seeded with the
// convenience globals (console.log/console.error) unless WithSeedGlobals
// disables that.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Tracker:      runtime.NewMemoryTracker(),
		maxCallDepth: defaultMaxCallDepth,
		seedGlobals:  true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Global = runtime.NewEnvironment(e.Tracker)
	if e.seedGlobals {
		runtime.SeedConvenienceGlobals(e.Global, e.Stdout, e.Stderr)
	}
	return e
}

// Run parses and evaluates source against the global environment,
// returning the final statement's value (mirroring a REPL's "last
// expression" convention) or a formatted diagnostic on failure.
func (e *Evaluator) Run(source string) (runtime.Value, *diag.Diagnostic) {
	e.source = source
	prog, d := parseSource(source)
	if d != nil {
		return nil, d
	}
	return e.RunProgram(prog)
}

// RunProgram evaluates an already-parsed program against the global
// environment. Exposed separately so callers that parse once and
// re-evaluate (a REPL re-running accumulated history, a test fixture)
// don't pay for re-parsing.
func (e *Evaluator) RunProgram(prog *ast.Program) (runtime.Value, *diag.Diagnostic) {
	var last runtime.Value = runtime.Undefined{}
	for _, stmt := range prog.Body {
		sig, val := e.evalStatement(e.Global, rootFrame, stmt)
		if sig.Kind == runtime.SigThrow {
			return nil, diag.Format(e.source, e.signalToFault(sig))
		}
		if val != nil {
			last = val
		}
	}
	return last, nil
}

// throwFault converts an internal fault into a catchable throw signal,
// wrapping it as an Error object carrying the fault's Kind/Message — the
// single point where the evaluator's internal error channel joins the
// script-visible exception channel.
func (e *Evaluator) throwFault(f *diag.Fault) runtime.Signal {
	if f == nil {
		return runtime.None
	}
	if v, ok := f.Payload.(runtime.Value); ok {
		return runtime.Signal{Kind: runtime.SigThrow, Value: v}
	}
	return runtime.Signal{
		Kind: runtime.SigThrow,
		Value: &runtime.ErrorValue{
			Kind:    string(f.Kind),
			Message: f.Message,
			Pos:     f.Pos,
			HasPos:  f.HasPos,
		},
	}
}

// signalToFault reconstructs a *diag.Fault from a throw signal for
// top-level diagnostic formatting, when a fault never carried source
// position information (it was not routed through throwFault) we report
// it unpositioned.
func (e *Evaluator) signalToFault(sig runtime.Signal) *diag.Fault {
	if ev, ok := sig.Value.(*runtime.ErrorValue); ok {
		if ev.HasPos {
			return &diag.Fault{Kind: diag.Kind(ev.Kind), Message: ev.Message, Pos: ev.Pos, HasPos: true}
		}
		return diag.NewUnpositioned(diag.Kind(ev.Kind), "%s", ev.Message)
	}
	return diag.NewUnpositioned(diag.UserThrown, "%s", runtime.ToString(sig.Value))
}

package eval

import (
	"testing"

	"github.com/cwbudde/ember/internal/diag"
	"github.com/cwbudde/ember/internal/runtime"
	"github.com/stretchr/testify/require"
)

func mustRun(t *testing.T, src string) runtime.Value {
	t.Helper()
	tracker := runtime.NewMemoryTracker()
	ev := New(WithMemoryTracker(tracker))
	val, d := ev.Run(src)
	if d != nil {
		t.Fatalf("unexpected error running %q: %s", src, d.Message)
	}
	ev.Global.Destroy()
	snap := tracker.Snapshot()
	if snap.EnvCount != 0 || snap.FnCount != 0 {
		t.Fatalf("teardown leaked state after %q: env=%d fn=%d", src, snap.EnvCount, snap.FnCount)
	}
	return val
}

func mustFail(t *testing.T, src string) *diag.Diagnostic {
	t.Helper()
	ev := New()
	_, d := ev.Run(src)
	if d == nil {
		t.Fatalf("expected error running %q, got none", src)
	}
	return d
}

// A block-scoped let shadows, then disappears on block exit.
func TestScenarioBlockScoping(t *testing.T) {
	v := mustRun(t, "let x = 0; { let x = 1; } x")
	require.Equal(t, runtime.Number(0), v)
}

// Ordinary recursion.
func TestScenarioRecursiveFactorial(t *testing.T) {
	v := mustRun(t, "function f(n){ if(n<=1) return 1; return n*f(n-1); } f(5)")
	require.Equal(t, runtime.Number(120), v)
}

// A closure's captured binding survives across calls and is
// shared between them, not reset per call.
func TestScenarioClosureCapturesSharedBinding(t *testing.T) {
	v := mustRun(t, "function make(){ let c=0; return function(){ return ++c; }; } let g=make(); g(); g(); g()")
	require.Equal(t, runtime.Number(3), v)
}

// Object/array destructuring, including rest collection.
func TestScenarioDestructuringRest(t *testing.T) {
	v := mustRun(t, "const {a, b, ...r} = {a:1,b:2,c:3,d:4}; [a,b,r]")
	arr, ok := v.(*runtime.Array)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
	require.Equal(t, runtime.Number(1), arr.Elements[0])
	require.Equal(t, runtime.Number(2), arr.Elements[1])
	rest, ok := arr.Elements[2].(*runtime.Object)
	require.True(t, ok)
	cv, _ := rest.Get("c")
	dv, _ := rest.Get("d")
	require.Equal(t, runtime.Number(3), cv)
	require.Equal(t, runtime.Number(4), dv)
	_, hasA := rest.Get("a")
	require.False(t, hasA)
}

// Continue skips the rest of one iteration but the loop's
// update still runs.
func TestScenarioForLoopContinue(t *testing.T) {
	v := mustRun(t, "let s=0; for(let i=1;i<=5;i++){ if(i===3) continue; s+=i; } s")
	require.Equal(t, runtime.Number(12), v)
}

// Super.m() resolves against the method's defining class, one
// level above it, not the receiver's concrete runtime class.
func TestScenarioSuperMethodCall(t *testing.T) {
	v := mustRun(t, "class A { m(){ return 1; } } class B extends A { m(){ return super.m()+1; } } new B().m()")
	require.Equal(t, runtime.Number(2), v)
}

// An async function's completion is wrapped in a settled
// promise whose fulfilled result is the returned value.
func TestScenarioAsyncFunctionReturnsPromise(t *testing.T) {
	v := mustRun(t, "async function g(){ return 42; } g()")
	p, ok := v.(*runtime.Promise)
	require.True(t, ok)
	require.Equal(t, runtime.Fulfilled, p.State())
	require.Equal(t, runtime.Number(42), p.Result())
}

// Switch matches by strict equality, and a matched case with an empty
// body falls through into the next case's body.
func TestScenarioSwitchFallthrough(t *testing.T) {
	v := mustRun(t, "switch(2){ case 1: case 2: case 3: 'hit'; break; default: 'miss'; }")
	require.Equal(t, runtime.String("hit"), v)
}

// An undefined identifier raises a positioned ReferenceError.
func TestScenarioUndefinedIdentifier(t *testing.T) {
	d := mustFail(t, "undefinedName")
	require.Equal(t, diag.ReferenceError, d.Kind)
	require.Contains(t, d.Message, "undefinedName")
	require.Contains(t, d.Message, "line 1, column 1")
}

// Spreading a non-iterable value into an array is a TypeError.
func TestScenarioSpreadNonIterable(t *testing.T) {
	d := mustFail(t, "[...42]")
	require.Equal(t, diag.TypeError, d.Kind)
	require.Contains(t, d.Message, "not iterable")
}

// await on a value that is not a Promise passes it through unchanged.
func TestAwaitNonPromisePassesThrough(t *testing.T) {
	v := mustRun(t, "async function g(){ return await 5; } g()")
	p, ok := v.(*runtime.Promise)
	require.True(t, ok)
	require.Equal(t, runtime.Number(5), p.Result())
}

// Optional chaining short-circuits the whole remaining chain to undefined.
func TestOptionalChainingShortCircuits(t *testing.T) {
	v := mustRun(t, "let o = {a: null}; o?.a?.b?.c")
	require.Equal(t, runtime.Undefined{}, v)

	v = mustRun(t, "let o = undefined; o?.missing()")
	require.Equal(t, runtime.Undefined{}, v)
}

// Classic for-loop closures observe per-iteration bindings, not a single
// shared one.
func TestForLoopPerIterationClosures(t *testing.T) {
	v := mustRun(t, `
		let fns = [];
		for (let i = 0; i < 3; i++) {
			fns[i] = function() { return i; };
		}
		[fns[0](), fns[1](), fns[2]()]
	`)
	arr, ok := v.(*runtime.Array)
	require.True(t, ok)
	require.Equal(t, []runtime.Value{runtime.Number(0), runtime.Number(1), runtime.Number(2)}, arr.Elements)
}

// Template literals interleave literal text with stringified expressions.
func TestTemplateLiteralInterpolation(t *testing.T) {
	v := mustRun(t, "let name = 'world'; `hello ${name}!`")
	require.Equal(t, runtime.String("hello world!"), v)
}

// Spread in a call flattens an array argument across positional params.
func TestSpreadInCallArguments(t *testing.T) {
	v := mustRun(t, "function add(a,b,c){ return a+b+c; } let xs=[1,2,3]; add(...xs)")
	require.Equal(t, runtime.Number(6), v)
}

// try/catch/finally: finally always runs, and a throw inside the try is
// caught and bound to the catch parameter.
func TestTryCatchFinally(t *testing.T) {
	v := mustRun(t, `
		let log = [];
		try {
			throw "boom";
		} catch (e) {
			log[0] = e;
		} finally {
			log[1] = "done";
		}
		log
	`)
	arr, ok := v.(*runtime.Array)
	require.True(t, ok)
	require.Equal(t, runtime.String("boom"), arr.Elements[0])
	require.Equal(t, runtime.String("done"), arr.Elements[1])
}

// Labelled continue resumes the correct, outer loop.
func TestLabeledContinue(t *testing.T) {
	v := mustRun(t, `
		let count = 0;
		outer: for (let i = 0; i < 3; i++) {
			for (let j = 0; j < 3; j++) {
				if (j === 1) continue outer;
				count = count + 1;
			}
		}
		count
	`)
	require.Equal(t, runtime.Number(3), v)
}

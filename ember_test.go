package ember

import (
	"bytes"
	"testing"

	"github.com/cwbudde/ember/internal/runtime"
	"github.com/stretchr/testify/require"
)

func settled(t *testing.T, p *Promise) (runtime.Value, bool) {
	t.Helper()
	switch p.State() {
	case runtime.Fulfilled:
		return p.Result(), true
	case runtime.Rejected:
		return p.Result(), false
	default:
		t.Fatalf("promise never settled")
		return nil, false
	}
}

func TestEvaluateResolvesFinalValue(t *testing.T) {
	v, ok := settled(t, Evaluate(nil, "1 + 2"))
	require.True(t, ok)
	require.Equal(t, Number(3), v)
}

func TestEvaluateSeedsOnlyCallerGlobals(t *testing.T) {
	// console is not an implicit name; without seeding it the program
	// cannot see it.
	_, ok := settled(t, Evaluate(nil, "console.log('hi')"))
	require.False(t, ok)

	globals := map[string]Value{}
	var out bytes.Buffer
	SeedConvenienceGlobals(globals, &out, &out)
	_, ok = settled(t, Evaluate(globals, "console.log('hi')"))
	require.True(t, ok)
	require.Equal(t, "hi\n", out.String())
}

func TestEvaluateMirrorsTopLevelBindings(t *testing.T) {
	globals := map[string]Value{"seed": Number(1)}
	_, ok := settled(t, Evaluate(globals, "let x = seed + 1; seed = 10; function f(){ return x; }"))
	require.True(t, ok)

	require.Equal(t, Number(2), globals["x"])
	require.Equal(t, Number(10), globals["seed"])
	_, isFn := globals["f"].(*runtime.Function)
	require.True(t, isFn)
}

func TestEvaluateRejectsWithFormattedDiagnostic(t *testing.T) {
	v, ok := settled(t, Evaluate(nil, "undefinedName"))
	require.False(t, ok)
	ev, isErr := v.(*ErrorValue)
	require.True(t, isErr)
	require.Equal(t, "ReferenceError", ev.Kind)
	require.Contains(t, ev.Message, "undefinedName")
	require.Contains(t, ev.Message, "line 1, column 1")
}

func TestEvaluateFailureLeavesGlobalsUntouched(t *testing.T) {
	globals := map[string]Value{"a": Number(1)}
	_, ok := settled(t, Evaluate(globals, "let b = 2; missingName"))
	require.False(t, ok)
	require.Len(t, globals, 1)
	require.Equal(t, Number(1), globals["a"])
}

func TestEvaluateHostFunctionInjection(t *testing.T) {
	var got []runtime.Value
	globals := map[string]Value{
		"record": &NativeFunction{Name: "record", Fn: func(_ Value, args []Value) (Value, error) {
			got = append(got, args...)
			return Undefined{}, nil
		}},
	}
	_, ok := settled(t, Evaluate(globals, "record(1, 'two', true)"))
	require.True(t, ok)
	require.Equal(t, []runtime.Value{Number(1), String("two"), Bool(true)}, got)
}

// Running the same await-free, throw-free program twice under equal
// globals produces equal results and equal final globals.
func TestEvaluateDeterministic(t *testing.T) {
	src := `
		let acc = [];
		for (let i = 0; i < 4; i++) { acc[i] = i * base; }
		let total = 0;
		for (let v of acc) { total += v; }
		total
	`
	run := func() (runtime.Value, map[string]Value) {
		globals := map[string]Value{"base": Number(3)}
		v, ok := settled(t, Evaluate(globals, src))
		require.True(t, ok)
		return v, globals
	}
	v1, g1 := run()
	v2, g2 := run()
	require.Equal(t, v1, v2)
	require.Equal(t, Number(18), v1)
	require.Equal(t, g1["total"], g2["total"])
	require.Equal(t, Number(18), g1["total"])
}

package eval

import (
	"math"
	"testing"

	"github.com/cwbudde/ember/internal/diag"
	"github.com/cwbudde/ember/internal/runtime"
	"github.com/stretchr/testify/require"
)

func TestArithmeticAndCoercion(t *testing.T) {
	tests := []struct {
		src  string
		want runtime.Value
	}{
		{"1 + 2", runtime.Number(3)},
		{"'a' + 1", runtime.String("a1")},
		{"1 + 'a'", runtime.String("1a")},
		{"'5' * 2", runtime.Number(10)},
		{"7 % 4", runtime.Number(3)},
		{"2 ** 10", runtime.Number(1024)},
		{"2 ** 3 ** 2", runtime.Number(512)},
		{"-'3'", runtime.Number(-3)},
		{"+true", runtime.Number(1)},
		{"!0", runtime.Bool(true)},
		{"10 > 9", runtime.Bool(true)},
		{"'b' > 'a'", runtime.Bool(true)},
		{"'10' < '9'", runtime.Bool(true)}, // both strings: lexical compare
		{"'10' < 9", runtime.Bool(false)},  // mixed: numeric compare
		{"1 == '1'", runtime.Bool(true)},
		{"1 === '1'", runtime.Bool(false)},
		{"null == undefined", runtime.Bool(true)},
		{"null === undefined", runtime.Bool(false)},
		{"typeof 'x'", runtime.String("string")},
		{"typeof neverDefined", runtime.String("undefined")},
	}
	for _, tt := range tests {
		v := mustRun(t, tt.src)
		require.Equal(t, tt.want, v, "source: %s", tt.src)
	}
}

func TestDivisionByZeroFollowsIEEE(t *testing.T) {
	v := mustRun(t, "1 / 0")
	require.Equal(t, runtime.Number(math.Inf(1)), v)
	v = mustRun(t, "0 / 0")
	require.True(t, math.IsNaN(float64(v.(runtime.Number))))
}

func TestLogicalOperatorsReturnOperandValues(t *testing.T) {
	require.Equal(t, runtime.Number(2), mustRun(t, "1 && 2"))
	require.Equal(t, runtime.Number(0), mustRun(t, "0 && 2"))
	require.Equal(t, runtime.Number(1), mustRun(t, "1 || 2"))
	require.Equal(t, runtime.String("fallback"), mustRun(t, "null ?? 'fallback'"))
	require.Equal(t, runtime.Number(0), mustRun(t, "0 ?? 'fallback'"))
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	v := mustRun(t, "let hits = 0; function bump(){ hits++; return true; } false && bump(); true || bump(); hits")
	require.Equal(t, runtime.Number(0), v)
}

func TestCompoundAndLogicalAssignment(t *testing.T) {
	v := mustRun(t, "let x = 10; x += 5; x -= 1; x *= 2; x /= 4; x")
	require.Equal(t, runtime.Number(7), v)

	v = mustRun(t, "let o = {n: 1}; o.n += 9; o.n")
	require.Equal(t, runtime.Number(10), v)

	v = mustRun(t, "let a = null; a ??= 3; a ??= 99; a")
	require.Equal(t, runtime.Number(3), v)
}

func TestUpdateExpressions(t *testing.T) {
	v := mustRun(t, "let i = 5; let pre = ++i; let post = i++; [pre, post, i]")
	arr := v.(*runtime.Array)
	require.Equal(t, []runtime.Value{runtime.Number(6), runtime.Number(6), runtime.Number(7)}, arr.Elements)

	v = mustRun(t, "let xs = [10]; xs[0]--; xs[0]")
	require.Equal(t, runtime.Number(9), v)
}

func TestSequenceExpressionYieldsLast(t *testing.T) {
	require.Equal(t, runtime.Number(3), mustRun(t, "(1, 2, 3)"))
}

func TestTernary(t *testing.T) {
	require.Equal(t, runtime.String("big"), mustRun(t, "10 > 5 ? 'big' : 'small'"))
}

func TestObjectSpreadLaterKeysWin(t *testing.T) {
	v := mustRun(t, `
		let base = {a: 1, b: 2};
		let merged = {...base, b: 3, c: 4};
		let keys = '';
		for (let k in merged) { keys += k; }
		[keys, merged.b]
	`)
	arr := v.(*runtime.Array)
	require.Equal(t, runtime.String("abc"), arr.Elements[0])
	require.Equal(t, runtime.Number(3), arr.Elements[1])
}

func TestObjectSpreadOfArrayAndString(t *testing.T) {
	v := mustRun(t, `
		let fromArray = {...[7, 8]};
		let fromString = {...'hi'};
		[fromArray['0'], fromArray['1'], fromString['0'], fromString['1']]
	`)
	arr := v.(*runtime.Array)
	require.Equal(t, []runtime.Value{
		runtime.Number(7), runtime.Number(8), runtime.String("h"), runtime.String("i"),
	}, arr.Elements)
}

func TestCompoundAssignmentEvaluatesReceiverOnce(t *testing.T) {
	v := mustRun(t, `
		let calls = 0;
		let o = {n: 1};
		function pick() { calls++; return o; }
		pick().n += 2;
		pick().n++;
		--pick().n;
		[o.n, calls]
	`)
	arr := v.(*runtime.Array)
	require.Equal(t, runtime.Number(3), arr.Elements[0])
	require.Equal(t, runtime.Number(3), arr.Elements[1])
}

func TestArrayLengthAndTruncation(t *testing.T) {
	v := mustRun(t, "let xs = [1, 2, 3, 4]; xs.length = 2; [xs.length, xs[3]]")
	arr := v.(*runtime.Array)
	require.Equal(t, runtime.Number(2), arr.Elements[0])
	require.Equal(t, runtime.Undefined{}, arr.Elements[1])
}

func TestOptionalChainShortsWholeRemainingChain(t *testing.T) {
	// A nullish receiver anywhere in the chain shorts every later link,
	// including non-optional ones and calls.
	require.Equal(t, runtime.Undefined{}, mustRun(t, "let a = null; a?.b.c"))
	require.Equal(t, runtime.Undefined{}, mustRun(t, "let a = null; a?.b.c()"))
	require.Equal(t, runtime.Undefined{}, mustRun(t, "let o = {}; o.missing?.()"))
}

func TestOptionalChainPreservesReceiver(t *testing.T) {
	v := mustRun(t, `
		class Counter {
			constructor() { this.n = 41; }
			next() { return this.n + 1; }
		}
		let c = new Counter();
		c?.next()
	`)
	require.Equal(t, runtime.Number(42), v)
}

func TestAssignmentToUnboundNameFaults(t *testing.T) {
	d := mustFail(t, "ghost = 1")
	require.Equal(t, diag.ReferenceError, d.Kind)
	require.Contains(t, d.Message, "ghost")
}

func TestCallingNonFunctionFaults(t *testing.T) {
	d := mustFail(t, "let n = 4; n()")
	require.Equal(t, diag.TypeError, d.Kind)
}

func TestConstructingNonClassFaults(t *testing.T) {
	d := mustFail(t, "new 42()")
	require.Equal(t, diag.TypeError, d.Kind)
}

func TestMemberAccessOnNullishFaults(t *testing.T) {
	d := mustFail(t, "let x = null; x.field")
	require.Equal(t, diag.TypeError, d.Kind)

	d = mustFail(t, "let y = undefined; y.field = 1")
	require.Equal(t, diag.TypeError, d.Kind)
}

func TestDestructuringNullishFaults(t *testing.T) {
	d := mustFail(t, "let {a} = null;")
	require.Equal(t, diag.TypeError, d.Kind)
	d = mustFail(t, "let [x] = undefined;")
	require.Equal(t, diag.TypeError, d.Kind)
}

func TestNestedDestructuringInParameters(t *testing.T) {
	v := mustRun(t, `
		function dims({size: {w, h}}, [first, ...others]) {
			return w * h + first + others.length;
		}
		dims({size: {w: 3, h: 4}}, [10, 20, 30])
	`)
	require.Equal(t, runtime.Number(24), v)
}

func TestTemplateLiteralNestedExpression(t *testing.T) {
	v := mustRun(t, "let xs = [1, 2, 3]; `sum=${xs[0] + xs[1] + xs[2]}!`")
	require.Equal(t, runtime.String("sum=6!"), v)
}

package eval

import (
	"testing"

	"github.com/cwbudde/ember/internal/diag"
	"github.com/cwbudde/ember/internal/runtime"
	"github.com/stretchr/testify/require"
)

func TestConstructorInitializesInstanceState(t *testing.T) {
	v := mustRun(t, `
		class Point {
			constructor(x, y) { this.x = x; this.y = y; }
			norm() { return this.x * this.x + this.y * this.y; }
		}
		new Point(3, 4).norm()
	`)
	require.Equal(t, runtime.Number(25), v)
}

func TestImplicitConstructorForwardsToSuper(t *testing.T) {
	v := mustRun(t, `
		class Base { constructor(v) { this.v = v; } }
		class Derived extends Base { }
		new Derived(11).v
	`)
	require.Equal(t, runtime.Number(11), v)
}

func TestExplicitSuperCall(t *testing.T) {
	v := mustRun(t, `
		class Base { constructor(v) { this.v = v; } }
		class Derived extends Base {
			constructor(v) { super(v * 2); this.extra = 1; }
		}
		let d = new Derived(5);
		d.v + d.extra
	`)
	require.Equal(t, runtime.Number(11), v)
}

func TestMethodResolutionWalksSuperclassChain(t *testing.T) {
	v := mustRun(t, `
		class A { greet() { return 'hi'; } }
		class B extends A { }
		class C extends B { }
		new C().greet()
	`)
	require.Equal(t, runtime.String("hi"), v)
}

func TestSuperResolvesAgainstDefiningClass(t *testing.T) {
	// super.describe inside B.describe must resolve to A's method even
	// when the receiver is an instance of C further down the chain.
	v := mustRun(t, `
		class A { describe() { return 'A'; } }
		class B extends A { describe() { return super.describe() + 'B'; } }
		class C extends B { describe() { return super.describe() + 'C'; } }
		new C().describe()
	`)
	require.Equal(t, runtime.String("ABC"), v)
}

func TestStaticMethodsAndInheritance(t *testing.T) {
	v := mustRun(t, `
		class Registry {
			static create() { return new Registry(); }
			tag() { return 'reg'; }
		}
		class SubRegistry extends Registry { }
		[Registry.create().tag(), SubRegistry.create().tag(), Registry.name]
	`)
	arr := v.(*runtime.Array)
	require.Equal(t, runtime.String("reg"), arr.Elements[0])
	require.Equal(t, runtime.String("reg"), arr.Elements[1])
	require.Equal(t, runtime.String("Registry"), arr.Elements[2])
}

func TestClassExpression(t *testing.T) {
	v := mustRun(t, "let C = class { m() { return 9; } }; new C().m()")
	require.Equal(t, runtime.Number(9), v)
}

func TestInstanceof(t *testing.T) {
	v := mustRun(t, `
		class Animal { }
		class Dog extends Animal { }
		let d = new Dog();
		[d instanceof Dog, d instanceof Animal, new Animal() instanceof Dog, 42 instanceof Animal]
	`)
	arr := v.(*runtime.Array)
	require.Equal(t, []runtime.Value{
		runtime.Bool(true), runtime.Bool(true), runtime.Bool(false), runtime.Bool(false),
	}, arr.Elements)
}

func TestArrowFunctionKeepsEnclosingThis(t *testing.T) {
	v := mustRun(t, `
		class Box {
			constructor() { this.v = 5; }
			reader() { return () => this.v; }
		}
		let f = new Box().reader();
		f()
	`)
	require.Equal(t, runtime.Number(5), v)
}

func TestAsyncMethodReturnsPromise(t *testing.T) {
	v := mustRun(t, "class Job { async run() { return 'done'; } } new Job().run()")
	p, ok := v.(*runtime.Promise)
	require.True(t, ok)
	require.Equal(t, runtime.Fulfilled, p.State())
	require.Equal(t, runtime.String("done"), p.Result())
}

func TestMethodExtractedFromInstanceStaysBound(t *testing.T) {
	v := mustRun(t, `
		class Greeter {
			constructor(name) { this.name = name; }
			hello() { return 'hello ' + this.name; }
		}
		let g = new Greeter('world');
		let m = g.hello;
		m()
	`)
	require.Equal(t, runtime.String("hello world"), v)
}

func TestSuperWithoutSuperclassFaults(t *testing.T) {
	d := mustFail(t, "class A { m() { return super.m(); } } new A().m()")
	require.Equal(t, diag.TypeError, d.Kind)
}

func TestExtendingNonClassFaults(t *testing.T) {
	d := mustFail(t, "let notAClass = 1; class B extends notAClass { }")
	require.Equal(t, diag.TypeError, d.Kind)
}

func TestConstructorExplicitObjectReturnReplacesReceiver(t *testing.T) {
	v := mustRun(t, `
		class Wrapped { constructor() { this.ignored = 1; return {x: 1}; } }
		let w = new Wrapped();
		[w.x, w.ignored]
	`)
	arr := v.(*runtime.Array)
	require.Equal(t, runtime.Number(1), arr.Elements[0])
	require.Equal(t, runtime.Undefined{}, arr.Elements[1])
}

func TestConstructorPrimitiveReturnIsIgnored(t *testing.T) {
	v := mustRun(t, `
		class Keeps { constructor() { this.v = 2; return 42; } }
		new Keeps().v
	`)
	require.Equal(t, runtime.Number(2), v)
}

func TestConstructorFieldsVisibleAcrossMethods(t *testing.T) {
	v := mustRun(t, `
		class Counter {
			constructor() { this.n = 0; }
			bump() { this.n++; return this; }
			value() { return this.n; }
		}
		new Counter().bump().bump().bump().value()
	`)
	require.Equal(t, runtime.Number(3), v)
}

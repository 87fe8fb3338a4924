package runtime

import "github.com/cwbudde/ember/internal/ast"

// Function is a user-defined closure: the parameter list and body as
// parsed, the environment it closed over, and the bookkeeping the
// reference-counting teardown scheme needs. The evaluator (internal/eval)
// owns the actual call mechanics — binding parameters, running the body,
// unwinding signals — so this package stays free of an import cycle.
type Function struct {
	Name    string
	Params  []*ast.Param
	Body    *ast.BlockStatement
	Env     *Environment
	IsAsync bool

	// Bound is the receiver a method-dispatch copy is bound to; nil for a
	// free function. Set only on the transient copy WithReceiver returns.
	Bound Value

	// Home is the class a method was defined on, used to resolve `super`
	// to the method one level up Home's chain rather than the runtime
	// type of the receiver.
	Home *Class

	refcount  int
	destroyed bool
	view      bool
	tracker   *MemoryTracker
}

// NewFunction creates a Function closing over env: creation retains env
// (capturing it adds one reference), registers the function in env's
// tracked set so env's teardown can collect it, and reports to env's
// tracker.
func NewFunction(env *Environment, name string, params []*ast.Param, body *ast.BlockStatement, isAsync bool) *Function {
	env.AddRef()
	env.tracker.fnCreated()
	fn := &Function{Name: name, Params: params, Body: body, Env: env, IsAsync: isAsync, tracker: env.tracker}
	env.track(fn)
	return fn
}

func (*Function) TypeName() string { return "function" }
func (*Function) value()           {}

// retain registers one more owning reference (an environment slot or a
// class method table). Receiver-bound views sit outside the scheme: the
// original in the method table is the sole owner of the capture.
func (f *Function) retain() {
	if f != nil && !f.view {
		f.refcount++
	}
}

// release drops one owning reference, destroying the function on the
// transition to zero.
func (f *Function) release() {
	if f == nil || f.view {
		return
	}
	f.refcount--
	if f.refcount > 0 {
		return
	}
	f.destroy()
}

// destroy tears the function down exactly once: marks it dead, untracks
// it from its captured environment, and releases the capture reference —
// which may in turn cascade into that environment's teardown.
func (f *Function) destroy() {
	if f == nil || f.view || f.destroyed {
		return
	}
	f.destroyed = true
	f.tracker.fnDestroyed()
	f.Env.untrack(f)
	f.Env.Release()
}

// Alive reports whether the function has not yet been torn down. Calling
// a destroyed function is a TypeError at the call site.
func (f *Function) Alive() bool { return f != nil && !f.destroyed }

// WithReceiver returns a lightweight copy of f bound to receiver, used for
// `obj.method` dispatch without mutating the shared method-table entry
// every instance dispatches through. The copy is a transient view: it is
// never registered with the tracker and never separately destroyed, since
// it does not independently own the captured environment — the original
// Function (held in the class's method table) does.
func (f *Function) WithReceiver(receiver Value) *Function {
	if f == nil {
		return nil
	}
	bound := *f
	bound.Bound = receiver
	bound.view = true
	return &bound
}

// NativeFunction is a host-provided callable (the convenience globals,
// and any additional bindings an embedder installs) that runs Go code
// instead of an interpreted body. It never captures an Environment, so it
// sits outside the refcounting scheme entirely.
type NativeFunction struct {
	Name string
	Fn   func(this Value, args []Value) (Value, error)
}

func (*NativeFunction) TypeName() string { return "function" }
func (*NativeFunction) value()           {}

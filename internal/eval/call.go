package eval

import (
	"github.com/cwbudde/ember/internal/ast"
	"github.com/cwbudde/ember/internal/diag"
	"github.com/cwbudde/ember/internal/runtime"
	"github.com/cwbudde/ember/internal/token"
)

// callFunction is the single place a user-defined Function is actually
// invoked, whether as a plain call, a method dispatch, or a constructor.
// home is the class a method body was defined on (nil for plain
// functions and methodless calls), used to build this call's frame so
// `super` inside the body resolves against home.Super.
func (e *Evaluator) callFunction(fn *runtime.Function, this runtime.Value, home *runtime.Class, args []runtime.Value, pos token.Position) (runtime.Value, *diag.Fault) {
	if fn == nil || !fn.Alive() {
		return nil, diag.New(diag.TypeError, pos, "value is not a function")
	}
	if fault := e.enterCall(); fault != nil {
		return nil, fault
	}
	defer e.exitCall()

	activation := fn.Env.NewChild()
	defer activation.Release()

	if this != nil {
		activation.Define("this", this)
	}

	callFrame := rootFrame
	if home != nil || this != nil {
		callFrame = withReceiver(this, home)
	}

	if fault := e.bindParams(activation, callFrame, fn.Params, args); fault != nil {
		return nil, fault
	}

	if fn.IsAsync {
		return e.runAsyncBody(activation, callFrame, fn.Body)
	}

	sig, _ := e.runStatementsInEnv(activation, callFrame, fn.Body.Body)
	switch sig.Kind {
	case runtime.SigReturn:
		return sig.Value, nil
	case runtime.SigThrow:
		return nil, e.faultFromThrow(sig)
	default:
		return runtime.Undefined{}, nil
	}
}

// bindParams binds positional args against a function's parameter list,
// following the same define-mode pattern binder every other binding site
// uses. A rest parameter (always last) collects every remaining argument
// into an array.
func (e *Evaluator) bindParams(env *runtime.Environment, fr *frame, params []*ast.Param, args []runtime.Value) *diag.Fault {
	for i, p := range params {
		if p.IsRest {
			var rest []runtime.Value
			if i < len(args) {
				rest = append(rest, args[i:]...)
			}
			return e.bindPattern(env, fr, p.Target, runtime.NewArray(rest...), bindDefine)
		}
		var v runtime.Value = runtime.Undefined{}
		if i < len(args) {
			v = args[i]
		}
		if fault := e.bindPattern(env, fr, p.Target, v, bindDefine); fault != nil {
			return fault
		}
	}
	return nil
}

// callValue dispatches a resolved callee value: a user Function, a
// NativeFunction (console.log and friends), or a Class used as a
// constructor-via-call is rejected — classes are only callable through
// `new`.
func (e *Evaluator) callValue(callee runtime.Value, this runtime.Value, args []runtime.Value, pos token.Position) (runtime.Value, *diag.Fault) {
	switch fn := callee.(type) {
	case *runtime.Function:
		receiver := this
		if fn.Bound != nil {
			receiver = fn.Bound
		}
		return e.callFunction(fn, receiver, fn.Home, args, pos)
	case *runtime.NativeFunction:
		v, err := fn.Fn(this, args)
		if err != nil {
			if f, ok := err.(*diag.Fault); ok {
				return nil, f
			}
			return nil, diag.New(diag.TypeError, pos, "%s", err.Error())
		}
		return v, nil
	case *runtime.Class:
		return nil, diag.New(diag.TypeError, pos, "class %s is not callable, use 'new'", fn.Name)
	default:
		return nil, diag.New(diag.TypeError, pos, "value is not callable")
	}
}

// runAsyncBody executes an async function body to completion (the
// cooperative scheduler never actually suspends — every promise in this
// model settles synchronously, per internal/runtime's Promise), wrapping
// the outcome as a settled Promise rather than letting a throw escape as
// a fault at the call site: only an `await` on the resulting promise (or
// `.then`) observes the rejection.
func (e *Evaluator) runAsyncBody(env *runtime.Environment, fr *frame, body *ast.BlockStatement) (runtime.Value, *diag.Fault) {
	sig, _ := e.runStatementsInEnv(env, fr, body.Body)
	p := runtime.NewPromise()
	switch sig.Kind {
	case runtime.SigReturn:
		p.Resolve(sig.Value)
	case runtime.SigThrow:
		p.Reject(sig.Value)
	default:
		p.Resolve(runtime.Undefined{})
	}
	return p, nil
}

// faultFromThrow converts a propagating throw signal into the evaluator's
// internal fault channel so it can cross a function-call boundary as a
// single return value; the original thrown value is preserved in
// Payload so throwFault can hand back the exact value a script threw
// instead of a reconstructed Error.
func (e *Evaluator) faultFromThrow(sig runtime.Signal) *diag.Fault {
	if ev, ok := sig.Value.(*runtime.ErrorValue); ok {
		return &diag.Fault{Kind: diag.Kind(ev.Kind), Message: ev.Message, Payload: sig.Value}
	}
	return &diag.Fault{Kind: diag.UserThrown, Message: runtime.ToString(sig.Value), Payload: sig.Value}
}

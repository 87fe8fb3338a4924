package eval

import "github.com/cwbudde/ember/internal/runtime"

// frame carries the pieces of call context that are not lexically scoped
// the way ordinary variables are: the current receiver and the class a
// method body was defined on. Both are threaded explicitly as a parameter
// through every eval* call rather than stashed on the Evaluator, so
// re-entrant evaluation (a method call nested inside another method's
// body) restores the outer context simply by returning — there is no
// shared mutable slot to save and restore, and no activation can observe
// a stale receiver left over from an unrelated call.
type frame struct {
	this Value
	home *runtime.Class
}

// Value is an alias kept local to eval for readability; the type itself
// lives in internal/runtime since every concrete case is defined there.
type Value = runtime.Value

// rootFrame is used for top-level program evaluation and for plain
// function calls, where there is no receiver and no enclosing class.
var rootFrame = &frame{}

// withReceiver returns a frame for a method activation: this bound to
// receiver, home set to the class the method was looked up on (so
// `super` inside it resolves one level above home, not above receiver's
// concrete class).
func withReceiver(this Value, home *runtime.Class) *frame {
	return &frame{this: this, home: home}
}

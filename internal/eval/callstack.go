package eval

import "github.com/cwbudde/ember/internal/diag"

// defaultMaxCallDepth bounds recursion so a runaway script faults with a
// catchable RangeError instead of exhausting the host goroutine's stack.
const defaultMaxCallDepth = 2000

// enterCall increments the active call depth, returning a fault if the
// guard trips. Every successful call must pair this with exitCall on all
// return paths, typically via defer.
func (e *Evaluator) enterCall() *diag.Fault {
	e.callDepth++
	if e.callDepth > e.maxCallDepth {
		e.callDepth--
		return diag.NewUnpositioned(diag.RangeError, "call stack size exceeded")
	}
	return nil
}

func (e *Evaluator) exitCall() {
	e.callDepth--
}

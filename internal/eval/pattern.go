package eval

import (
	"github.com/cwbudde/ember/internal/ast"
	"github.com/cwbudde/ember/internal/diag"
	"github.com/cwbudde/ember/internal/runtime"
	"github.com/cwbudde/ember/internal/token"
)

// bindMode selects whether the pattern binder introduces new bindings
// (var/let-style declaration) or overwrites existing ones (assignment,
// for-of/for-in loop variables without a declaration keyword).
type bindMode int

const (
	bindDefine bindMode = iota
	bindAssign
)

// bindPattern is the single recursive binder behind every destructuring
// site: the same function, parameterized only by mode, handles variable
// declarators, assignment-expression left-hand sides, function
// parameters, and for-each loop targets. Patterns with default values
// (`{a = 1} = src`) never reach here — the parser rejects them.
func (e *Evaluator) bindPattern(env *runtime.Environment, fr *frame, pat ast.Pattern, value runtime.Value, mode bindMode) *diag.Fault {
	switch p := pat.(type) {
	case *ast.Identifier:
		return e.bindIdentifier(env, p, value, mode)
	case *ast.ObjectPattern:
		return e.bindObjectPattern(env, fr, p, value, mode)
	case *ast.ArrayPattern:
		return e.bindArrayPattern(env, fr, p, value, mode)
	case *ast.RestElement:
		return e.bindPattern(env, fr, p.Argument, value, mode)
	default:
		return diag.New(diag.SyntaxError, pat.Pos(), "unsupported binding target")
	}
}

func (e *Evaluator) bindIdentifier(env *runtime.Environment, id *ast.Identifier, value runtime.Value, mode bindMode) *diag.Fault {
	switch mode {
	case bindDefine:
		env.Define(id.Name, value)
		return nil
	default:
		if !env.Assign(id.Name, value) {
			return diag.New(diag.ReferenceError, id.Pos(), "undefined variable: %s", id.Name)
		}
		return nil
	}
}

func (e *Evaluator) bindObjectPattern(env *runtime.Environment, fr *frame, p *ast.ObjectPattern, value runtime.Value, mode bindMode) *diag.Fault {
	obj, ok := value.(*runtime.Object)
	if !ok {
		if runtime.IsNullish(value) {
			return diag.New(diag.TypeError, p.Pos(), "cannot destructure %s", runtime.ToString(value))
		}
		return diag.New(diag.TypeError, p.Pos(), "cannot destructure a non-object value")
	}

	taken := make(map[string]bool, len(p.Properties))
	for _, prop := range p.Properties {
		key, fault := e.patternPropertyKey(env, fr, prop.Key, prop.Computed)
		if fault != nil {
			return fault
		}
		taken[key] = true
		v, found := obj.Get(key)
		if !found {
			v = runtime.Undefined{}
		}
		if fault := e.bindPattern(env, fr, prop.Value, v, mode); fault != nil {
			return fault
		}
	}

	if p.Rest != nil {
		rest := runtime.NewObject()
		for _, k := range obj.Keys() {
			if taken[k] {
				continue
			}
			v, _ := obj.GetOwn(k)
			rest.Set(k, v)
		}
		if fault := e.bindPattern(env, fr, p.Rest.Argument, rest, mode); fault != nil {
			return fault
		}
	}
	return nil
}

func (e *Evaluator) patternPropertyKey(env *runtime.Environment, fr *frame, keyExpr ast.Expression, computed bool) (string, *diag.Fault) {
	if !computed {
		if id, ok := keyExpr.(*ast.Identifier); ok {
			return id.Name, nil
		}
	}
	v, fault := e.evalExpression(env, fr, keyExpr)
	if fault != nil {
		return "", fault
	}
	return runtime.ToString(v), nil
}

func (e *Evaluator) bindArrayPattern(env *runtime.Environment, fr *frame, p *ast.ArrayPattern, value runtime.Value, mode bindMode) *diag.Fault {
	elements, fault := e.iterableElements(p.Pos(), value)
	if fault != nil {
		return fault
	}

	for i, el := range p.Elements {
		if el == nil {
			continue // hole: skip this position
		}
		var v runtime.Value = runtime.Undefined{}
		if i < len(elements) {
			v = elements[i]
		}
		if fault := e.bindPattern(env, fr, el, v, mode); fault != nil {
			return fault
		}
	}

	if p.Rest != nil {
		start := len(p.Elements)
		var restElems []runtime.Value
		if start < len(elements) {
			restElems = append(restElems, elements[start:]...)
		}
		if fault := e.bindPattern(env, fr, p.Rest.Argument, runtime.NewArray(restElems...), mode); fault != nil {
			return fault
		}
	}
	return nil
}

// iterableElements extracts the sequence a for-of loop or array pattern
// iterates over. Strings iterate by UTF-8 rune; arrays iterate by element.
func (e *Evaluator) iterableElements(pos token.Position, value runtime.Value) ([]runtime.Value, *diag.Fault) {
	switch v := value.(type) {
	case *runtime.Array:
		return v.Elements, nil
	case runtime.String:
		runes := []rune(string(v))
		out := make([]runtime.Value, len(runes))
		for i, r := range runes {
			out[i] = runtime.String(string(r))
		}
		return out, nil
	default:
		return nil, diag.New(diag.TypeError, pos, "value is not iterable")
	}
}

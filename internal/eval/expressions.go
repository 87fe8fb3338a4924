package eval

import (
	"strconv"

	"github.com/cwbudde/ember/internal/ast"
	"github.com/cwbudde/ember/internal/diag"
	"github.com/cwbudde/ember/internal/runtime"
	"github.com/cwbudde/ember/internal/token"
)

// evalExpression evaluates node and returns its value, or a fault if
// evaluation could not complete. Faults produced here are converted to a
// catchable throw signal by the nearest enclosing statement, via
// Evaluator.throwFault.
func (e *Evaluator) evalExpression(env *runtime.Environment, fr *frame, node ast.Expression) (runtime.Value, *diag.Fault) {
	switch n := node.(type) {
	case *ast.Literal:
		return literalValue(n), nil

	case *ast.Identifier:
		if v, ok := env.Lookup(n.Name); ok {
			return v, nil
		}
		return nil, diag.New(diag.ReferenceError, n.Pos(), "undefined variable: %s", n.Name)

	case *ast.ThisExpression:
		if fr.this == nil {
			return runtime.Undefined{}, nil
		}
		return fr.this, nil

	case *ast.TemplateLiteral:
		return e.evalTemplateLiteral(env, fr, n)

	case *ast.UnaryExpression:
		return e.evalUnary(env, fr, n)

	case *ast.UpdateExpression:
		return e.evalUpdate(env, fr, n)

	case *ast.BinaryExpression:
		l, fault := e.evalExpression(env, fr, n.Left)
		if fault != nil {
			return nil, fault
		}
		r, fault := e.evalExpression(env, fr, n.Right)
		if fault != nil {
			return nil, fault
		}
		return applyBinaryOp(n.Operator, l, r, n.Pos())

	case *ast.LogicalExpression:
		return e.evalLogical(env, fr, n)

	case *ast.ConditionalExpression:
		test, fault := e.evalExpression(env, fr, n.Test)
		if fault != nil {
			return nil, fault
		}
		if runtime.Truthy(test) {
			return e.evalExpression(env, fr, n.Consequent)
		}
		return e.evalExpression(env, fr, n.Alternate)

	case *ast.SequenceExpression:
		var last runtime.Value = runtime.Undefined{}
		for _, sub := range n.Expressions {
			v, fault := e.evalExpression(env, fr, sub)
			if fault != nil {
				return nil, fault
			}
			last = v
		}
		return last, nil

	case *ast.AssignmentExpression:
		return e.evalAssignment(env, fr, n)

	case *ast.ArrayExpression:
		return e.evalArrayExpression(env, fr, n)

	case *ast.ObjectExpression:
		return e.evalObjectExpression(env, fr, n)

	case *ast.FunctionExpression:
		name := ""
		if n.Name != nil {
			name = n.Name.Name
		}
		return runtime.NewFunction(env, name, n.Params, n.Body, n.IsAsync), nil

	case *ast.ArrowFunctionExpression:
		return e.evalArrowFunction(env, fr, n)

	case *ast.ClassExpression:
		name := ""
		if n.Name != nil {
			name = n.Name.Name
		}
		return e.evalClassBody(env, fr, name, n.SuperClass, n.Body)

	case *ast.NewExpression:
		return e.evalNewExpression(env, fr, n)

	case *ast.AwaitExpression:
		return e.evalAwait(env, fr, n)

	case *ast.ChainExpression:
		v, _, fault := e.evalChainable(env, fr, n.Expression)
		return v, fault

	case *ast.MemberExpression:
		v, _, fault := e.evalChainable(env, fr, n)
		return v, fault

	case *ast.CallExpression:
		v, _, fault := e.evalChainable(env, fr, n)
		return v, fault

	case *ast.Super:
		return nil, diag.New(diag.SyntaxError, n.Pos(), "'super' keyword is only valid in a method body or call")

	default:
		return nil, diag.New(diag.Unsupported, node.Pos(), "unsupported expression")
	}
}

func literalValue(l *ast.Literal) runtime.Value {
	switch l.Kind {
	case ast.LitNumber:
		return runtime.Number(l.Num)
	case ast.LitString:
		return runtime.String(l.Str)
	case ast.LitBool:
		return runtime.Bool(l.Bool)
	case ast.LitNull:
		return runtime.Null{}
	default:
		return runtime.Undefined{}
	}
}

func (e *Evaluator) evalLogical(env *runtime.Environment, fr *frame, n *ast.LogicalExpression) (runtime.Value, *diag.Fault) {
	l, fault := e.evalExpression(env, fr, n.Left)
	if fault != nil {
		return nil, fault
	}
	switch n.Operator {
	case "&&":
		if !runtime.Truthy(l) {
			return l, nil
		}
	case "||":
		if runtime.Truthy(l) {
			return l, nil
		}
	case "??":
		if !runtime.IsNullish(l) {
			return l, nil
		}
	}
	return e.evalExpression(env, fr, n.Right)
}

func (e *Evaluator) evalUnary(env *runtime.Environment, fr *frame, n *ast.UnaryExpression) (runtime.Value, *diag.Fault) {
	if n.Operator == "typeof" {
		if id, ok := n.Argument.(*ast.Identifier); ok {
			if v, found := env.Lookup(id.Name); found {
				return runtime.String(v.TypeName()), nil
			}
			return runtime.String("undefined"), nil
		}
	}
	v, fault := e.evalExpression(env, fr, n.Argument)
	if fault != nil {
		return nil, fault
	}
	switch n.Operator {
	case "!":
		return runtime.Bool(!runtime.Truthy(v)), nil
	case "-":
		return runtime.Number(-runtime.ToNumber(v)), nil
	case "+":
		return runtime.Number(runtime.ToNumber(v)), nil
	case "typeof":
		return runtime.String(v.TypeName()), nil
	default:
		return nil, diag.New(diag.Unsupported, n.Pos(), "unsupported unary operator %s", n.Operator)
	}
}

func (e *Evaluator) evalUpdate(env *runtime.Environment, fr *frame, n *ast.UpdateExpression) (runtime.Value, *diag.Fault) {
	lv, fault := e.resolveTarget(env, fr, n.Argument)
	if fault != nil {
		return nil, fault
	}
	cur, fault := lv.read(env)
	if fault != nil {
		return nil, fault
	}
	old := runtime.ToNumber(cur)
	delta := 1.0
	if n.Operator == "--" {
		delta = -1
	}
	updated := runtime.Number(old + delta)
	if fault := lv.write(env, updated); fault != nil {
		return nil, fault
	}
	if n.Prefix {
		return updated, nil
	}
	return runtime.Number(old), nil
}

func (e *Evaluator) evalAssignment(env *runtime.Environment, fr *frame, n *ast.AssignmentExpression) (runtime.Value, *diag.Fault) {
	switch n.Operator {
	case "=":
		val, fault := e.evalExpression(env, fr, n.Value)
		if fault != nil {
			return nil, fault
		}
		if fault := e.assignTo(env, fr, n.Target, val); fault != nil {
			return nil, fault
		}
		return val, nil

	case "&&=", "||=", "??=":
		lv, fault := e.resolveAssignmentTarget(env, fr, n.Target)
		if fault != nil {
			return nil, fault
		}
		cur, fault := lv.read(env)
		if fault != nil {
			return nil, fault
		}
		switch n.Operator {
		case "&&=":
			if !runtime.Truthy(cur) {
				return cur, nil
			}
		case "||=":
			if runtime.Truthy(cur) {
				return cur, nil
			}
		case "??=":
			if !runtime.IsNullish(cur) {
				return cur, nil
			}
		}
		val, fault := e.evalExpression(env, fr, n.Value)
		if fault != nil {
			return nil, fault
		}
		if fault := lv.write(env, val); fault != nil {
			return nil, fault
		}
		return val, nil

	default:
		lv, fault := e.resolveAssignmentTarget(env, fr, n.Target)
		if fault != nil {
			return nil, fault
		}
		cur, fault := lv.read(env)
		if fault != nil {
			return nil, fault
		}
		rhs, fault := e.evalExpression(env, fr, n.Value)
		if fault != nil {
			return nil, fault
		}
		result, fault := applyBinaryOp(compoundOp(n.Operator), cur, rhs, n.Pos())
		if fault != nil {
			return nil, fault
		}
		if fault := lv.write(env, result); fault != nil {
			return nil, fault
		}
		return result, nil
	}
}

// lvalue is a resolved read-modify-write target: for a member target the
// receiver and key are evaluated exactly once, so `getObj().x += 1` runs
// getObj() a single time.
type lvalue struct {
	name string        // identifier target; "" for a member target
	obj  runtime.Value // member target receiver
	key  string
	pos  token.Position
}

func (e *Evaluator) resolveTarget(env *runtime.Environment, fr *frame, target ast.Expression) (*lvalue, *diag.Fault) {
	switch t := target.(type) {
	case *ast.Identifier:
		return &lvalue{name: t.Name, pos: t.Pos()}, nil

	case *ast.MemberExpression:
		var objVal runtime.Value
		if _, isSuper := t.Object.(*ast.Super); isSuper {
			objVal = fr.this
		} else {
			v, fault := e.evalExpression(env, fr, t.Object)
			if fault != nil {
				return nil, fault
			}
			objVal = v
		}
		key, fault := e.memberKey(env, fr, t)
		if fault != nil {
			return nil, fault
		}
		return &lvalue{obj: objVal, key: key, pos: t.Pos()}, nil

	default:
		return nil, diag.New(diag.SyntaxError, target.Pos(), "invalid assignment target")
	}
}

func (e *Evaluator) resolveAssignmentTarget(env *runtime.Environment, fr *frame, target ast.Node) (*lvalue, *diag.Fault) {
	expr, ok := target.(ast.Expression)
	if !ok {
		return nil, diag.New(diag.SyntaxError, target.Pos(), "invalid assignment target")
	}
	return e.resolveTarget(env, fr, expr)
}

func (lv *lvalue) read(env *runtime.Environment) (runtime.Value, *diag.Fault) {
	if lv.name != "" {
		if v, ok := env.Lookup(lv.name); ok {
			return v, nil
		}
		return nil, diag.New(diag.ReferenceError, lv.pos, "undefined variable: %s", lv.name)
	}
	return getProperty(lv.obj, lv.key, lv.pos)
}

func (lv *lvalue) write(env *runtime.Environment, val runtime.Value) *diag.Fault {
	if lv.name != "" {
		if !env.Assign(lv.name, val) {
			return diag.New(diag.ReferenceError, lv.pos, "undefined variable: %s", lv.name)
		}
		return nil
	}
	return setProperty(lv.obj, lv.key, val, lv.pos)
}

func (e *Evaluator) assignTo(env *runtime.Environment, fr *frame, target ast.Node, val runtime.Value) *diag.Fault {
	switch t := target.(type) {
	case *ast.Identifier:
		if !env.Assign(t.Name, val) {
			return diag.New(diag.ReferenceError, t.Pos(), "undefined variable: %s", t.Name)
		}
		return nil

	case *ast.MemberExpression:
		var objVal runtime.Value
		if _, isSuper := t.Object.(*ast.Super); isSuper {
			objVal = fr.this
		} else {
			v, fault := e.evalExpression(env, fr, t.Object)
			if fault != nil {
				return fault
			}
			objVal = v
		}
		key, fault := e.memberKey(env, fr, t)
		if fault != nil {
			return fault
		}
		return setProperty(objVal, key, val, t.Pos())

	case *ast.ObjectPattern:
		return e.bindPattern(env, fr, t, val, bindAssign)
	case *ast.ArrayPattern:
		return e.bindPattern(env, fr, t, val, bindAssign)

	default:
		return diag.New(diag.SyntaxError, target.Pos(), "invalid assignment target")
	}
}

func (e *Evaluator) memberKey(env *runtime.Environment, fr *frame, n *ast.MemberExpression) (string, *diag.Fault) {
	if !n.Computed {
		if id, ok := n.Property.(*ast.Identifier); ok {
			return id.Name, nil
		}
	}
	v, fault := e.evalExpression(env, fr, n.Property)
	if fault != nil {
		return "", fault
	}
	return runtime.ToString(v), nil
}

func arrayIndex(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func getProperty(obj runtime.Value, key string, pos token.Position) (runtime.Value, *diag.Fault) {
	switch v := obj.(type) {
	case *runtime.Object:
		if mv, ok := v.Get(key); ok {
			return mv, nil
		}
		if v.Class != nil {
			if m, _ := v.Class.LookupMethod(key); m != nil {
				return m.WithReceiver(v), nil
			}
		}
		return runtime.Undefined{}, nil

	case *runtime.Array:
		if key == "length" {
			return runtime.Number(len(v.Elements)), nil
		}
		if idx, ok := arrayIndex(key); ok {
			if idx < len(v.Elements) {
				return v.Elements[idx], nil
			}
			return runtime.Undefined{}, nil
		}
		return runtime.Undefined{}, nil

	case runtime.String:
		runes := []rune(string(v))
		if key == "length" {
			return runtime.Number(len(runes)), nil
		}
		if idx, ok := arrayIndex(key); ok {
			if idx < len(runes) {
				return runtime.String(string(runes[idx])), nil
			}
			return runtime.Undefined{}, nil
		}
		return runtime.Undefined{}, nil

	case *runtime.Class:
		if m, ok := v.LookupStatic(key); ok {
			return m, nil
		}
		if key == "name" {
			return runtime.String(v.Name), nil
		}
		return runtime.Undefined{}, nil

	case *runtime.ErrorValue:
		switch key {
		case "message":
			return runtime.String(v.Message), nil
		case "name":
			return runtime.String(v.Kind), nil
		}
		return runtime.Undefined{}, nil

	case runtime.Undefined, runtime.Null:
		return nil, diag.New(diag.TypeError, pos, "cannot read properties of %s", runtime.ToString(obj))

	default:
		return runtime.Undefined{}, nil
	}
}

func setProperty(obj runtime.Value, key string, val runtime.Value, pos token.Position) *diag.Fault {
	switch v := obj.(type) {
	case *runtime.Object:
		v.Set(key, val)
		return nil
	case *runtime.Array:
		if key == "length" {
			n := int(runtime.ToNumber(val))
			if n < 0 {
				n = 0
			}
			if n < len(v.Elements) {
				v.Elements = v.Elements[:n]
			} else {
				for len(v.Elements) < n {
					v.Elements = append(v.Elements, runtime.Undefined{})
				}
			}
			return nil
		}
		if idx, ok := arrayIndex(key); ok {
			for idx >= len(v.Elements) {
				v.Elements = append(v.Elements, runtime.Undefined{})
			}
			v.Elements[idx] = val
			return nil
		}
		return nil
	case runtime.Undefined, runtime.Null:
		return diag.New(diag.TypeError, pos, "cannot set properties of %s", runtime.ToString(obj))
	default:
		return diag.New(diag.TypeError, pos, "cannot set properties of %s", runtime.ToString(obj))
	}
}

func (e *Evaluator) evalArguments(env *runtime.Environment, fr *frame, args []ast.Expression) ([]runtime.Value, *diag.Fault) {
	var out []runtime.Value
	for _, a := range args {
		if spread, ok := a.(*ast.SpreadElement); ok {
			v, fault := e.evalExpression(env, fr, spread.Argument)
			if fault != nil {
				return nil, fault
			}
			elems, fault := e.iterableElements(spread.Pos(), v)
			if fault != nil {
				return nil, fault
			}
			out = append(out, elems...)
			continue
		}
		v, fault := e.evalExpression(env, fr, a)
		if fault != nil {
			return nil, fault
		}
		out = append(out, v)
	}
	return out, nil
}

// evalChainable evaluates a MemberExpression or CallExpression that may
// participate in an optional chain, propagating a "shorted" flag: once
// any `?.` link along the chain sees a nullish object/callee, every
// further link is skipped and the whole chain evaluates to undefined,
// matching the host language's optional-chaining short-circuit.
func (e *Evaluator) evalChainable(env *runtime.Environment, fr *frame, node ast.Expression) (runtime.Value, bool, *diag.Fault) {
	switch n := node.(type) {
	case *ast.ChainExpression:
		// A nested chain wrapper inside a longer chain keeps the shorted
		// flag flowing; only the outermost evalExpression case strips it.
		return e.evalChainable(env, fr, n.Expression)

	case *ast.MemberExpression:
		if _, isSuper := n.Object.(*ast.Super); isSuper {
			if fr.home == nil || fr.home.Super == nil {
				return nil, false, diag.New(diag.TypeError, n.Pos(), "'super' used in a class with no superclass")
			}
			key, fault := e.memberKey(env, fr, n)
			if fault != nil {
				return nil, false, fault
			}
			m, _ := fr.home.Super.LookupMethod(key)
			if m == nil {
				return nil, false, diag.New(diag.TypeError, n.Pos(), "%s has no method %s", fr.home.Super.Name, key)
			}
			return m.WithReceiver(fr.this), false, nil
		}

		objVal, shorted, fault := e.evalChainable(env, fr, n.Object)
		if fault != nil {
			return nil, false, fault
		}
		if shorted {
			return runtime.Undefined{}, true, nil
		}
		if n.Optional && runtime.IsNullish(objVal) {
			return runtime.Undefined{}, true, nil
		}
		key, fault := e.memberKey(env, fr, n)
		if fault != nil {
			return nil, false, fault
		}
		val, fault := getProperty(objVal, key, n.Pos())
		return val, false, fault

	case *ast.CallExpression:
		return e.evalCallExpression(env, fr, n)

	default:
		v, fault := e.evalExpression(env, fr, node)
		return v, false, fault
	}
}

func (e *Evaluator) evalCallExpression(env *runtime.Environment, fr *frame, n *ast.CallExpression) (runtime.Value, bool, *diag.Fault) {
	// Unwrap a chain-wrapped callee so `a?.b()` still dispatches as a
	// method call on a (receiver preserved) instead of as a bare value.
	callee := n.Callee
	if ch, ok := callee.(*ast.ChainExpression); ok {
		callee = ch.Expression
	}

	if _, ok := callee.(*ast.Super); ok {
		if fr.home == nil || fr.home.Super == nil {
			return nil, false, diag.New(diag.TypeError, n.Pos(), "'super' called in a class with no superclass")
		}
		args, fault := e.evalArguments(env, fr, n.Arguments)
		if fault != nil {
			return nil, false, fault
		}
		v, fault := e.invokeConstructor(fr.home.Super, fr.this, args, n.Pos())
		return v, false, fault
	}

	if mem, ok := callee.(*ast.MemberExpression); ok {
		if _, isSuper := mem.Object.(*ast.Super); isSuper {
			key, fault := e.memberKey(env, fr, mem)
			if fault != nil {
				return nil, false, fault
			}
			if fr.home == nil || fr.home.Super == nil {
				return nil, false, diag.New(diag.TypeError, mem.Pos(), "'super' used in a class with no superclass")
			}
			m, home := fr.home.Super.LookupMethod(key)
			if m == nil {
				return nil, false, diag.New(diag.TypeError, mem.Pos(), "%s has no method %s", fr.home.Super.Name, key)
			}
			args, fault := e.evalArguments(env, fr, n.Arguments)
			if fault != nil {
				return nil, false, fault
			}
			v, fault := e.callFunction(m, fr.this, home, args, n.Pos())
			return v, false, fault
		}

		objVal, shorted, fault := e.evalChainable(env, fr, mem.Object)
		if fault != nil {
			return nil, false, fault
		}
		if shorted {
			return runtime.Undefined{}, true, nil
		}
		if mem.Optional && runtime.IsNullish(objVal) {
			return runtime.Undefined{}, true, nil
		}
		key, fault := e.memberKey(env, fr, mem)
		if fault != nil {
			return nil, false, fault
		}
		calleeVal, fault := getProperty(objVal, key, mem.Pos())
		if fault != nil {
			return nil, false, fault
		}
		if n.Optional && runtime.IsNullish(calleeVal) {
			return runtime.Undefined{}, true, nil
		}
		args, fault := e.evalArguments(env, fr, n.Arguments)
		if fault != nil {
			return nil, false, fault
		}
		v, fault := e.callValue(calleeVal, objVal, args, n.Pos())
		return v, false, fault
	}

	calleeVal, shorted, fault := e.evalChainable(env, fr, callee)
	if fault != nil {
		return nil, false, fault
	}
	if shorted {
		return runtime.Undefined{}, true, nil
	}
	if n.Optional && runtime.IsNullish(calleeVal) {
		return runtime.Undefined{}, true, nil
	}
	args, fault := e.evalArguments(env, fr, n.Arguments)
	if fault != nil {
		return nil, false, fault
	}
	v, fault := e.callValue(calleeVal, runtime.Undefined{}, args, n.Pos())
	return v, false, fault
}

func (e *Evaluator) evalNewExpression(env *runtime.Environment, fr *frame, n *ast.NewExpression) (runtime.Value, *diag.Fault) {
	calleeVal, fault := e.evalExpression(env, fr, n.Callee)
	if fault != nil {
		return nil, fault
	}
	class, ok := calleeVal.(*runtime.Class)
	if !ok {
		return nil, diag.New(diag.TypeError, n.Pos(), "%s is not a constructor", runtime.ToString(calleeVal))
	}
	args, fault := e.evalArguments(env, fr, n.Arguments)
	if fault != nil {
		return nil, fault
	}
	return e.constructInstance(class, args, n.Pos())
}

func (e *Evaluator) evalArrayExpression(env *runtime.Environment, fr *frame, n *ast.ArrayExpression) (runtime.Value, *diag.Fault) {
	var elements []runtime.Value
	for _, el := range n.Elements {
		if el == nil {
			elements = append(elements, runtime.Undefined{})
			continue
		}
		if spread, ok := el.(*ast.SpreadElement); ok {
			v, fault := e.evalExpression(env, fr, spread.Argument)
			if fault != nil {
				return nil, fault
			}
			items, fault := e.iterableElements(spread.Pos(), v)
			if fault != nil {
				return nil, fault
			}
			elements = append(elements, items...)
			continue
		}
		v, fault := e.evalExpression(env, fr, el)
		if fault != nil {
			return nil, fault
		}
		elements = append(elements, v)
	}
	return runtime.NewArray(elements...), nil
}

func (e *Evaluator) evalObjectExpression(env *runtime.Environment, fr *frame, n *ast.ObjectExpression) (runtime.Value, *diag.Fault) {
	obj := runtime.NewObject()
	for _, prop := range n.Properties {
		if prop.Spread {
			v, fault := e.evalExpression(env, fr, prop.Value)
			if fault != nil {
				return nil, fault
			}
			switch src := v.(type) {
			case *runtime.Object:
				for _, k := range src.Keys() {
					pv, _ := src.GetOwn(k)
					obj.Set(k, pv)
				}
			case *runtime.Array:
				for i, el := range src.Elements {
					obj.Set(strconv.Itoa(i), el)
				}
			case runtime.String:
				for i, r := range []rune(string(src)) {
					obj.Set(strconv.Itoa(i), runtime.String(string(r)))
				}
			}
			// Any other value (number, boolean, nullish) spreads to nothing.
			continue
		}
		key, fault := e.patternPropertyKey(env, fr, prop.Key, prop.Computed)
		if fault != nil {
			return nil, fault
		}
		v, fault := e.evalExpression(env, fr, prop.Value)
		if fault != nil {
			return nil, fault
		}
		obj.Set(key, v)
	}
	return obj, nil
}

func (e *Evaluator) evalArrowFunction(env *runtime.Environment, fr *frame, n *ast.ArrowFunctionExpression) (runtime.Value, *diag.Fault) {
	body := n.Body
	if body == nil {
		// Expression-bodied arrow: desugar to a single implicit return so
		// the call path (runStatementsInEnv over fn.Body.Body) stays uniform.
		body = ast.NewBlockStatement(n.Pos())
		body.Body = []ast.Statement{ast.NewReturnStatement(n.ExprBody.Pos(), n.ExprBody)}
	}
	fn := runtime.NewFunction(env, "", n.Params, body, n.IsAsync)
	// Arrow functions do not rebind `this`: capture the enclosing frame's
	// receiver so the body sees the same `this` (and `super`) as its
	// surrounding scope, not a new one supplied by however it's called.
	if fr.this != nil {
		fn.Bound = fr.this
	}
	fn.Home = fr.home
	return fn, nil
}

func (e *Evaluator) evalAwait(env *runtime.Environment, fr *frame, n *ast.AwaitExpression) (runtime.Value, *diag.Fault) {
	v, fault := e.evalExpression(env, fr, n.Argument)
	if fault != nil {
		return nil, fault
	}
	p, ok := v.(*runtime.Promise)
	if !ok {
		return v, nil
	}
	switch p.State() {
	case runtime.Fulfilled:
		return p.Result(), nil
	case runtime.Rejected:
		return nil, &diag.Fault{Kind: diag.UserThrown, Message: runtime.ToString(p.Result()), Pos: n.Pos(), HasPos: true, Payload: p.Result()}
	default:
		return nil, diag.New(diag.Unsupported, n.Pos(), "awaiting a promise that never settled synchronously")
	}
}

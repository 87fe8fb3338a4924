package eval

import (
	"strconv"

	"github.com/cwbudde/ember/internal/ast"
	"github.com/cwbudde/ember/internal/diag"
	"github.com/cwbudde/ember/internal/runtime"
)

// evalStatement executes one statement, returning the control-flow signal
// it produced (runtime.None on normal completion) and — for an
// ExpressionStatement only — the value the expression produced, which
// RunProgram surfaces as the "last value" a REPL prints.
func (e *Evaluator) evalStatement(env *runtime.Environment, fr *frame, stmt ast.Statement) (runtime.Signal, runtime.Value) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		v, fault := e.evalExpression(env, fr, s.Expr)
		if fault != nil {
			return e.throwFault(fault), nil
		}
		return runtime.None, v

	case *ast.BlockStatement:
		return e.runBlockNewScope(env, fr, s)

	case *ast.VariableDeclaration:
		return e.evalVariableDeclaration(env, fr, s), nil

	case *ast.FunctionDeclaration:
		fn := runtime.NewFunction(env, s.Name.Name, s.Params, s.Body, s.IsAsync)
		env.Define(s.Name.Name, fn)
		return runtime.None, nil

	case *ast.ClassDeclaration:
		class, fault := e.evalClassBody(env, fr, s.Name.Name, s.SuperClass, s.Body)
		if fault != nil {
			return e.throwFault(fault), nil
		}
		env.Define(s.Name.Name, class)
		return runtime.None, nil

	case *ast.ReturnStatement:
		var v runtime.Value = runtime.Undefined{}
		if s.Argument != nil {
			val, fault := e.evalExpression(env, fr, s.Argument)
			if fault != nil {
				return e.throwFault(fault), nil
			}
			v = val
		}
		return runtime.Signal{Kind: runtime.SigReturn, Value: v}, nil

	case *ast.BreakStatement:
		return runtime.Signal{Kind: runtime.SigBreak, Label: s.Label}, nil

	case *ast.ContinueStatement:
		return runtime.Signal{Kind: runtime.SigContinue, Label: s.Label}, nil

	case *ast.ThrowStatement:
		v, fault := e.evalExpression(env, fr, s.Argument)
		if fault != nil {
			return e.throwFault(fault), nil
		}
		return runtime.Signal{Kind: runtime.SigThrow, Value: v}, nil

	case *ast.IfStatement:
		test, fault := e.evalExpression(env, fr, s.Test)
		if fault != nil {
			return e.throwFault(fault), nil
		}
		if runtime.Truthy(test) {
			return e.evalStatement(env, fr, s.Consequent)
		}
		if s.Alternate != nil {
			return e.evalStatement(env, fr, s.Alternate)
		}
		return runtime.None, nil

	case *ast.WhileStatement:
		return e.evalWhile(env, fr, s, "")

	case *ast.ForStatement:
		return e.evalFor(env, fr, s, "")

	case *ast.ForInStatement:
		return e.evalForIn(env, fr, s, "")

	case *ast.ForOfStatement:
		return e.evalForOf(env, fr, s, "")

	case *ast.SwitchStatement:
		return e.evalSwitch(env, fr, s)

	case *ast.TryStatement:
		return e.evalTry(env, fr, s)

	case *ast.LabeledStatement:
		return e.evalLabeled(env, fr, s)

	default:
		return e.throwFault(diag.New(diag.Unsupported, stmt.Pos(), "unsupported statement")), nil
	}
}

// runStatementsInEnv executes stmts directly in env, without introducing a
// further child scope — used for a function's activation environment,
// where the parameter bindings already define the function body's scope.
// Besides the control-flow signal, it returns the last ExpressionStatement
// value produced (mirroring RunProgram's "last value" bookkeeping at the
// top level), so a block or switch body can hand its final expression's
// value up to whatever evaluates it.
func (e *Evaluator) runStatementsInEnv(env *runtime.Environment, fr *frame, stmts []ast.Statement) (runtime.Signal, runtime.Value) {
	var last runtime.Value
	for _, stmt := range stmts {
		sig, v := e.evalStatement(env, fr, stmt)
		if v != nil {
			last = v
		}
		if !sig.IsNone() {
			return sig, last
		}
	}
	return runtime.None, last
}

// runBlockNewScope introduces a child environment for a `{ ... }` block —
// every block, including loop bodies and if-arms, gets its own scope.
func (e *Evaluator) runBlockNewScope(env *runtime.Environment, fr *frame, block *ast.BlockStatement) (runtime.Signal, runtime.Value) {
	child := env.NewChild()
	defer child.Release()
	return e.runStatementsInEnv(child, fr, block.Body)
}

func (e *Evaluator) evalVariableDeclaration(env *runtime.Environment, fr *frame, decl *ast.VariableDeclaration) runtime.Signal {
	for _, d := range decl.Declarations {
		var v runtime.Value = runtime.Undefined{}
		if d.Init != nil {
			val, fault := e.evalExpression(env, fr, d.Init)
			if fault != nil {
				return e.throwFault(fault)
			}
			v = val
		}
		if fault := e.bindPattern(env, fr, d.Target, v, bindDefine); fault != nil {
			return e.throwFault(fault)
		}
	}
	return runtime.None
}

func (e *Evaluator) evalWhile(env *runtime.Environment, fr *frame, ws *ast.WhileStatement, label string) (runtime.Signal, runtime.Value) {
	for {
		test, fault := e.evalExpression(env, fr, ws.Test)
		if fault != nil {
			return e.throwFault(fault), nil
		}
		if !runtime.Truthy(test) {
			return runtime.None, nil
		}
		iter := env.NewChild()
		sig, _ := e.evalStatement(iter, fr, ws.Body)
		iter.Release()

		switch sig.Kind {
		case runtime.SigBreak:
			if sig.Matches(label) {
				return runtime.None, nil
			}
			return sig, nil
		case runtime.SigContinue:
			if sig.Matches(label) {
				continue
			}
			return sig, nil
		case runtime.SigReturn, runtime.SigThrow:
			return sig, nil
		}
	}
}

func (e *Evaluator) evalFor(env *runtime.Environment, fr *frame, fs *ast.ForStatement, label string) (runtime.Signal, runtime.Value) {
	cur := env.NewChild()

	if fs.Init != nil {
		switch init := fs.Init.(type) {
		case *ast.VariableDeclaration:
			if sig := e.evalVariableDeclaration(cur, fr, init); !sig.IsNone() {
				cur.Release()
				return sig, nil
			}
		case ast.Expression:
			if _, fault := e.evalExpression(cur, fr, init); fault != nil {
				cur.Release()
				return e.throwFault(fault), nil
			}
		}
	}

	for {
		if fs.Test != nil {
			test, fault := e.evalExpression(cur, fr, fs.Test)
			if fault != nil {
				cur.Release()
				return e.throwFault(fault), nil
			}
			if !runtime.Truthy(test) {
				break
			}
		}

		bodyEnv := cur.NewChild()
		sig, _ := e.evalStatement(bodyEnv, fr, fs.Body)
		bodyEnv.Release()

		switch sig.Kind {
		case runtime.SigBreak:
			cur.Release()
			if sig.Matches(label) {
				return runtime.None, nil
			}
			return sig, nil
		case runtime.SigContinue:
			if !sig.Matches(label) {
				cur.Release()
				return sig, nil
			}
		case runtime.SigReturn, runtime.SigThrow:
			cur.Release()
			return sig, nil
		}

		next := env.NewChild()
		cur.ForEachOwn(func(name string, v runtime.Value) { next.Define(name, v) })
		cur.Release()
		cur = next

		if fs.Update != nil {
			if _, fault := e.evalExpression(cur, fr, fs.Update); fault != nil {
				cur.Release()
				return e.throwFault(fault), nil
			}
		}
	}

	cur.Release()
	return runtime.None, nil
}

func (e *Evaluator) evalForIn(env *runtime.Environment, fr *frame, fs *ast.ForInStatement, label string) (runtime.Signal, runtime.Value) {
	rightVal, fault := e.evalExpression(env, fr, fs.Right)
	if fault != nil {
		return e.throwFault(fault), nil
	}

	// Enumerable string keys: own-then-inherited keys for objects, index
	// keys for arrays and strings.
	var keys []string
	switch src := rightVal.(type) {
	case *runtime.Object:
		keys = src.OwnAndInheritedKeys()
	case *runtime.Array:
		for i := range src.Elements {
			keys = append(keys, strconv.Itoa(i))
		}
	case runtime.String:
		for i := range []rune(string(src)) {
			keys = append(keys, strconv.Itoa(i))
		}
	default:
		if runtime.IsNullish(rightVal) {
			return runtime.None, nil
		}
		return e.throwFault(diag.New(diag.TypeError, fs.Right.Pos(), "for...in requires an object")), nil
	}

	for _, key := range keys {
		iter := env.NewChild()
		mode := bindAssign
		if fs.LeftKind != "" {
			mode = bindDefine
		}
		if f := e.bindPattern(iter, fr, fs.Left, runtime.String(key), mode); f != nil {
			iter.Release()
			return e.throwFault(f), nil
		}
		sig, _ := e.evalStatement(iter, fr, fs.Body)
		iter.Release()

		if sig, stop := e.handleLoopSignal(sig, label); stop {
			return sig, nil
		} else if sig.Kind == runtime.SigBreak {
			return runtime.None, nil
		}
	}
	return runtime.None, nil
}

func (e *Evaluator) evalForOf(env *runtime.Environment, fr *frame, fs *ast.ForOfStatement, label string) (runtime.Signal, runtime.Value) {
	rightVal, fault := e.evalExpression(env, fr, fs.Right)
	if fault != nil {
		return e.throwFault(fault), nil
	}
	elements, fault := e.iterableElements(fs.Right.Pos(), rightVal)
	if fault != nil {
		return e.throwFault(fault), nil
	}

	for _, el := range elements {
		iter := env.NewChild()
		mode := bindAssign
		if fs.LeftKind != "" {
			mode = bindDefine
		}
		if f := e.bindPattern(iter, fr, fs.Left, el, mode); f != nil {
			iter.Release()
			return e.throwFault(f), nil
		}
		sig, _ := e.evalStatement(iter, fr, fs.Body)
		iter.Release()

		if sig, stop := e.handleLoopSignal(sig, label); stop {
			return sig, nil
		} else if sig.Kind == runtime.SigBreak {
			return runtime.None, nil
		}
	}
	return runtime.None, nil
}

// handleLoopSignal centralizes break/continue/return/throw handling for
// the simple (no per-iteration-environment-threading) loop forms.
// Returns (signal, true) when the caller should stop and propagate signal
// upward (return/throw, or an unmatched break/continue); a matched break
// comes back as (sig, false) with sig.Kind == SigBreak so the caller can
// tell "stop the loop, but don't propagate" apart from "keep iterating".
func (e *Evaluator) handleLoopSignal(sig runtime.Signal, label string) (runtime.Signal, bool) {
	switch sig.Kind {
	case runtime.SigBreak:
		if sig.Matches(label) {
			return sig, false
		}
		return sig, true
	case runtime.SigContinue:
		if sig.Matches(label) {
			return runtime.None, false
		}
		return sig, true
	case runtime.SigReturn, runtime.SigThrow:
		return sig, true
	default:
		return runtime.None, false
	}
}

func (e *Evaluator) evalSwitch(env *runtime.Environment, fr *frame, ss *ast.SwitchStatement) (runtime.Signal, runtime.Value) {
	disc, fault := e.evalExpression(env, fr, ss.Discriminant)
	if fault != nil {
		return e.throwFault(fault), nil
	}

	child := env.NewChild()
	defer child.Release()

	matchedIdx := -1
	defaultIdx := -1
	for i, c := range ss.Cases {
		if c.Test == nil {
			defaultIdx = i
			continue
		}
		tv, fault := e.evalExpression(child, fr, c.Test)
		if fault != nil {
			return e.throwFault(fault), nil
		}
		if runtime.StrictEquals(disc, tv) {
			matchedIdx = i
			break
		}
	}
	if matchedIdx == -1 {
		matchedIdx = defaultIdx
	}
	if matchedIdx == -1 {
		return runtime.None, nil
	}

	var last runtime.Value
	for i := matchedIdx; i < len(ss.Cases); i++ {
		for _, stmt := range ss.Cases[i].Consequent {
			sig, v := e.evalStatement(child, fr, stmt)
			if v != nil {
				last = v
			}
			switch sig.Kind {
			case runtime.SigBreak:
				if sig.Matches("") {
					return runtime.None, last
				}
				return sig, last
			case runtime.SigNone:
				continue
			default:
				return sig, last
			}
		}
	}
	return runtime.None, last
}

func (e *Evaluator) evalTry(env *runtime.Environment, fr *frame, ts *ast.TryStatement) (runtime.Signal, runtime.Value) {
	sig, last := e.runBlockNewScope(env, fr, ts.Block)

	if sig.Kind == runtime.SigThrow && ts.Handler != nil {
		catchEnv := env.NewChild()
		if ts.Handler.Param != nil {
			catchEnv.Define(ts.Handler.Param.Name, sig.Value)
		}
		sig, last = e.runStatementsInEnv(catchEnv, fr, ts.Handler.Body.Body)
		catchEnv.Release()
	}

	if ts.Finalizer != nil {
		finSig, _ := e.runBlockNewScope(env, fr, ts.Finalizer)
		if !finSig.IsNone() {
			return finSig, nil
		}
	}

	return sig, last
}

func (e *Evaluator) evalLabeled(env *runtime.Environment, fr *frame, ls *ast.LabeledStatement) (runtime.Signal, runtime.Value) {
	var sig runtime.Signal
	switch body := ls.Body.(type) {
	case *ast.WhileStatement:
		sig, _ = e.evalWhile(env, fr, body, ls.Label)
	case *ast.ForStatement:
		sig, _ = e.evalFor(env, fr, body, ls.Label)
	case *ast.ForInStatement:
		sig, _ = e.evalForIn(env, fr, body, ls.Label)
	case *ast.ForOfStatement:
		sig, _ = e.evalForOf(env, fr, body, ls.Label)
	default:
		sig, _ = e.evalStatement(env, fr, ls.Body)
		if sig.Kind == runtime.SigBreak && sig.Label == ls.Label {
			sig = runtime.None
		}
	}
	return sig, nil
}

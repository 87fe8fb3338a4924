package eval

import (
	"github.com/cwbudde/ember/internal/ast"
	"github.com/cwbudde/ember/internal/diag"
	"github.com/cwbudde/ember/internal/runtime"
	"github.com/cwbudde/ember/internal/token"
)

// evalClassBody builds a runtime Class from a class declaration/expression
// body: resolves the superclass (if any), then installs each method
// definition as a Function whose Home is this class, so `super` inside it
// always resolves relative to the class the method was written on.
func (e *Evaluator) evalClassBody(env *runtime.Environment, fr *frame, name string, superExpr ast.Expression, body []*ast.MethodDefinition) (*runtime.Class, *diag.Fault) {
	var super *runtime.Class
	if superExpr != nil {
		v, fault := e.evalExpression(env, fr, superExpr)
		if fault != nil {
			return nil, fault
		}
		sc, ok := v.(*runtime.Class)
		if !ok {
			return nil, diag.New(diag.TypeError, superExpr.Pos(), "superclass must be a class")
		}
		super = sc
	}

	class := runtime.NewClass(name, super)
	for _, m := range body {
		methodName := ""
		if m.Key != nil {
			methodName = m.Key.Name
		}
		fn := runtime.NewFunction(env, methodName, m.Function.Params, m.Function.Body, m.Function.IsAsync)
		fn.Home = class

		switch {
		case m.Kind == ast.MethodConstructor:
			class.InstallConstructor(fn)
		case m.Static:
			class.InstallStatic(methodName, fn)
		default:
			class.InstallMethod(methodName, fn)
		}
	}
	return class, nil
}

// invokeConstructor runs class's constructor against an already-allocated
// receiver. A class with no constructor of its own forwards args to its
// superclass's constructor (the implicit default constructor's only job);
// a class with neither a constructor nor a superclass is a no-op.
func (e *Evaluator) invokeConstructor(class *runtime.Class, this runtime.Value, args []runtime.Value, pos token.Position) (runtime.Value, *diag.Fault) {
	if class.Constructor == nil {
		if class.Super != nil {
			return e.invokeConstructor(class.Super, this, args, pos)
		}
		return runtime.Undefined{}, nil
	}
	return e.callFunction(class.Constructor, this, class, args, pos)
}

// constructInstance implements `new Class(...)`: allocate a plain object
// tagged with class, run its constructor chain against it, and yield the
// constructor's explicit object return if it made one, else the receiver.
func (e *Evaluator) constructInstance(class *runtime.Class, args []runtime.Value, pos token.Position) (runtime.Value, *diag.Fault) {
	instance := runtime.NewObject()
	instance.Class = class
	ret, fault := e.invokeConstructor(class, instance, args, pos)
	if fault != nil {
		return nil, fault
	}
	if obj, ok := ret.(*runtime.Object); ok {
		return obj, nil
	}
	return instance, nil
}

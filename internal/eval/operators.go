package eval

import (
	"math"
	"strings"

	"github.com/cwbudde/ember/internal/diag"
	"github.com/cwbudde/ember/internal/runtime"
	"github.com/cwbudde/ember/internal/token"
)

// applyBinaryOp implements every BinaryExpression operator. Comparison
// and arithmetic coercions follow the host language's mixed-type rules:
// `+` concatenates when either operand is a string, otherwise both sides
// coerce to number; `<`/`>`/`<=`/`>=` compare lexically when both sides
// are strings, numerically otherwise.
func applyBinaryOp(op string, l, r runtime.Value, pos token.Position) (runtime.Value, *diag.Fault) {
	switch op {
	case "+":
		_, lStr := l.(runtime.String)
		_, rStr := r.(runtime.String)
		if lStr || rStr {
			return runtime.String(runtime.ToString(l) + runtime.ToString(r)), nil
		}
		return runtime.Number(runtime.ToNumber(l) + runtime.ToNumber(r)), nil
	case "-":
		return runtime.Number(runtime.ToNumber(l) - runtime.ToNumber(r)), nil
	case "*":
		return runtime.Number(runtime.ToNumber(l) * runtime.ToNumber(r)), nil
	case "/":
		return runtime.Number(runtime.ToNumber(l) / runtime.ToNumber(r)), nil
	case "%":
		return runtime.Number(math.Mod(runtime.ToNumber(l), runtime.ToNumber(r))), nil
	case "**":
		return runtime.Number(math.Pow(runtime.ToNumber(l), runtime.ToNumber(r))), nil
	case "<", ">", "<=", ">=":
		return compare(op, l, r), nil
	case "==":
		return runtime.Bool(runtime.LooseEquals(l, r)), nil
	case "!=":
		return runtime.Bool(!runtime.LooseEquals(l, r)), nil
	case "===":
		return runtime.Bool(runtime.StrictEquals(l, r)), nil
	case "!==":
		return runtime.Bool(!runtime.StrictEquals(l, r)), nil
	case "instanceof":
		return instanceOf(l, r), nil
	default:
		return nil, diag.New(diag.Unsupported, pos, "unsupported operator %s", op)
	}
}

func compare(op string, l, r runtime.Value) runtime.Bool {
	ls, lok := l.(runtime.String)
	rs, rok := r.(runtime.String)
	if lok && rok {
		switch op {
		case "<":
			return runtime.Bool(ls < rs)
		case ">":
			return runtime.Bool(ls > rs)
		case "<=":
			return runtime.Bool(ls <= rs)
		default:
			return runtime.Bool(ls >= rs)
		}
	}
	lf, rf := runtime.ToNumber(l), runtime.ToNumber(r)
	switch op {
	case "<":
		return runtime.Bool(lf < rf)
	case ">":
		return runtime.Bool(lf > rf)
	case "<=":
		return runtime.Bool(lf <= rf)
	default:
		return runtime.Bool(lf >= rf)
	}
}

func instanceOf(l, r runtime.Value) runtime.Bool {
	target, ok := r.(*runtime.Class)
	if !ok {
		return false
	}
	obj, ok := l.(*runtime.Object)
	if !ok || obj.Class == nil {
		return false
	}
	return runtime.Bool(obj.Class.IsSubclassOf(target))
}

// compoundOp strips the trailing "=" from a compound assignment operator
// ("+=" -> "+"), used when desugaring `x += y` into `x = x + y`.
func compoundOp(op string) string {
	return strings.TrimSuffix(op, "=")
}

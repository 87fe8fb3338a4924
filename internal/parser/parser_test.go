package parser

import (
	"testing"

	"github.com/cwbudde/ember/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error for %q: %v", src, err)
	}
	return prog
}

func TestParseAcceptedForms(t *testing.T) {
	sources := []string{
		"let x = 1;",
		"const {a, b: c, ...rest} = source;",
		"let [first, , third, ...tail] = xs;",
		"function f(a, b, ...rest) { return a + b; }",
		"async function g() { return await h(); }",
		"let f = (a, b) => a + b;",
		"let g = x => ({value: x});",
		"let h = async () => { return 1; };",
		"class A { constructor(x) { this.x = x; } m() { return this.x; } static make() { return new A(0); } }",
		"class B extends A { m() { return super.m() + 1; } }",
		"for (let i = 0; i < 10; i++) { total += i; }",
		"for (let k in obj) { keys[keys.length] = k; }",
		"for (const v of xs) { sum += v; }",
		"outer: while (true) { break outer; }",
		"switch (x) { case 1: one(); break; default: other(); }",
		"try { risky(); } catch (e) { handle(e); } finally { cleanup(); }",
		"throw {code: 42};",
		"let s = `a ${b} c ${d + e} f`;",
		"let o = {a, b: 2, [key]: 3, m() { return 4; }, ...others};",
		"a?.b?.c();",
		"x ??= fallback; y &&= z; w ||= v;",
		"(a, b, c);",
		"x === y ? t : f;",
		"new Point(1, 2);",
		"typeof missing;",
		"i++; --j;",
		"f(...args, last);",
	}
	for _, src := range sources {
		mustParse(t, src)
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := mustParse(t, "1 + 2 * 3")
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	bin := stmt.Expr.(*ast.BinaryExpression)
	if bin.Operator != "+" {
		t.Fatalf("top operator = %q, want +", bin.Operator)
	}
	right := bin.Right.(*ast.BinaryExpression)
	if right.Operator != "*" {
		t.Fatalf("right operator = %q, want *", right.Operator)
	}
}

func TestParseExponentRightAssociative(t *testing.T) {
	prog := mustParse(t, "2 ** 3 ** 2")
	bin := prog.Body[0].(*ast.ExpressionStatement).Expr.(*ast.BinaryExpression)
	if _, ok := bin.Right.(*ast.BinaryExpression); !ok {
		t.Fatal("** must group to the right")
	}
}

func TestParseArrowVersusGrouping(t *testing.T) {
	prog := mustParse(t, "(a, b) => a + b")
	if _, ok := prog.Body[0].(*ast.ExpressionStatement).Expr.(*ast.ArrowFunctionExpression); !ok {
		t.Fatal("(a, b) => ... must parse as an arrow function")
	}

	prog = mustParse(t, "(a + b) * c")
	bin := prog.Body[0].(*ast.ExpressionStatement).Expr.(*ast.BinaryExpression)
	if bin.Operator != "*" {
		t.Fatalf("grouping parse gave top operator %q", bin.Operator)
	}
}

func TestParseDestructuringAssignmentTargets(t *testing.T) {
	prog := mustParse(t, "({a, b} = source);")
	assign := prog.Body[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression)
	if _, ok := assign.Target.(*ast.ObjectPattern); !ok {
		t.Fatalf("target is %T, want *ast.ObjectPattern", assign.Target)
	}

	prog = mustParse(t, "[x, y, ...rest] = xs;")
	assign = prog.Body[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpression)
	pat, ok := assign.Target.(*ast.ArrayPattern)
	if !ok {
		t.Fatalf("target is %T, want *ast.ArrayPattern", assign.Target)
	}
	if pat.Rest == nil {
		t.Fatal("rest element missing from array pattern")
	}
}

func TestParsePositions(t *testing.T) {
	prog := mustParse(t, "let x = 1;\nbad")
	id := prog.Body[1].(*ast.ExpressionStatement).Expr.(*ast.Identifier)
	if id.Pos().Line != 2 || id.Pos().Column != 1 {
		t.Fatalf("identifier position = %+v, want line 2 column 1", id.Pos())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src         string
		unsupported bool
	}{
		{"let {a = 1} = o;", true},
		{"let [a = 1] = xs;", true},
		{"function f(a = 1) {}", true},
		{"import thing from 'mod';", true},
		{"export let x = 1;", true},
		{"let x = ;", false},
		{"if (x { y(); }", false},
	}
	for _, tt := range tests {
		_, err := Parse(tt.src)
		if err == nil {
			t.Errorf("expected error parsing %q", tt.src)
			continue
		}
		serr, ok := err.(*SyntaxError)
		if !ok {
			t.Errorf("error for %q is %T, want *SyntaxError", tt.src, err)
			continue
		}
		if serr.Unsupported != tt.unsupported {
			t.Errorf("Unsupported flag for %q = %v, want %v", tt.src, serr.Unsupported, tt.unsupported)
		}
	}
}

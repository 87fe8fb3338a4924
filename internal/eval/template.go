package eval

import (
	"strings"

	"github.com/cwbudde/ember/internal/ast"
	"github.com/cwbudde/ember/internal/diag"
	"github.com/cwbudde/ember/internal/runtime"
)

// evalTemplateLiteral interleaves the literal text chunks (Quasis) with
// the stringified value of each interpolated expression. Quasis always
// has one more entry than Expressions, per the parser's contract.
func (e *Evaluator) evalTemplateLiteral(env *runtime.Environment, fr *frame, t *ast.TemplateLiteral) (runtime.Value, *diag.Fault) {
	var sb strings.Builder
	for i, quasi := range t.Quasis {
		sb.WriteString(quasi)
		if i < len(t.Expressions) {
			v, fault := e.evalExpression(env, fr, t.Expressions[i])
			if fault != nil {
				return nil, fault
			}
			sb.WriteString(runtime.ToString(v))
		}
	}
	return runtime.String(sb.String()), nil
}

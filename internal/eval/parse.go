package eval

import (
	"github.com/cwbudde/ember/internal/ast"
	"github.com/cwbudde/ember/internal/diag"
	"github.com/cwbudde/ember/internal/parser"
)

// parseSource is the evaluator's only dependency on internal/parser,
// isolated to one file so the rest of the package only ever deals in
// already-parsed ast.Program values. Parse errors for deliberately
// unimplemented forms (default values in patterns, module declarations)
// surface under the Unsupported kind; everything else is a SyntaxError.
func parseSource(source string) (*ast.Program, *diag.Diagnostic) {
	prog, err := parser.Parse(source)
	if err != nil {
		kind := diag.SyntaxError
		if serr, ok := err.(*parser.SyntaxError); ok && serr.Unsupported {
			kind = diag.Unsupported
		}
		return nil, &diag.Diagnostic{Kind: kind, Message: err.Error()}
	}
	return prog, nil
}

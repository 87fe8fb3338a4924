// Package diag formats runtime faults raised while walking the AST into
// caller-facing diagnostics: a kind, a message, and, when the fault
// carries a source position, a source window with a caret pointing at
// the faulting column.
package diag

import (
	"fmt"
	"strings"

	"github.com/cwbudde/ember/internal/token"
)

// Kind is the evaluator's error taxonomy; Unsupported is used for
// syntactic forms the evaluator deliberately does not implement.
type Kind string

const (
	ReferenceError Kind = "ReferenceError"
	TypeError      Kind = "TypeError"
	SyntaxError    Kind = "SyntaxError"
	RangeError     Kind = "RangeError"
	Unsupported    Kind = "Unsupported"
	UserThrown     Kind = "UserThrown"
)

// Fault is a raw runtime error, not yet formatted with source context.
// Evaluator code raises *Fault values; diag.Format wraps them for the
// caller once they bubble out of a statement.
type Fault struct {
	Kind    Kind
	Message string
	Pos     token.Position
	HasPos  bool
	Payload any // for UserThrown, the thrown value
}

func (f *Fault) Error() string {
	if f == nil {
		return "<nil fault>"
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// New creates a positioned fault.
func New(kind Kind, pos token.Position, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos, HasPos: true}
}

// NewUnpositioned creates a fault with no source coordinates — used for
// faults raised outside statement-level evaluation (e.g. by a promise
// callback that has lost its originating AST node).
func NewUnpositioned(kind Kind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Diagnostic is a fault after formatting: Message is the fully rendered,
// multi-line diagnostic text (kind, message, source window, caret).
type Diagnostic struct {
	Kind    Kind
	Message string
}

func (d *Diagnostic) Error() string { return d.Message }

// Format wraps a fault with a two-line source window ending at the
// faulting line and a caret pointing at the column (a `%4d | ` gutter,
// then a caret line indented to match). Faults without a position
// (already formatted, or raised outside statement evaluation) pass
// through unmodified.
func Format(source string, f *Fault) *Diagnostic {
	if f == nil {
		return nil
	}
	if !f.HasPos {
		return &Diagnostic{Kind: f.Kind, Message: fmt.Sprintf("%s: %s", f.Kind, f.Message)}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", f.Kind, f.Message)
	fmt.Fprintf(&sb, "  at line %d, column %d\n", f.Pos.Line, f.Pos.Column)

	lines := strings.Split(source, "\n")
	start := f.Pos.Line - 1 // include one line of context before the fault
	if start < 1 {
		start = 1
	}
	for ln := start; ln <= f.Pos.Line; ln++ {
		if ln < 1 || ln > len(lines) {
			continue
		}
		gutter := fmt.Sprintf("%4d | ", ln)
		sb.WriteString(gutter)
		sb.WriteString(lines[ln-1])
		sb.WriteString("\n")
		if ln == f.Pos.Line {
			sb.WriteString(strings.Repeat(" ", len(gutter)+f.Pos.Column-1))
			sb.WriteString("^\n")
		}
	}

	return &Diagnostic{Kind: f.Kind, Message: strings.TrimRight(sb.String(), "\n")}
}

package diag

import (
	"strings"
	"testing"

	"github.com/cwbudde/ember/internal/token"
	"github.com/gkampitakis/go-snaps/snaps"
)

func TestFormatUnpositioned(t *testing.T) {
	f := NewUnpositioned(TypeError, "cannot call a non-function value")
	d := Format("irrelevant source", f)
	if d.Kind != TypeError {
		t.Fatalf("kind = %s, want %s", d.Kind, TypeError)
	}
	if !strings.HasPrefix(d.Message, "TypeError:") {
		t.Fatalf("message = %q, missing kind prefix", d.Message)
	}
}

func TestFormatPositionedHasCaretUnderFault(t *testing.T) {
	source := "let x = 1;\nundefinedName;\n"
	f := New(ReferenceError, token.Position{Line: 2, Column: 1}, "undefined variable: %s", "undefinedName")
	d := Format(source, f)

	lines := strings.Split(d.Message, "\n")
	var caretLine string
	for i, l := range lines {
		if strings.Contains(l, "undefinedName;") {
			caretLine = lines[i+1]
			break
		}
	}
	if caretLine == "" {
		t.Fatalf("no caret line found in:\n%s", d.Message)
	}
	if idx := strings.IndexRune(caretLine, '^'); idx == -1 {
		t.Fatalf("caret line %q has no caret", caretLine)
	}
}

func TestFormatSnapshot(t *testing.T) {
	source := "function f() {\n  return bogus;\n}\n"
	f := New(ReferenceError, token.Position{Line: 2, Column: 10}, "undefined variable: %s", "bogus")
	d := Format(source, f)
	snaps.MatchSnapshot(t, d.Message)
}

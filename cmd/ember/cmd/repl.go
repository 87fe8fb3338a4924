package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/cwbudde/ember/internal/history"
	"github.com/cwbudde/ember/internal/runtime"
)

const (
	prompt             = "ember> "
	continuationPrompt = "   ...> "
)

// completionWords drives liner's tab completion: the language's
// keywords and the convenience globals SeedConvenienceGlobals installs.
var completionWords = []string{
	"let", "const", "function", "return", "if", "else", "for", "while",
	"break", "continue", "switch", "case", "default", "class", "extends",
	"super", "new", "this", "try", "catch", "finally", "throw", "async",
	"await", "true", "false", "null", "undefined", "typeof", "instanceof",
	"console", "log", "error",
}

// startRepl runs the interactive loop: liner for line editing and
// persistent history, brace/bracket/paren/backtick balance tracking for
// multi-line input, one long-lived Evaluator so bindings and classes
// persist across lines.
func startRepl() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) []string { return filterCompletions(l) })

	path := historyFile
	if path == "" {
		path = history.DefaultPath()
	}
	store := history.New(path)
	if err := store.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load history: %v\n", err)
	}
	for _, h := range store.Lines {
		line.AppendHistory(h)
	}
	defer store.Save()

	ev := newEvaluator()

	fmt.Println("ember — type .exit or Ctrl-D to quit")

	var buf strings.Builder
	for {
		p := prompt
		if buf.Len() > 0 {
			p = continuationPrompt
		}
		input, err := line.Prompt(p)
		if err != nil {
			if err == liner.ErrPromptAborted {
				buf.Reset()
				continue
			}
			if err == io.EOF {
				fmt.Println()
				return nil
			}
			return err
		}

		trimmed := strings.TrimSpace(input)
		if buf.Len() == 0 && trimmed == ".exit" {
			return nil
		}
		if buf.Len() == 0 && trimmed == "" {
			continue
		}

		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(input)

		full := buf.String()
		if needsMoreInput(full) {
			continue
		}

		line.AppendHistory(full)
		store.Append(full)

		val, diagErr := ev.Run(full)
		if diagErr != nil {
			fmt.Fprintln(os.Stderr, diagErr.Message)
		} else if val != nil {
			if _, ok := val.(runtime.Undefined); !ok {
				fmt.Println(runtime.ToString(val))
			}
		}
		buf.Reset()
	}
}

func filterCompletions(l string) []string {
	trimmed := strings.TrimSpace(l)
	if trimmed == "" || strings.HasSuffix(l, " ") {
		return nil
	}
	words := strings.Fields(l)
	last := words[len(words)-1]

	var matches []string
	for _, w := range completionWords {
		if strings.HasPrefix(w, last) {
			matches = append(matches, w)
		}
	}
	return matches
}

// needsMoreInput reports whether input has an unclosed brace, bracket,
// paren, or template-literal backtick, so the REPL keeps reading lines
// instead of handing an incomplete program to the parser.
func needsMoreInput(input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return false
	}

	var braces, brackets, parens int
	inString := false
	inTemplate := false
	var stringQuote byte
	escape := false

	for i := 0; i < len(input); i++ {
		ch := input[i]
		if escape {
			escape = false
			continue
		}
		if ch == '\\' {
			escape = true
			continue
		}
		if inString {
			if ch == stringQuote {
				inString = false
			}
			continue
		}
		if inTemplate {
			if ch == '`' {
				inTemplate = false
			}
			continue
		}
		switch ch {
		case '"', '\'':
			inString = true
			stringQuote = ch
		case '`':
			inTemplate = true
		case '{':
			braces++
		case '}':
			braces--
		case '[':
			brackets++
		case ']':
			brackets--
		case '(':
			parens++
		case ')':
			parens--
		}
	}

	return braces > 0 || brackets > 0 || parens > 0 || inTemplate
}

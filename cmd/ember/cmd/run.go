package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/ember/internal/eval"
)

// runFile reads path, evaluates it to completion, and reports a formatted
// diagnostic on failure. Parse errors and runtime faults arrive through
// the same diagnostic channel.
func runFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	ev := newEvaluator()
	defer ev.Global.Destroy()
	_, diagErr := ev.Run(string(content))
	if diagErr != nil {
		fmt.Fprintln(os.Stderr, diagErr.Message)
		return fmt.Errorf("execution failed")
	}
	return nil
}

func newEvaluator() *eval.Evaluator {
	opts := []eval.Option{
		eval.WithOutput(os.Stdout, os.Stderr),
		eval.WithSeedGlobals(seedGlobals),
	}
	if maxDepth > 0 {
		opts = append(opts, eval.WithMaxCallDepth(maxDepth))
	}
	return eval.New(opts...)
}

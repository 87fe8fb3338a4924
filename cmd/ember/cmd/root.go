package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	seedGlobals bool
	historyFile string
	maxDepth    int
)

var rootCmd = &cobra.Command{
	Use:   "ember [file]",
	Short: "ember sandboxed script interpreter",
	Long: `ember is a sandboxed tree-walking interpreter for a small
C-family/ECMAScript-flavored scripting language: closures, single-
inheritance classes, destructuring, template strings, and cooperative
async via a caller-supplied promise abstraction.

With no file argument it starts an interactive REPL.`,
	Version:      Version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&seedGlobals, "seed-globals", true, "seed convenience globals (console.log/console.error)")
	rootCmd.PersistentFlags().StringVar(&historyFile, "history-file", "", "override the REPL history file path")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-call-depth", 0, "override the call-stack recursion guard (0 = default)")
}

// runRoot dispatches a bare `ember [file]` invocation: a file argument
// runs that script, no argument starts the REPL.
func runRoot(c *cobra.Command, args []string) error {
	if len(args) == 1 {
		return runFile(args[0])
	}
	return startRepl()
}

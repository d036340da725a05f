package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	vex "github.com/vexlint/vex"
)

var (
	flagNoColor bool
	flagQuiet   bool
	flagVerbose int
)

// errorHandled is set once an error has already been presented to the
// user, so main() doesn't print it a second time.
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintln(os.Stderr, vex.Present(err, flagNoColor))
		}
		os.Exit(exitCodeFor(err))
	}
}

var rootCmd = &cobra.Command{
	Use:           "vex",
	Short:         "A programmable static-analysis engine",
	Long:          "vex lints source trees with scriptlets written in an embedded scripting language, matched against tree-sitter syntax queries.",
	SilenceErrors: true,
	SilenceUsage:  true,
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase logging verbosity (-v, -vv)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(dumpCmd)
}

// loggerFromFlags builds the structured logger passed to vex.New, with a
// level chosen by the -q/-v flags: quiet drops down to warnings only, each
// -v drops the threshold a level further, down to debug at -vv.
func loggerFromFlags() *slog.Logger {
	var level slog.Level
	switch {
	case flagQuiet:
		level = slog.LevelWarn
	case flagVerbose >= 2:
		level = slog.LevelDebug
	case flagVerbose == 1:
		level = slog.LevelInfo
	default:
		level = slog.LevelWarn
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// exitCodeFor maps an error to the process exit code: 1 for a scan that
// found irritations (reported via errIrritationsFound), 2 for everything
// else (manifest, scriptlet, or runtime failures).
func exitCodeFor(err error) int {
	if err == errIrritationsFound {
		return 1
	}
	return 2
}

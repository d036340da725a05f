package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	vex "github.com/vexlint/vex"
)

// errIrritationsFound is returned by scanCmd's RunE when the scan
// completed cleanly but found one or more irritations, so main() can
// choose exit code 1 without printing a second "Error:" line.
var errIrritationsFound = errors.New("irritations found")

var (
	flagConcurrency int
	flagCeiling     int
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a project for lint",
	Long:  "Walks the project rooted at path (default: current directory), running every scriptlet's registered queries against each file and reporting the warnings they raise.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().IntVar(&flagConcurrency, "concurrency", 4, "number of files to scan in parallel")
	scanCmd.Flags().IntVar(&flagCeiling, "max-problems", 0, "stop after this many problems (0 means unlimited)")
}

func runScan(cmd *cobra.Command, args []string) error {
	dir, err := targetDir(args)
	if err != nil {
		return err
	}

	engine, err := vex.New(dir,
		vex.WithConcurrency(flagConcurrency),
		vex.WithCeiling(flagCeiling),
		vex.WithLogger(loggerFromFlags()),
	)
	if err != nil {
		return err
	}

	result, err := engine.Scan(context.Background())
	if err != nil {
		return err
	}

	for _, irritation := range result.Irritations {
		fmt.Println(irritation.Render(flagNoColor))
	}
	fmt.Fprintf(os.Stderr, "scanned %d files (%d bytes)\n", result.NumFilesScanned, result.NumBytesScanned)

	if len(result.Irritations) > 0 {
		errorHandled = true
		return errIrritationsFound
	}
	return nil
}

// targetDir returns the absolute path of the directory args[0] names, or
// the current working directory if args is empty.
func targetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}

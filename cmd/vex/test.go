package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	vex "github.com/vexlint/vex"
)

var testCmd = &cobra.Command{
	Use:   "test <name>",
	Short: "Run a scriptlet-declared test",
	Long:  "Fires the pre_test_run/post_test_run cycle named name against the project's scriptlets, reporting whichever assertions they raise via vex.warn from their post_test_run observer.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	dir, err := targetDir(nil)
	if err != nil {
		return err
	}

	engine, err := vex.New(dir, vex.WithLogger(loggerFromFlags()))
	if err != nil {
		return err
	}

	verdict, err := engine.Test(context.Background(), args[0])
	if err != nil {
		return err
	}

	if verdict.Passed() {
		fmt.Printf("ok   %s\n", verdict.Name)
		return nil
	}

	fmt.Printf("FAIL %s\n", verdict.Name)
	for _, report := range verdict.Reports {
		fmt.Println(report.Render(flagNoColor))
	}
	errorHandled = true
	return errIrritationsFound
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	vex "github.com/vexlint/vex"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new vex project in the current directory",
	Long:  "Writes a vex.toml manifest in the current directory, failing if one already exists here or in a parent directory.",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting cwd: %w", err)
	}
	if err := vex.Init(cwd); err != nil {
		return err
	}
	fmt.Println("initialized vex project")
	return nil
}

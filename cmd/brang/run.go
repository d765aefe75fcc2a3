package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talktakestime/brang/internal/vm"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <tape-file>",
		Short: "Run a compiled tape program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTape(args[0])
		},
	}
}

func runTape(tapePath string) error {
	code, err := os.ReadFile(tapePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", tapePath, err)
	}

	machine := vm.New(os.Stdin, os.Stdout)
	if err := machine.Run(string(code)); err != nil {
		return fmt.Errorf("running %s: %w", tapePath, err)
	}
	return nil
}

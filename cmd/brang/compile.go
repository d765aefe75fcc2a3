package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talktakestime/brang/internal/compiler"
	"github.com/talktakestime/brang/internal/emit"
	"github.com/talktakestime/brang/internal/lexer"
	"github.com/talktakestime/brang/internal/parser"
	"github.com/talktakestime/brang/internal/vm"
)

func newCompileCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compile <source-file>",
		Short: "Compile a brang source file into a tape program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "b.bf", "output tape-program path")
	return cmd
}

func runCompile(sourcePath, outputPath string) error {
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sourcePath, err)
	}

	tokens := lexer.Lex(string(source))
	root, err := parser.Parse(tokens)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", sourcePath, err)
	}

	code, err := compiler.Compile(root, log)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", sourcePath, err)
	}

	if err := vm.Validate(code); err != nil {
		return fmt.Errorf("self-check on %s: %w", sourcePath, err)
	}

	if err := emit.WriteFile(outputPath, code); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	log.Debugf("wrote %d tape instructions to %s", len(code), outputPath)
	return nil
}

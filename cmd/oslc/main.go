// Command oslc compiles a single OSL source file and reports diagnostics.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/openshading/oslc"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitOK    = 0 // compiled cleanly
	exitError = 1 // compilation failed
	exitUsage = 2 // bad invocation
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		showCount bool
		verbose   bool
	)

	root := &cobra.Command{
		Use:           "oslc <source.osl>",
		Short:         "Compile a single Open Shading Language source file",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			return compileFile(posArgs[0], showCount, verbose)
		},
	}
	root.Flags().BoolVar(&showCount, "count", false, "print the number of top-level declarations to stderr on success")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var compileErr *oslc.ErrCompile
		if errors.As(err, &compileErr) {
			return exitError
		}
		return exitUsage
	}
	return exitOK
}

func compileFile(path string, showCount, verbose bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("oslc: %w", err)
	}

	opts := []oslc.Option{oslc.WithBackend(oslc.OSO)}
	if verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		opts = append(opts, oslc.WithLogger(logger))
	}

	result, err := oslc.Compile(source, opts...)
	if err != nil {
		return err
	}

	if showCount {
		count := len(result.Program.Functions) + len(result.Program.Shaders)
		fmt.Fprintf(os.Stderr, "oslc: %d top-level declarations\n", count)
	}

	os.Stdout.Write(result.Object)
	return nil
}

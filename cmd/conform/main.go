package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"conform/internal/config"
	"conform/internal/version"
)

// errProblems signals a run that completed but found problems or unreadable
// files. It maps to exit status 1 without an extra error line.
var errProblems = errors.New("problems found")

// newRootCmd assembles the command tree. Commands are built per call so
// tests can execute them repeatedly with fresh flag state.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "conform",
		Short:         "Java dialect conformance checker",
		Long:          `conform checks Java sources against a language level (java1.0 … java8) or a custom dialect and reports every construct the dialect does not allow`,
		Version:       version.Collect().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := applyColorFlag(cmd); err != nil {
				return err
			}
			if err := setupTracing(cmd); err != nil {
				return err
			}
			return setupProfiling(cmd)
		},
	}

	// Добавляем команды
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newDialectsCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "path to "+config.FileName+" (default: search upwards from the checked path)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to FILE (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to FILE")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to FILE on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to FILE")

	return rootCmd
}

// main builds the command tree and executes it. Any error exits with status 1;
// errProblems does so without printing anything further.
func main() {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	stopProfiling(rootCmd)
	closeTracing(rootCmd, err)
	if err != nil {
		if !errors.Is(err, errProblems) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

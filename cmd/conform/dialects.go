package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"conform/internal/rules"
)

func newDialectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects [NAME]",
		Short: "List dialects, or the rules of one dialect",
		Long:  `Without arguments list every built-in and configured dialect. With NAME print the composed rule sequence of that dialect in application order`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDialects,
	}
}

func runDialects(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	manifest, err := loadProjectConfig(cmd, wd)
	if err != nil {
		return err
	}
	current := manifest.Config.Check.Dialect

	reg, _, err := resolveDialect(manifest, current)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, name := range reg.Names() {
			v, err := reg.Resolve(name)
			if err != nil {
				return err
			}
			marker := " "
			if name == current {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-12s %2d rules\n", marker, name, v.Len())
		}
		return nil
	}

	v, err := reg.Resolve(args[0])
	if err != nil {
		return fmt.Errorf("%w (known: %v)", err, reg.Names())
	}
	for _, name := range v.Names() {
		summary := ""
		if entry, ok := rules.Describe(name); ok {
			summary = entry.Summary
		}
		fmt.Fprintf(out, "%-28s %s\n", name, summary)
	}
	return nil
}

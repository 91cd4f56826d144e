package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"conform/internal/ast"
	"conform/internal/diagfmt"
	"conform/internal/driver"
	"conform/internal/source"
)

func newDumpCmd() *cobra.Command {
	dumpCmd := &cobra.Command{
		Use:   "dump [flags] <file.java|file.jtree>",
		Short: "Print the syntax tree of a file or write it as a snapshot",
		Long:  `Parse a Java file (or decode a snapshot) and print the tree the validator sees, or write it to a .jtree snapshot with --out`,
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	dumpCmd.Flags().String("out", "", "write a msgpack tree snapshot to this path instead of printing")
	dumpCmd.Flags().String("format", "pretty", "tree output format (pretty|json)")
	return dumpCmd
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]

	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	id, tree, err := driver.LoadTree(cmd.Context(), fileSet, path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if outPath == "" {
		if format == "json" {
			return diagfmt.FormatTreeJSON(cmd.OutOrStdout(), tree, fileSet)
		}
		return diagfmt.FormatTreePretty(cmd.OutOrStdout(), tree, fileSet)
	}

	file := fileSet.Get(id)
	snap := ast.NewSnapshot(file.Path, file.Content, tree)

	// #nosec G304 -- path is provided by the user
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := ast.EncodeSnapshot(out, snap); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d nodes)\n", outPath, tree.Len())
	return nil
}

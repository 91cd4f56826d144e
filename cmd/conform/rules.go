package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"conform/internal/rules"
)

type ruleEntryJSON struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

func newRulesCmd() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule catalogue",
		Args:  cobra.NoArgs,
		RunE:  runRules,
	}
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return rulesCmd
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "pretty":
		for _, e := range rules.All() {
			fmt.Fprintf(out, "%-28s %s\n", e.Name, e.Summary)
		}
		return nil
	case "json":
		entries := make([]ruleEntryJSON, 0, len(rules.All()))
		for _, e := range rules.All() {
			entries = append(entries, ruleEntryJSON{Name: e.Name, Summary: e.Summary})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// applyColorFlag resolves --color and configures the global color state
// used by fatih/color. It reports whether color output is enabled.
func applyColorFlag(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	var useColor bool
	switch strings.ToLower(strings.TrimSpace(colorFlag)) {
	case "on":
		useColor = true
	case "off":
		useColor = false
	case "", "auto":
		useColor = isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == ""
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !useColor
	return useColor, nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"conform/internal/config"
	"conform/internal/dialect"
	"conform/internal/validate"
)

// loadProjectConfig returns the configuration for target: the file named by
// --config, otherwise the nearest conform.toml above target, otherwise defaults.
func loadProjectConfig(cmd *cobra.Command, target string) (*config.Manifest, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		return config.LoadManifest(explicit)
	}
	manifest, _, err := config.Discover(target)
	return manifest, err
}

// resolveDialect builds the registry of manifest and resolves name in it.
// An empty name resolves the default dialect.
func resolveDialect(manifest *config.Manifest, name string) (*dialect.Registry, *validate.Validator, error) {
	reg, err := manifest.Config.Registry()
	if err != nil {
		if manifest.Path != "" {
			return nil, nil, fmt.Errorf("%s: %w", manifest.Path, err)
		}
		return nil, nil, err
	}
	if name == "" {
		name = dialect.Default.String()
	}
	v, err := reg.Resolve(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w (known: %s)", err, strings.Join(reg.Names(), ", "))
	}
	return reg, v, nil
}

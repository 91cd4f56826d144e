package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"conform/internal/prof"
)

type profilingKey struct{}

// setupProfiling inspects persistent profiling flags and enables the
// corresponding profilers for the rest of the command.
func setupProfiling(cmd *cobra.Command) error {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	opts := prof.Options{CPUProfile: cpuProfile, MemProfile: memProfile, RuntimeTrace: tracePath}
	if !opts.Enabled() {
		return nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, profilingKey{}, session)
	cmd.SetContext(ctx)
	root.SetContext(ctx)
	return nil
}

// stopProfiling stops whatever setupProfiling started.
func stopProfiling(root *cobra.Command) {
	ctx := root.Context()
	if ctx == nil {
		return
	}
	session, ok := ctx.Value(profilingKey{}).(*prof.Session)
	if !ok {
		return
	}
	if err := session.Stop(); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "profiling: %v\n", err)
	}
}

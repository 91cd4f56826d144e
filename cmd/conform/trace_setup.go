package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"conform/internal/trace"
)

// tracingState is stored on the root context so closeTracing can find it.
type tracingState struct {
	tracer trace.Tracer
	// heartbeat is handed to the driver, which beats only while validating.
	heartbeat time.Duration
}

type tracingKey struct{}

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context.
func setupTracing(cmd *cobra.Command) error {
	root := cmd.Root()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Read trace configuration from flags
	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}

	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}

	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}

	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	heartbeatEvery, err := root.PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	// --trace without a level means phase-level tracing
	if traceOutput != "" && !root.PersistentFlags().Changed("trace-level") {
		level = trace.LevelPhase
	}

	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(ctx, trace.Nop))
		return nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return err
	}

	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}

	state := &tracingState{
		tracer:    tracer,
		heartbeat: heartbeatEvery,
	}
	ctx = trace.WithTracer(ctx, tracer)
	ctx = context.WithValue(ctx, tracingKey{}, state)
	cmd.SetContext(ctx)
	root.SetContext(ctx)
	return nil
}

// heartbeatInterval returns the --trace-heartbeat value of an enabled tracer.
func heartbeatInterval(ctx context.Context) time.Duration {
	if ctx == nil {
		return 0
	}
	if state, ok := ctx.Value(tracingKey{}).(*tracingState); ok && state != nil {
		return state.heartbeat
	}
	return 0
}

// closeTracing dumps the ring buffer when the run failed and flushes the
// tracer.
func closeTracing(root *cobra.Command, runErr error) {
	ctx := root.Context()
	if ctx == nil {
		return
	}
	state, ok := ctx.Value(tracingKey{}).(*tracingState)
	if !ok || state == nil {
		return
	}
	errOut := root.ErrOrStderr()
	if runErr != nil {
		if found, err := trace.Dump(state.tracer, errOut); found && err != nil {
			fmt.Fprintf(errOut, "trace: dump error: %v\n", err)
		}
	}
	if err := state.tracer.Flush(); err != nil {
		fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
	}
	if err := state.tracer.Close(); err != nil {
		fmt.Fprintf(errOut, "trace: close error: %v\n", err)
	}
}

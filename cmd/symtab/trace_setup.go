package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"symtab/internal/config"
	"symtab/internal/trace"
)

// setupTracing builds the tracer described by cfg and attaches it to the
// command context. The returned ring, if any, holds events to dump on failure.
func setupTracing(cmd *cobra.Command, cfg config.TraceConfig) (func(), *trace.RingTracer, error) {
	level, err := trace.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil, nil
	}
	mode, err := trace.ParseMode(cfg.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: cfg.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	var ring *trace.RingTracer
	switch tr := tracer.(type) {
	case *trace.RingTracer:
		ring = tr
	case *trace.MultiTracer:
		ring = tr.Ring()
	}

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, ring, nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"symtab/internal/config"
	"symtab/internal/diag"
	"symtab/internal/script"
	"symtab/internal/symfmt"
	"symtab/internal/trace"
)

var runCmd = &cobra.Command{
	Use:   "run <script.sym>...",
	Short: "Execute symbol table scripts",
	Long:  "Execute each script against its own fresh table and print one result line per command",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScripts(cmd, args, false)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <script.sym>...",
	Short: "Parse scripts without executing them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScripts(cmd, args, true)
	},
}

var errScriptsFailed = errors.New("scripts failed")

func init() {
	runCmd.Flags().String("format", "", "listing format (pretty|json|msgpack)")
	runCmd.Flags().Int("width", 0, "truncate listed values to this many columns (0 = unlimited)")
	runCmd.Flags().Bool("stats", false, "append bucket statistics to listings")
	runCmd.Flags().Int("buckets", 0, "number of hash buckets per table")
	for _, c := range []*cobra.Command{runCmd, checkCmd} {
		c.Flags().Int("jobs", 0, "max parallel scripts (0=auto)")
		c.Flags().String("min-severity", "info", "lowest diagnostic severity to print (info|warning|error)")
		c.Flags().Bool("timings", false, "print per-script phase timings to stderr")
		c.Flags().String("diag-format", "text", "diagnostics format (text|json)")
	}
}

func runScripts(cmd *cobra.Command, paths []string, checkOnly bool) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	opts, err := scriptOptions(cmd, cfg, checkOnly)
	if err != nil {
		return err
	}
	minSeverityStr, err := cmd.Flags().GetString("min-severity")
	if err != nil {
		return fmt.Errorf("failed to get min-severity flag: %w", err)
	}
	minSeverity, err := diag.ParseSeverity(minSeverityStr)
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	diagFormat, err := cmd.Flags().GetString("diag-format")
	if err != nil {
		return fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	diagFormat = strings.ToLower(diagFormat)
	switch diagFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported diag-format %q (must be text or json)", diagFormat)
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, ring, err := setupTracing(cmd, cfg.Trace)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "symtab "+cmd.Name(), 0)
	results, err := script.RunFiles(trace.WithSpan(ctx, span), paths, opts)
	if err != nil {
		span.End("error")
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	colorDiags := useColor(cfg.Output.Color, os.Stderr)
	failed := 0
	var collected []diag.Diagnostic
	for _, res := range results {
		if err := emitResult(stdout, stderr, res, len(results) > 1 && opts.List.Format == symfmt.FormatPretty && !checkOnly, quiet); err != nil {
			span.End("error")
			return err
		}
		res.Bag.Sort()
		shown := diag.Filter(res.Bag.Items(), minSeverity)
		if diagFormat == "json" {
			collected = append(collected, shown...)
		} else if err := symfmt.Diagnostics(stderr, shown, colorDiags); err != nil {
			span.End("error")
			return err
		}
		if showTimings {
			fmt.Fprint(stderr, res.Timings.Summary())
		}
		if res.Bag.HasErrors() {
			failed++
		}
	}
	if diagFormat == "json" {
		if err := symfmt.DiagnosticsJSON(stderr, collected); err != nil {
			span.End("error")
			return err
		}
	}
	span.WithExtra("scripts", fmt.Sprint(len(results))).WithExtra("failed", fmt.Sprint(failed)).End("")

	if failed == 0 {
		return nil
	}
	if ring != nil {
		fmt.Fprintln(stderr, "--- trace ---")
		if err := ring.Dump(stderr, trace.FormatText); err != nil {
			fmt.Fprintf(stderr, "trace: dump error: %v\n", err)
		}
	}
	return fmt.Errorf("%w: %d of %d", errScriptsFailed, failed, len(results))
}

func scriptOptions(cmd *cobra.Command, cfg config.Config, checkOnly bool) (script.Options, error) {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return script.Options{}, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs < 0 {
		return script.Options{}, fmt.Errorf("--jobs must not be negative")
	}
	format, err := symfmt.ParseFormat(cfg.Output.Format)
	if err != nil {
		return script.Options{}, err
	}
	return script.Options{
		Table: cfg.TableOptions(),
		List: symfmt.Opts{
			Format: format,
			Color:  format == symfmt.FormatPretty && useColor(cfg.Output.Color, os.Stdout),
			Width:  cfg.Output.Width,
			Stats:  cfg.Output.Stats,
		},
		MaxDiagnostics: cfg.Output.MaxDiagnostics,
		Jobs:           jobs,
		CheckOnly:      checkOnly,
	}, nil
}

// emitResult writes the command output of one script, preceded by a header
// when several scripts share stdout.
func emitResult(stdout, stderr io.Writer, res script.Result, header, quiet bool) error {
	if header && len(res.Output) > 0 {
		if _, err := fmt.Fprintf(stdout, "==> %s <==\n", res.Path); err != nil {
			return err
		}
	}
	if _, err := stdout.Write(res.Output); err != nil {
		return err
	}
	if !quiet && res.Output == nil && !res.Bag.HasErrors() {
		fmt.Fprintf(stderr, "%s: ok (%d commands)\n", res.Path, res.Commands)
	}
	return nil
}

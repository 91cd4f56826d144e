package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"conform/internal/config"
	"conform/internal/diagfmt"
	"conform/internal/driver"
	"conform/internal/observ"
)

func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check [flags] <file.java|file.jtree|directory>",
		Short: "Check Java sources against a dialect",
		Long:  `Check a Java file, a tree snapshot, or every *.java and *.jtree file within a directory against the selected dialect`,
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	checkCmd.Flags().String("dialect", "", "dialect to check against (default from "+config.FileName+", else java1.0)")
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|yaml)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	checkCmd.Flags().Bool("cache", false, "reuse results of unchanged files from the disk cache")
	checkCmd.Flags().String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/conform)")
	return checkCmd
}

// checkSettings are the effective settings after merging the project
// configuration with explicitly set flags.
type checkSettings struct {
	dialect  string
	format   diagfmt.Format
	jobs     int
	fullPath bool
	ui       uiMode
	timings  bool
}

func readCheckSettings(cmd *cobra.Command, cfgDialect, cfgFormat string, cfgJobs int) (checkSettings, error) {
	s := checkSettings{dialect: cfgDialect, jobs: cfgJobs}
	formatStr := cfgFormat

	if cmd.Flags().Changed("dialect") {
		v, err := cmd.Flags().GetString("dialect")
		if err != nil {
			return s, fmt.Errorf("failed to get dialect flag: %w", err)
		}
		s.dialect = v
	}
	if cmd.Flags().Changed("format") || formatStr == "" {
		v, err := cmd.Flags().GetString("format")
		if err != nil {
			return s, fmt.Errorf("failed to get format flag: %w", err)
		}
		formatStr = v
	}
	if cmd.Flags().Changed("jobs") {
		v, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return s, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		s.jobs = v
	}
	if s.jobs < 0 {
		return s, fmt.Errorf("--jobs must be >= 0, got %d", s.jobs)
	}

	format, err := diagfmt.ParseFormat(formatStr)
	if err != nil {
		return s, err
	}
	s.format = format

	if s.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return s, fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiStr); err != nil {
		return s, err
	}

	if s.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return s, nil
}

// runCheck executes the "check" command: it resolves the configuration and
// dialect, runs the driver on the target, renders the problems in the
// selected format and returns errProblems when anything was reported.
func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	manifest, err := loadProjectConfig(cmd, target)
	if err != nil {
		return err
	}
	cfg := manifest.Config

	settings, err := readCheckSettings(cmd, cfg.Check.Dialect, cfg.Check.Format, cfg.Check.Jobs)
	if err != nil {
		return err
	}

	_, validator, err := resolveDialect(manifest, settings.dialect)
	if err != nil {
		return err
	}

	var timer *observ.Timer
	if settings.timings {
		timer = observ.NewTimer()
	}

	cache, err := openCache(cmd)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Validator: validator,
		Jobs:      settings.jobs,
		Exclude:   cfg.Check.Excluded,
		Timer:     timer,
		Cache:     cache,
		Heartbeat: heartbeatInterval(cmd.Context()),
	}

	ctx := cmd.Context()
	var res *driver.Result
	if info.IsDir() && shouldUseTUI(settings.ui) {
		files, listErr := driver.ListFiles(target, opts.Exclude)
		if listErr != nil {
			return listErr
		}
		title := fmt.Sprintf("checking %s (%s)", target, settings.dialect)
		res, err = runCheckWithUI(ctx, title, target, files, opts)
	} else {
		res, err = driver.Check(ctx, target, opts)
	}
	if err != nil {
		return err
	}

	// paths relative to the checked directory (or the file's directory)
	pathMode := diagfmt.PathModeRelative
	if settings.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	useColor, err := applyColorFlag(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	formatIdx := timer.Begin(observ.PhaseFormat)
	err = diagfmt.Render(out, settings.format, res.Problems(), res.FileSet,
		diagfmt.PrettyOpts{Color: useColor, PathMode: pathMode},
		diagfmt.JSONOpts{IncludePositions: true, PathMode: pathMode, Dialect: settings.dialect},
	)
	timer.End(formatIdx, settings.format.String())
	if err != nil {
		return fmt.Errorf("failed to render problems: %w", err)
	}

	errOut := cmd.ErrOrStderr()
	printFileErrors(errOut, res, pathMode)
	if settings.format == diagfmt.FormatPretty {
		printCheckSummary(errOut, res)
	}
	if settings.timings {
		printTimings(errOut, timer)
	}

	if !res.OK() {
		return errProblems
	}
	return nil
}

// openCache returns the disk cache requested by --cache / --cache-dir, or nil.
func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	enabled, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	switch {
	case dir != "":
		return driver.OpenDiskCacheAt(dir)
	case enabled:
		return driver.OpenDiskCache("conform")
	default:
		return nil, nil
	}
}

func printFileErrors(w io.Writer, res *driver.Result, mode diagfmt.PathMode) {
	for _, f := range res.Files {
		if f.Err == nil {
			continue
		}
		path := f.Path
		if mode == diagfmt.PathModeAbsolute {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		} else if rel, err := filepath.Rel(res.FileSet.BaseDir(), path); err == nil {
			path = rel
		}
		fmt.Fprintf(w, "%s: %v\n", path, f.Err)
	}
}

func printCheckSummary(w io.Writer, res *driver.Result) {
	failed := 0
	for _, f := range res.Files {
		if f.Err != nil {
			failed++
		}
	}
	switch {
	case res.OK():
		fmt.Fprintf(w, "%s conform\n", plural(len(res.Files), "file"))
	case failed > 0:
		fmt.Fprintf(w, "%s in %s, %s could not be checked\n",
			plural(res.ProblemCount(), "problem"), plural(len(res.Files), "file"), plural(failed, "file"))
	default:
		fmt.Fprintf(w, "%s in %s\n", plural(res.ProblemCount(), "problem"), plural(len(res.Files), "file"))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

package cli

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jarredhawkins/blocklocate"
	"github.com/jarredhawkins/blocklocate/internal/diagnostics"
	"github.com/jarredhawkins/blocklocate/internal/logging"
)

type locateFlags struct {
	diff bool
	json bool
}

// fileResult pairs one located file's outcome for the batch reporter.
type fileResult struct {
	path   string
	source string
	ranges []blocklocate.Range
	err    error
}

func newLocateCommand(color, configPath *string) *cobra.Command {
	flags := &locateFlags{}

	cmd := &cobra.Command{
		Use:   "locate <path...>",
		Short: "Locate suspect block ranges in one or more files or directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocate(cmd, args, flags, *color, *configPath)
		},
	}

	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show a unified diff with suspect ranges excised")
	cmd.Flags().BoolVar(&flags.json, "json", false, "output results as JSON")

	return cmd
}

func runLocate(cmd *cobra.Command, args []string, flags *locateFlags, color, configPath string) error {
	logger := logging.Default()

	opts, err := resolveOptions(configPath)
	if err != nil {
		return exitError{code: ExitConfigError, err: err}
	}

	files, err := collectFiles(args)
	if err != nil {
		return exitError{code: ExitIOError, err: err}
	}

	results := locateAll(files, opts)

	styles := diagnostics.NewStyles(diagnostics.IsColorEnabled(color, cmd.OutOrStdout()))
	anySuspect := false
	anyInternalErr := false

	if flags.json {
		anySuspect, anyInternalErr = reportJSON(cmd, results)
	} else {
		anySuspect, anyInternalErr = reportText(cmd, styles, results, flags.diff)
	}

	if anyInternalErr {
		return exitError{code: ExitInternalError, err: fmt.Errorf("one or more files could not be checked")}
	}
	if anySuspect {
		return exitError{code: ExitSuspectFound, err: nil}
	}

	logger.Debug("locate complete", "files", len(files))
	return nil
}

// collectFiles expands args into a flat file list, walking directories one
// at a time with filepath.WalkDir and skipping vendor/node_modules/dotdirs.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				name := d.Name()
				if strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules" {
					return filepath.SkipDir
				}
				return nil
			}
			if isRubyFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

const maxConcurrentLocates = 8

// locateAll runs Locate over every file with a bounded worker pool: a
// semaphore-gated fan-out of at most maxConcurrentLocates goroutines.
func locateAll(files []string, opts blocklocate.Options) []fileResult {
	results := make([]fileResult, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentLocates)

	for i, path := range files {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = locateFile(path, opts)
		}(i, path)
	}
	wg.Wait()

	return results
}

func locateFile(path string, opts blocklocate.Options) fileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileResult{path: path, err: err}
	}

	ranges, err := blocklocate.Locate(string(data), opts)
	return fileResult{path: path, source: string(data), ranges: ranges, err: err}
}

func reportText(cmd *cobra.Command, styles *diagnostics.Styles, results []fileResult, showDiff bool) (anySuspect, anyInternalErr bool) {
	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.err != nil {
			var locateErr *blocklocate.LocateError
			if !asLocateError(r.err, &locateErr) {
				fmt.Fprintf(out, "%s: error: %v\n", r.path, r.err)
				anyInternalErr = true
				continue
			}
			r.ranges = locateErr.Ranges
		}

		if len(r.ranges) > 0 {
			anySuspect = true
		}

		if showDiff {
			patch, err := diagnostics.UnifiedDiff(r.path, r.source, r.ranges)
			if err != nil {
				fmt.Fprintf(out, "%s: error: %v\n", r.path, err)
				anyInternalErr = true
				continue
			}
			fmt.Fprint(out, styles.StyleUnifiedDiff(patch))
			continue
		}

		fmt.Fprint(out, styles.FormatRanges(r.path, r.ranges, r.source))
	}
	return anySuspect, anyInternalErr
}

type jsonFileResult struct {
	Path   string              `json:"path"`
	Ranges []blocklocate.Range `json:"ranges"`
	Error  string              `json:"error,omitempty"`
}

func reportJSON(cmd *cobra.Command, results []fileResult) (anySuspect, anyInternalErr bool) {
	out := make([]jsonFileResult, len(results))
	for i, r := range results {
		jr := jsonFileResult{Path: r.path}
		if r.err != nil {
			var locateErr *blocklocate.LocateError
			if !asLocateError(r.err, &locateErr) {
				jr.Error = r.err.Error()
				anyInternalErr = true
				out[i] = jr
				continue
			}
			jr.Ranges = locateErr.Ranges
		} else {
			jr.Ranges = r.ranges
		}
		if len(jr.Ranges) > 0 {
			anySuspect = true
		}
		out[i] = jr
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
	return anySuspect, anyInternalErr
}

func asLocateError(err error, target **blocklocate.LocateError) bool {
	le, ok := err.(*blocklocate.LocateError)
	if ok {
		*target = le
	}
	return ok
}

func isRubyFile(path string) bool {
	switch filepath.Ext(path) {
	case ".rb", ".rake", ".gemspec":
		return true
	}
	switch filepath.Base(path) {
	case "Gemfile", "Rakefile", "Guardfile", "Vagrantfile":
		return true
	}
	return false
}

// exitError carries a process exit code alongside the wrapped error so
// main can translate it without the cli package importing os.Exit itself.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

// ExitCode extracts the process exit code from an error returned by a
// command's RunE, defaulting to ExitInternalError for anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if ee, ok := err.(exitError); ok {
		return ee.code
	}
	return ExitInternalError
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vega/internal/astio"
	"vega/internal/diag"
	"vega/internal/diagfmt"
	"vega/internal/driver"
	"vega/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <unit.vgast|directory>",
	Short: "Analyze Vega AST units and report diagnostics",
	Long:  `Run semantic analysis over a single serialized AST unit or every *.vgast file under a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("no-warnings", false, "hide warnings from the output")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("disk-cache", false, "reuse cached results for unchanged units")
	checkCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format value: %s", format)
	}

	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return err
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return err
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	colorOn, err := resolveColor(colorMode)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return err
	}

	units, dir, err := collectUnits(path)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "no %s units under %s\n", astio.Ext, path)
		}
		return nil
	}

	cfg, err := project.ConfigForDir(dir)
	if err != nil {
		return err
	}
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		cfg.MaxErrors, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
		if err != nil {
			return err
		}
	}

	opts := driver.Options{
		Config:  cfg,
		Jobs:    jobs,
		Timings: showTimings,
	}
	if useCache {
		cache, err := driver.OpenDiskCache("vega")
		if err != nil {
			return fmt.Errorf("open disk cache: %w", err)
		}
		opts.Cache = cache
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var results []driver.UnitResult
	if format == "pretty" && !quiet && len(units) > 1 && shouldUseTUI(mode) {
		results, err = runAnalyzeWithUI(ctx, "vega check", units, opts)
	} else {
		results, err = driver.AnalyzeUnits(ctx, units, opts)
	}
	if err != nil {
		return err
	}

	errorCount, warningCount := 0, 0
	for _, res := range results {
		errorCount += res.Bag.ErrorCount()
		warningCount += res.Bag.WarningCount()
	}

	switch format {
	case "json":
		if err := renderCheckJSON(cmd, results, withNotes); err != nil {
			return err
		}
	default:
		renderCheckPretty(cmd, results, diagfmt.PrettyOpts{
			Color:      colorOn,
			ShowNotes:  withNotes,
			ShowSource: true,
		}, noWarnings)
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d unit(s): %d error(s), %d warning(s)\n",
				len(results), errorCount, warningCount)
		}
	}

	if errorCount > 0 || (warningsAsErrors && warningCount > 0) {
		return fmt.Errorf("analysis failed with %d error(s)", errorCount)
	}
	return nil
}

// collectUnits loads the units named by path and reports the directory the
// project manifest is searched from.
func collectUnits(path string) ([]driver.Unit, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	if info.IsDir() {
		units, err := driver.LoadUnits(path)
		return units, path, err
	}
	if !strings.HasSuffix(path, astio.Ext) {
		return nil, "", fmt.Errorf("%s is not a %s unit", path, astio.Ext)
	}
	return []driver.Unit{driver.LoadUnit(path)}, filepath.Dir(path), nil
}

func renderCheckPretty(cmd *cobra.Command, results []driver.UnitResult, opts diagfmt.PrettyOpts, noWarnings bool) {
	out := cmd.OutOrStdout()
	for _, res := range results {
		bag := res.Bag
		if noWarnings {
			bag = withoutWarnings(bag)
		}
		bag.Sort()
		diagfmt.Pretty(out, bag, res.Files, opts)
	}
}

type checkUnitJSON struct {
	Path    string         `json:"path"`
	Source  string         `json:"source,omitempty"`
	Success bool           `json:"success"`
	Cached  bool           `json:"cached,omitempty"`
	Output  diagfmt.Output `json:"diagnostics"`
}

func renderCheckJSON(cmd *cobra.Command, results []driver.UnitResult, withNotes bool) error {
	units := make([]checkUnitJSON, 0, len(results))
	for _, res := range results {
		res.Bag.Sort()
		units = append(units, checkUnitJSON{
			Path:    res.Path,
			Source:  res.SourcePath,
			Success: res.Success,
			Cached:  res.Cached,
			Output: diagfmt.Build(res.Bag, res.Files, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     withNotes,
			}),
		})
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Units []checkUnitJSON `json:"units"`
	}{Units: units})
}

// withoutWarnings keeps errors and infos only. Counters on the copy reflect
// the retained items.
func withoutWarnings(bag *diag.Bag) *diag.Bag {
	filtered := diag.NewBag(bag.Cap())
	for _, d := range bag.Items() {
		if d.Severity != diag.SevWarning {
			filtered.Add(d)
		}
	}
	return filtered
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vega/internal/driver"
	"vega/internal/project"
	"vega/internal/sema"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] <directory>",
	Short: "Report analyzer telemetry for a batch of units",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type statsPayload struct {
	Units   int           `json:"units"`
	Failed  int           `json:"failed"`
	Totals  sema.Snapshot `json:"totals"`
	TotalMS float64       `json:"total_ms"`
}

func runStats(cmd *cobra.Command, args []string) error {
	dir := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format value: %s", format)
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return err
	}

	cfg, err := project.ConfigForDir(dir)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := driver.AnalyzeDir(ctx, dir, driver.Options{Config: cfg, Jobs: jobs})
	if err != nil {
		return err
	}

	payload := statsPayload{Units: len(results)}
	for _, res := range results {
		if !res.Success {
			payload.Failed++
		}
		payload.Totals.NodesAnalyzed += res.Stats.NodesAnalyzed
		payload.Totals.TypesChecked += res.Stats.TypesChecked
		payload.Totals.SymbolsResolved += res.Stats.SymbolsResolved
		payload.Totals.ErrorsFound += res.Stats.ErrorsFound
		payload.Totals.WarningsIssued += res.Stats.WarningsIssued
		if res.Stats.MaxScopeDepth > payload.Totals.MaxScopeDepth {
			payload.Totals.MaxScopeDepth = res.Stats.MaxScopeDepth
		}
		payload.TotalMS += res.Timing.TotalMS
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "units analyzed:    %d (%d failed)\n", payload.Units, payload.Failed)
	fmt.Fprintf(out, "nodes analyzed:    %d\n", payload.Totals.NodesAnalyzed)
	fmt.Fprintf(out, "types checked:     %d\n", payload.Totals.TypesChecked)
	fmt.Fprintf(out, "symbols resolved:  %d\n", payload.Totals.SymbolsResolved)
	fmt.Fprintf(out, "errors found:      %d\n", payload.Totals.ErrorsFound)
	fmt.Fprintf(out, "warnings issued:   %d\n", payload.Totals.WarningsIssued)
	fmt.Fprintf(out, "max scope depth:   %d\n", payload.Totals.MaxScopeDepth)
	fmt.Fprintf(out, "analysis time:     %.2f ms\n", payload.TotalMS)
	return nil
}

package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vega/internal/driver"
	"vega/internal/ui"
)

type analyzeOutcome struct {
	results []driver.UnitResult
	err     error
}

// runAnalyzeWithUI drives the batch in the background while a Bubble Tea
// program renders per-unit progress.
func runAnalyzeWithUI(ctx context.Context, title string, units []driver.Unit, opts driver.Options) ([]driver.UnitResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan analyzeOutcome, 1)

	paths := make([]string, len(units))
	for i, u := range units {
		paths[i] = u.Path
	}

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.AnalyzeUnits(ctx, units, optsCopy)
		outcomeCh <- analyzeOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

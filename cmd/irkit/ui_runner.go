package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"irkit/internal/inspect"
	"irkit/internal/ui"
)

type inspectOutcome struct {
	report *inspect.Report
	err    error
}

func runInspectWithUI(ctx context.Context, title string, sources []string, opts inspect.Options) (*inspect.Report, error) {
	events := make(chan inspect.Event, 256)
	outcomeCh := make(chan inspectOutcome, 1)

	go func() {
		opts.Progress = inspect.ChannelSink{Ch: events}
		rep, err := inspect.Run(ctx, sources, opts)
		outcomeCh <- inspectOutcome{report: rep, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, sources, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// The view may quit early (ctrl+c); keep draining so Run never blocks.
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}

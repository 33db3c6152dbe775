package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"mosdl/internal/driver"
	"mosdl/internal/pipeline"
	"mosdl/internal/ui"
)

type generateOutcome struct {
	results []driver.FileResult
	err     error
}

func runGenerateWithUI(ctx context.Context, title string, inputs []string, opts driver.GenerateOptions) ([]driver.FileResult, error) {
	files, err := driver.CollectInputs(inputs)
	if err != nil {
		return nil, err
	}

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan generateOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.Generate(ctx, files, optsCopy)
		outcomeCh <- generateOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"typings/internal/driver"
	"typings/internal/pipeline"
	"typings/internal/ui"
)

type checkOutcome struct {
	run *driver.Run
	err error
}

func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Run, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = pipeline.ChannelSink{Ch: events}
		run, err := driver.CheckFiles(ctx, files, opts)
		outcomeCh <- checkOutcome{run: run, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// the model only returns early when the user quits
	cancel()
	// drain so the checker is never blocked on a full channel
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.run, uiErr
	}
	return outcome.run, outcome.err
}

package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"conform/internal/driver"
	"conform/internal/ui"
)

type checkOutcome struct {
	result *driver.Result
	err    error
}

// runCheckWithUI runs the driver on files while a progress view renders its
// events on stderr. The report itself is printed afterwards by the caller.
func runCheckWithUI(ctx context.Context, title, baseDir string, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CheckFiles(ctx, baseDir, files, optsCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// The view may stop early (Ctrl+C, terminal error); keep draining so
	// the driver never blocks on a full channel.
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

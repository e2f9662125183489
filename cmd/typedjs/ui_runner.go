package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"typedjs/internal/driver"
	"typedjs/internal/ui"
)

type dirOutcome struct {
	results []*driver.Result
	err     error
}

func runDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options) ([]*driver.Result, error) {
	events := make(chan driver.FileEvent, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		opts.Progress = func(ev driver.FileEvent) { events <- ev }
		_, results, err := driver.DesugarDir(ctx, dir, opts)
		outcomeCh <- dirOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог выйти раньше времени; воркеры не должны застрять на канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

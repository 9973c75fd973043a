package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"knitchart/internal/driver"
	"knitchart/internal/ui"
)

// chartFilesWithUI runs ChartFiles while a Bubble Tea progress view
// consumes its events.
func chartFilesWithUI(ctx context.Context, out io.Writer, title, baseDir string, files []string, opts driver.Options) (*driver.BatchResult, error) {
	events := make(chan driver.Event, 256)
	opts.Progress = driver.ChannelSink{Ch: events}

	var (
		result *driver.BatchResult
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(events)
		result, runErr = driver.ChartFiles(ctx, baseDir, files, opts)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// модель могла выйти раньше (ctrl+c или ошибка UI): дочитываем события,
	// чтобы не блокировать driver
	go func() {
		for range events { //nolint:revive // drain
		}
	}()
	<-done
	if runErr != nil {
		return nil, runErr
	}
	return result, uiErr
}

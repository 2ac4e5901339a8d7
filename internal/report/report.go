// Package report renders training statistics as an HTML chart.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cartridge/tictactoe-rl/internal/trainer"
)

// ErrNoData is returned when a run finished no complete window.
var ErrNoData = errors.New("no complete training window to plot")

// Render writes a line chart of the win rate of both seats per window.
func Render(w io.Writer, stats *trainer.Stats) error {
	if stats == nil || len(stats.WinRate) == 0 {
		return ErrNoData
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Self-play win rate",
			Subtitle: fmt.Sprintf("run %s, %d matches, window %d", stats.RunID, stats.Matches, stats.Window),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	steps := make([]string, 0, len(stats.WinRate))
	first := make([]opts.LineData, 0, len(stats.WinRate))
	second := make([]opts.LineData, 0, len(stats.WinRate))
	for i, rate := range stats.WinRate {
		steps = append(steps, fmt.Sprintf("%d", (i+1)*stats.Window))
		first = append(first, opts.LineData{Value: rate})
		second = append(second, opts.LineData{Value: 1 - rate})
	}

	line.SetXAxis(steps).
		AddSeries("X (first)", first).
		AddSeries("O (second)", second)

	page := components.NewPage()
	page.AddCharts(line)

	return page.Render(w)
}

// WriteFile renders the chart into path, creating parent directories.
// Nothing is written when stats hold no complete window.
func WriteFile(path string, stats *trainer.Stats) error {
	if stats == nil || len(stats.WinRate) == 0 {
		return ErrNoData
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Render(f, stats); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

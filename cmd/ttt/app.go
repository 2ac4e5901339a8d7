package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cartridge/tictactoe-rl/internal/config"
	"github.com/cartridge/tictactoe-rl/internal/console"
	"github.com/cartridge/tictactoe-rl/internal/game"
	"github.com/cartridge/tictactoe-rl/internal/logging"
	"github.com/cartridge/tictactoe-rl/internal/metrics"
	"github.com/cartridge/tictactoe-rl/internal/policy"
	"github.com/cartridge/tictactoe-rl/internal/report"
	"github.com/cartridge/tictactoe-rl/internal/storage"
	"github.com/cartridge/tictactoe-rl/internal/trainer"
)

var seatNames = [2]string{"first", "second"}

// app wires the collaborators a command needs.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	store    storage.Store
	renderer *console.Renderer
	prompter *console.Prompter
	selector *policy.Selector
	errOut   io.Writer
}

func newApp(cmd *cobra.Command, cfg *config.Config) (*app, error) {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	log, err := logging.New(errOut, cfg.LogLevel, !cfg.NoColor && isTerminal(errOut))
	if err != nil {
		return nil, err
	}

	seed := uint64(cfg.Seed)
	if cfg.Seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Debug().Uint64("seed", seed).Msg("Seeded move selector")

	return &app{
		cfg:      cfg,
		log:      log,
		store:    storage.NewFileStore(metrics.NewCollector(log)),
		renderer: console.NewRenderer(out, cfg.Quiet, !cfg.NoColor && isTerminal(out)),
		prompter: console.NewPrompter(cmd.InOrStdin(), out),
		selector: policy.NewSelector(seed),
		errOut:   errOut,
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && console.IsTerminal(f)
}

// loadTables reads the policy file of every seat that has one. Any failure
// stops the command before a single move is played.
func (a *app) loadTables(ctx context.Context, paths [2]string) ([2]*policy.Table, error) {
	var tables [2]*policy.Table
	for seat, path := range paths {
		if path == "" {
			continue
		}

		table, err := a.store.Load(ctx, path)
		if err != nil {
			return tables, fmt.Errorf("failed to load %s policy: %w", seatNames[seat], err)
		}
		tables[seat] = table
	}

	return tables, nil
}

// saveTrained writes back every table whose train flag is set.
func (a *app) saveTrained(ctx context.Context, paths [2]string, tables [2]*policy.Table, train [2]bool) error {
	for seat := range paths {
		if tables[seat] == nil || !train[seat] {
			continue
		}

		a.log.Info().Str("path", paths[seat]).Msgf("Saving policy updates for the %s seat", seatNames[seat])
		if err := a.store.Save(ctx, paths[seat], tables[seat]); err != nil {
			return fmt.Errorf("failed to save %s policy: %w", seatNames[seat], err)
		}
	}

	return nil
}

func (a *app) newTrainer() *trainer.Trainer {
	var progress trainer.Progress
	if a.cfg.Quiet && isTerminal(a.errOut) {
		progress = console.NewProgress(a.errOut)
	}

	return trainer.New(game.NewEngine(a.renderer), a.selector, a.log, progress)
}

// selfPlay runs cfg.Iterations matches between two agents, then saves the
// trained tables and the optional chart.
func (a *app) selfPlay(ctx context.Context, paths [2]string, tables [2]*policy.Table, train [2]bool) error {
	opts := a.cfg.TrainerOptions()
	opts.TrainA, opts.TrainB = train[0], train[1]

	stats, err := a.newTrainer().Train(ctx, tables[0], tables[1], opts)
	if err != nil && stats == nil {
		return err
	}
	if err != nil {
		return fmt.Errorf("self-play stopped after %d matches, nothing saved: %w", stats.Matches, err)
	}

	a.renderer.Println(fmt.Sprintf("%s won %d, %s won %d of %d matches",
		console.Glyph(game.SeatMarker(0)), stats.Wins[0],
		console.Glyph(game.SeatMarker(1)), stats.Wins[1],
		stats.Matches))

	if err := a.saveTrained(ctx, paths, tables, train); err != nil {
		return err
	}

	if a.cfg.Chart != "" {
		err := report.WriteFile(a.cfg.Chart, stats)
		switch {
		case errors.Is(err, report.ErrNoData):
			a.log.Warn().Int("matches", stats.Matches).Int("window", stats.Window).Msg("Too few matches for a chart, skipping")
		case err != nil:
			return fmt.Errorf("failed to write chart: %w", err)
		default:
			a.log.Info().Str("path", a.cfg.Chart).Msg("Wrote training chart")
		}
	}

	return nil
}

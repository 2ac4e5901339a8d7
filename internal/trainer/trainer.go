// Package trainer improves policy tables by self-play.
package trainer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cartridge/tictactoe-rl/internal/game"
	"github.com/cartridge/tictactoe-rl/internal/metrics"
	"github.com/cartridge/tictactoe-rl/internal/policy"
)

// DefaultIterations is the number of matches in a training run.
const DefaultIterations = 5000

// Options controls a training run.
type Options struct {
	Iterations int

	// TrainA and TrainB gate updates to the first and second table. A table
	// that is not trained is a frozen opponent.
	TrainA bool
	TrainB bool

	Reward  int32
	Penalty int32

	// Window is the number of matches folded into one win rate sample.
	Window int
	// ProgressEvery is the number of matches between progress reports.
	ProgressEvery int
}

// DefaultOptions trains both tables.
func DefaultOptions() Options {
	return Options{
		Iterations:    DefaultIterations,
		TrainA:        true,
		TrainB:        true,
		Reward:        policy.DefaultReward,
		Penalty:       policy.DefaultPenalty,
		Window:        100,
		ProgressEvery: 50,
	}
}

// Validate checks the options
func (o Options) Validate() error {
	if o.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative")
	}
	if o.Reward <= 0 {
		return fmt.Errorf("reward must be positive")
	}
	if o.Penalty >= 0 {
		return fmt.Errorf("penalty must be negative")
	}
	if o.Window <= 0 {
		return fmt.Errorf("window must be positive")
	}
	return nil
}

// Progress receives periodic updates during a run.
type Progress interface {
	Update(done, total int, wins [2]int)
}

// Stats summarises a run.
type Stats struct {
	RunID   string
	Matches int
	Wins    [2]int
	Elapsed time.Duration

	// WinRate holds the first seat's win rate for every full window.
	Window  int
	WinRate []float64
}

// Trainer runs self-play matches and applies their outcomes.
type Trainer struct {
	engine   *game.Engine
	selector *policy.Selector
	metrics  *metrics.Collector
	progress Progress
	logger   zerolog.Logger
}

// New creates a trainer. progress may be nil.
func New(engine *game.Engine, sel *policy.Selector, logger zerolog.Logger, progress Progress) *Trainer {
	return &Trainer{
		engine:   engine,
		selector: sel,
		metrics:  metrics.NewCollector(logger),
		progress: progress,
		logger:   logger,
	}
}

// Train plays opts.Iterations matches with a moving first. Tables are
// updated in place after every match. When ctx is cancelled the run stops
// between matches and returns the partial stats with ctx.Err().
func (t *Trainer) Train(ctx context.Context, a, b *policy.Table, opts Options) (*Stats, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid training options: %w", err)
	}

	stats := &Stats{
		RunID:  uuid.New().String(),
		Window: opts.Window,
	}
	tables := [2]*policy.Table{a, b}
	train := [2]bool{opts.TrainA, opts.TrainB}
	first := game.NewAgent(a, t.selector)
	second := game.NewAgent(b, t.selector)

	t.logger.Info().
		Str("run_id", stats.RunID).
		Int("iterations", opts.Iterations).
		Bool("train_first", opts.TrainA).
		Bool("train_second", opts.TrainB).
		Msg("Starting self training")

	start := time.Now()
	windowWins := 0
	for i := 0; i < opts.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			stats.Elapsed = time.Since(start)
			t.logger.Warn().Str("run_id", stats.RunID).Int("matches", stats.Matches).Msg("Training interrupted")
			return stats, err
		}

		res, err := t.engine.Play(ctx, first, second)
		if err != nil {
			stats.Elapsed = time.Since(start)
			return stats, fmt.Errorf("match %d: %w", i+1, err)
		}

		ApplyOutcome(res, tables, train, opts.Reward, opts.Penalty)

		winner := res.Winner()
		stats.Matches++
		stats.Wins[winner]++
		if winner == 0 {
			windowWins++
		}
		if stats.Matches%opts.Window == 0 {
			stats.WinRate = append(stats.WinRate, float64(windowWins)/float64(opts.Window))
			windowWins = 0
		}

		t.metrics.MatchCompleted(stats.RunID, stats.Matches, res.Outcome, res.Moves)
		if t.progress != nil && (stats.Matches%max(opts.ProgressEvery, 1) == 0 || stats.Matches == opts.Iterations) {
			t.progress.Update(stats.Matches, opts.Iterations, stats.Wins)
		}
	}

	stats.Elapsed = time.Since(start)
	t.metrics.TrainingFinished(stats.RunID, stats.Matches, stats.Wins, stats.Elapsed)

	return stats, nil
}

// ApplyOutcome rewards the winner's trajectory and penalises the loser's.
// A seat is skipped when its table is nil (a human) or its train flag is
// off.
func ApplyOutcome(res *game.Result, tables [2]*policy.Table, train [2]bool, reward, penalty int32) {
	winner := res.Winner()
	if winner < 0 {
		return
	}

	for _, seat := range [2]int{winner, 1 - winner} {
		if tables[seat] == nil || !train[seat] {
			continue
		}

		delta := penalty
		if seat == winner {
			delta = reward
		}
		tables[seat].Update(res.Trajectories[seat], delta)
	}
}

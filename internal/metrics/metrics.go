package metrics

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/cartridge/tictactoe-rl/internal/board"
)

// Collector logs training and persistence events
type Collector struct {
	logger zerolog.Logger
}

func NewCollector(logger zerolog.Logger) *Collector {
	return &Collector{
		logger: logger,
	}
}

// Track a finished match. Logged at debug level, training emits one per match.
func (c *Collector) MatchCompleted(runID string, match int, outcome board.Outcome, moves int) {
	c.logger.Debug().
		Str("metric", "match_completed").
		Str("run_id", runID).
		Int("match", match).
		Str("outcome", outcome.String()).
		Int("moves", moves).
		Msg("Match metric")
}

// Track a whole training run
func (c *Collector) TrainingFinished(runID string, matches int, wins [2]int, elapsed time.Duration) {
	c.logger.Info().
		Str("metric", "training_finished").
		Str("run_id", runID).
		Int("matches", matches).
		Int("first_wins", wins[0]).
		Int("second_wins", wins[1]).
		Dur("elapsed", elapsed).
		Msgf("Trained %d matches in %.3f seconds", matches, elapsed.Seconds())
}

// Track policy table writes
func (c *Collector) PolicySaved(path string, bytes int, duration time.Duration) {
	c.logger.Info().
		Str("metric", "policy_saved").
		Str("path", path).
		Int("bytes", bytes).
		Dur("duration", duration).
		Msg("Saved policy table")
}

// Track policy table reads
func (c *Collector) PolicyLoaded(path string, bytes int, duration time.Duration) {
	c.logger.Debug().
		Str("metric", "policy_loaded").
		Str("path", path).
		Int("bytes", bytes).
		Dur("duration", duration).
		Msg("Loaded policy table")
}

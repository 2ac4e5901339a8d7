package metrics

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartridge/tictactoe-rl/internal/board"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestCollectorEvents(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector(zerolog.New(&buf).Level(zerolog.DebugLevel))

	c.MatchCompleted("run-1", 3, board.PlayerBWins, 9)
	c.TrainingFinished("run-1", 10, [2]int{4, 6}, 1500*time.Millisecond)
	c.PolicySaved("a.brain", 1024, time.Millisecond)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)

	assert.Equal(t, "match_completed", lines[0]["metric"])
	assert.Equal(t, "player_b_wins", lines[0]["outcome"])
	assert.EqualValues(t, 9, lines[0]["moves"])

	assert.Equal(t, "training_finished", lines[1]["metric"])
	assert.EqualValues(t, 4, lines[1]["first_wins"])
	assert.EqualValues(t, 6, lines[1]["second_wins"])
	assert.Equal(t, "Trained 10 matches in 1.500 seconds", lines[1]["message"])

	assert.Equal(t, "policy_saved", lines[2]["metric"])
	assert.Equal(t, "a.brain", lines[2]["path"])
}

func TestCollectorMatchIsDebugOnly(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector(zerolog.New(&buf).Level(zerolog.InfoLevel))

	c.MatchCompleted("run-1", 1, board.PlayerAWins, 5)
	assert.Zero(t, buf.Len())
}

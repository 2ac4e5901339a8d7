package policy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartridge/tictactoe-rl/internal/board"
)

func state(t *testing.T, s string) board.State {
	t.Helper()
	st, err := board.ParseState(s)
	require.NoError(t, err)
	return st
}

func TestGenerate(t *testing.T) {
	table := Generate()
	require.NoError(t, table.Validate())

	w := table.Weights(board.NewState())
	for i := range w {
		assert.EqualValues(t, StartWeight, w[i])
	}

	w = table.Weights(state(t, "120000000"))
	assert.EqualValues(t, 0, w[0])
	assert.EqualValues(t, 0, w[1])
	for i := 2; i < board.Cells; i++ {
		assert.EqualValues(t, StartWeight, w[i])
	}

	full := table.Weights(state(t, "121122211"))
	assert.Equal(t, Weights{}, full)
}

func TestDistributionSupport(t *testing.T) {
	table := Generate()

	for k := board.Key(0); k < board.NumStates; k++ {
		s := k.State()
		if s.Full() {
			_, err := table.Distribution(s)
			require.ErrorIs(t, err, ErrNoLegalMoves)
			continue
		}

		dist, err := table.Distribution(s)
		require.NoError(t, err)

		sum := 0.0
		for i, p := range dist {
			if s[i] == board.Empty {
				require.Greater(t, p, 0.0, "state %s cell %d", s, i)
			} else {
				require.Equal(t, 0.0, p, "state %s cell %d", s, i)
			}
			sum += p
		}
		require.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestDistributionFollowsWeights(t *testing.T) {
	table := Generate()
	s := board.NewState()
	table.Update(Trajectory{{State: s, Move: 4}}, 12)

	dist, err := table.Distribution(s)
	require.NoError(t, err)

	// 8 cells at 6 and one at 18.
	assert.InDelta(t, 18.0/66.0, dist[4], 1e-12)
	assert.InDelta(t, 6.0/66.0, dist[0], 1e-12)
}

func TestUpdateReward(t *testing.T) {
	table := Generate()
	s := board.NewState()
	next := state(t, "100000000")
	traj := Trajectory{{State: s, Move: 0}, {State: next, Move: 8}}

	table.Update(traj, DefaultReward)

	assert.EqualValues(t, StartWeight+DefaultReward, table.Weights(s)[0])
	assert.EqualValues(t, StartWeight+DefaultReward, table.Weights(next)[8])
	assert.EqualValues(t, StartWeight, table.Weights(s)[1])
}

func TestUpdateRewardSaturates(t *testing.T) {
	table := Generate()
	s := board.NewState()
	traj := Trajectory{{State: s, Move: 5}}

	for i := 0; i < 4; i++ {
		table.Update(traj, 1<<30)
		require.Positive(t, table.Weights(s)[5])
	}
	assert.EqualValues(t, math.MaxInt32, table.Weights(s)[5])
	require.NoError(t, table.Validate())

	_, err := table.MarshalBinary()
	require.NoError(t, err)

	table.Update(traj, DefaultPenalty)
	assert.EqualValues(t, math.MaxInt32-1, table.Weights(s)[5])
}

func TestUpdatePenaltyFloor(t *testing.T) {
	table := Generate()
	s := board.NewState()
	traj := Trajectory{{State: s, Move: 3}}

	for i := 0; i < 20; i++ {
		table.Update(traj, DefaultPenalty)
		require.GreaterOrEqual(t, table.Weights(s)[3], int32(1))
	}
	assert.EqualValues(t, 1, table.Weights(s)[3])

	// Larger penalties apply only while they keep the weight at 1 or more.
	table.Update(Trajectory{{State: s, Move: 5}}, -5)
	assert.EqualValues(t, 1, table.Weights(s)[5])
	table.Update(Trajectory{{State: s, Move: 6}}, -10)
	assert.EqualValues(t, StartWeight, table.Weights(s)[6])

	table.Update(traj, DefaultReward)
	assert.EqualValues(t, 1+DefaultReward, table.Weights(s)[3])
}

func TestCloneIsIndependent(t *testing.T) {
	table := Generate()
	c := table.Clone()
	require.True(t, table.Equal(c))

	c.Update(Trajectory{{State: board.NewState(), Move: 0}}, DefaultReward)
	assert.False(t, table.Equal(c))
	assert.EqualValues(t, StartWeight, table.Weights(board.NewState())[0])
}

func TestValidateRejectsBrokenTables(t *testing.T) {
	table := Generate()
	table.weights[state(t, "100000000").Key()][0] = 3
	assert.ErrorIs(t, table.Validate(), ErrInvalid)

	table = Generate()
	table.weights[0][2] = 0
	assert.ErrorIs(t, table.Validate(), ErrInvalid)
}

package game

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartridge/tictactoe-rl/internal/board"
	"github.com/cartridge/tictactoe-rl/internal/policy"
)

type scriptedInput struct {
	moves []int
}

func (s *scriptedInput) ReadMove(_ context.Context, _ board.State, _ board.Cell) (int, error) {
	if len(s.moves) == 0 {
		return -1, io.EOF
	}
	m := s.moves[0]
	s.moves = s.moves[1:]
	return m, nil
}

type recordingRenderer struct {
	states []board.State
}

func (r *recordingRenderer) Render(s board.State) {
	r.states = append(r.states, s)
}

func human(moves ...int) *Human {
	return NewHuman(&scriptedInput{moves: moves})
}

func TestPlayFirstMoverTakesTopRow(t *testing.T) {
	r := &recordingRenderer{}
	res, err := NewEngine(r).Play(context.Background(), human(0, 1, 2), human(3, 4))
	require.NoError(t, err)

	assert.Equal(t, board.PlayerAWins, res.Outcome)
	assert.Equal(t, 0, res.Winner())
	assert.Equal(t, "111220000", res.Final.String())
	assert.Equal(t, 5, res.Moves)
	assert.Empty(t, res.Trajectories[0])
	assert.Empty(t, res.Trajectories[1])

	require.Len(t, r.states, 6)
	assert.Equal(t, board.NewState(), r.states[0])
	assert.Equal(t, res.Final, r.states[5])
}

func TestPlayFullBoardGoesToSecondMover(t *testing.T) {
	res, err := NewEngine(nil).Play(context.Background(), human(0, 2, 3, 7, 8), human(1, 4, 5, 6))
	require.NoError(t, err)

	assert.Equal(t, board.PlayerBWins, res.Outcome)
	assert.Equal(t, 1, res.Winner())
	assert.Equal(t, "121122211", res.Final.String())
	assert.Equal(t, 9, res.Moves)
}

func TestPlaySelfPlayRecordsTrajectories(t *testing.T) {
	a := policy.Generate()
	b := policy.Generate()
	sel := policy.NewSelector(3)

	for i := 0; i < 200; i++ {
		res, err := NewEngine(nil).Play(context.Background(), NewAgent(a, sel), NewAgent(b, sel))
		require.NoError(t, err)
		require.True(t, res.Outcome.Terminal())

		first, second := res.Trajectories[0], res.Trajectories[1]
		require.Equal(t, res.Moves, len(first)+len(second))
		require.True(t, len(first) == len(second) || len(first) == len(second)+1)

		// Replaying the trajectories in turn order reproduces the final board.
		s := board.NewState()
		for n := 0; n < res.Moves; n++ {
			step := first[n/2]
			marker := board.PlayerA
			if n%2 == 1 {
				step = second[n/2]
				marker = board.PlayerB
			}
			require.Equal(t, s, step.State)

			next, err := board.ApplyMove(s, step.Move, marker)
			require.NoError(t, err)
			s = next
		}
		require.Equal(t, res.Final, s)
	}

	assert.True(t, a.Equal(policy.Generate()), "play must not touch the table")
	assert.True(t, b.Equal(policy.Generate()), "play must not touch the table")
}

func TestPlayHumanAgainstAgent(t *testing.T) {
	table := policy.Generate()
	agent := NewAgent(table, policy.NewSelector(11))

	// The human always answers with the lowest free cell.
	h := NewHuman(inputFunc(func(_ context.Context, s board.State, _ board.Cell) (int, error) {
		return s.LegalMoves()[0], nil
	}))

	res, err := NewEngine(nil).Play(context.Background(), agent, h)
	require.NoError(t, err)

	assert.NotEmpty(t, res.Trajectories[0])
	assert.Empty(t, res.Trajectories[1])
	assert.Equal(t, (res.Moves+1)/2, len(res.Trajectories[0]))
}

type inputFunc func(ctx context.Context, s board.State, marker board.Cell) (int, error)

func (f inputFunc) ReadMove(ctx context.Context, s board.State, marker board.Cell) (int, error) {
	return f(ctx, s, marker)
}

func TestPlayMoverError(t *testing.T) {
	_, err := NewEngine(nil).Play(context.Background(), human(0), human())
	assert.ErrorIs(t, err, io.EOF)
}

func TestPlayCancelledAgent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sel := policy.NewSelector(1)
	_, err := NewEngine(nil).Play(ctx, NewAgent(policy.Generate(), sel), NewAgent(policy.Generate(), sel))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPlayIllegalMovePanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = NewEngine(nil).Play(context.Background(), human(4), human(4))
	})
}

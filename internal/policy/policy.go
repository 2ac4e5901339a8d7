// Package policy holds the tabular move policy: one weight vector over the
// nine cells for every board state, a reward-driven update rule and a seeded
// sampler that turns weights into moves.
package policy

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cartridge/tictactoe-rl/internal/board"
)

// StartWeight is the initial weight of every empty cell.
const StartWeight = 6

// Default learning deltas.
const (
	DefaultReward  = 3
	DefaultPenalty = -1
)

var (
	ErrNoLegalMoves = errors.New("no legal moves")
	ErrInvalid      = errors.New("invalid policy table")
)

// Weights is the weight vector of one state.
type Weights [board.Cells]int32

// Step is one agent decision: the board before the move and the chosen cell.
type Step struct {
	State board.State
	Move  int
}

// Trajectory is one seat's decisions in one match, in order.
type Trajectory []Step

// Table maps every board key to its weights.
type Table struct {
	weights [board.NumStates]Weights
}

// Generate builds a table over all 3^9 keys. Empty cells start at
// StartWeight, occupied cells at zero.
func Generate() *Table {
	t := &Table{}
	for k := board.Key(0); k < board.NumStates; k++ {
		s := k.State()
		for i, c := range s {
			if c == board.Empty {
				t.weights[k][i] = StartWeight
			}
		}
	}

	return t
}

// Weights returns a copy of the weights for s.
func (t *Table) Weights(s board.State) Weights {
	return t.weights[s.Key()]
}

// Distribution normalises the weights of s to sum to one.
func (t *Table) Distribution(s board.State) ([]float64, error) {
	w := t.weights[s.Key()]

	dist := make([]float64, board.Cells)
	for i, v := range w {
		dist[i] = float64(v)
	}

	sum := floats.Sum(dist)
	if sum <= 0 {
		return nil, fmt.Errorf("%w: state %s", ErrNoLegalMoves, s)
	}
	floats.Scale(1/sum, dist)

	return dist, nil
}

// Update adds delta to the weight of every move in traj. A penalty that
// would take a weight below 1 is skipped for that move, so no legal move
// ever loses all of its mass. Rewards saturate at math.MaxInt32.
func (t *Table) Update(traj Trajectory, delta int32) {
	for _, step := range traj {
		w := &t.weights[step.State.Key()][step.Move]
		switch sum := int64(*w) + int64(delta); {
		case delta < 0 && sum < 1:
			continue
		case sum > math.MaxInt32:
			*w = math.MaxInt32
		default:
			*w = int32(sum)
		}
	}
}

func (t *Table) Clone() *Table {
	c := *t
	return &c
}

func (t *Table) Equal(o *Table) bool {
	return t.weights == o.weights
}

// Validate checks that occupied cells weigh zero and empty cells at least one.
func (t *Table) Validate() error {
	for k := board.Key(0); k < board.NumStates; k++ {
		s := k.State()
		for i, c := range s {
			w := t.weights[k][i]
			if c != board.Empty && w != 0 {
				return fmt.Errorf("%w: state %s cell %d is taken but weighs %d", ErrInvalid, s, i, w)
			}
			if c == board.Empty && w < 1 {
				return fmt.Errorf("%w: state %s cell %d is free but weighs %d", ErrInvalid, s, i, w)
			}
		}
	}

	return nil
}

// Package game drives single matches between two movers.
package game

import (
	"context"
	"fmt"

	"github.com/cartridge/tictactoe-rl/internal/board"
	"github.com/cartridge/tictactoe-rl/internal/policy"
)

// Renderer observes the board after every change. It must not block for
// long; the engine calls it inline.
type Renderer interface {
	Render(s board.State)
}

// Result is the record of one finished match.
type Result struct {
	Outcome board.Outcome
	Final   board.State
	Moves   int

	// Trajectories is indexed by seat: 0 for the first mover (PlayerA),
	// 1 for the second (PlayerB). Human seats stay empty.
	Trajectories [2]policy.Trajectory
}

// Winner returns the winning seat.
func (r *Result) Winner() int {
	return r.Outcome.Winner().Seat()
}

// SeatMarker returns the marker a seat plays for a whole match.
func SeatMarker(seat int) board.Cell {
	if seat == 0 {
		return board.PlayerA
	}
	return board.PlayerB
}

type Engine struct {
	renderer Renderer
}

// NewEngine returns an engine that reports boards to r. r may be nil.
func NewEngine(r Renderer) *Engine {
	return &Engine{renderer: r}
}

// Play runs a match to completion. first holds PlayerA and moves first.
// Movers that return an error end the match with that error; a mover that
// returns an occupied cell has broken its contract and Play panics.
func (e *Engine) Play(ctx context.Context, first, second Mover) (*Result, error) {
	movers := [2]Mover{first, second}

	res := &Result{}
	s := board.NewState()
	e.render(s)

	for seat := 0; ; seat = 1 - seat {
		mover := movers[seat]
		marker := SeatMarker(seat)

		move, err := mover.Move(ctx, s, marker)
		if err != nil {
			return nil, fmt.Errorf("%s move for %s: %w", mover.Kind(), marker, err)
		}

		next, err := board.ApplyMove(s, move, marker)
		if err != nil {
			panic(fmt.Sprintf("%s mover broke the legal move contract: %v", mover.Kind(), err))
		}

		if mover.Kind() == KindAgent {
			res.Trajectories[seat] = append(res.Trajectories[seat], policy.Step{State: s, Move: move})
		}

		s = next
		res.Moves++
		e.render(s)

		if outcome := board.Evaluate(s); outcome.Terminal() {
			res.Outcome = outcome
			res.Final = s
			return res, nil
		}
	}
}

func (e *Engine) render(s board.State) {
	if e.renderer != nil {
		e.renderer.Render(s)
	}
}

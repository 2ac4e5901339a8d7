package game

import (
	"context"

	"github.com/cartridge/tictactoe-rl/internal/board"
	"github.com/cartridge/tictactoe-rl/internal/policy"
)

// Kind tells the engine whether a seat's moves are recorded for learning.
type Kind int

const (
	KindHuman Kind = iota
	KindAgent
)

func (k Kind) String() string {
	if k == KindAgent {
		return "agent"
	}
	return "human"
}

// Mover supplies a legal cell for the given board and marker.
type Mover interface {
	Kind() Kind
	Move(ctx context.Context, s board.State, marker board.Cell) (int, error)
}

// Input reads a move from a person. Implementations must keep asking until
// they have a legal cell, or return an error.
type Input interface {
	ReadMove(ctx context.Context, s board.State, marker board.Cell) (int, error)
}

// Human is a seat played through an Input.
type Human struct {
	Input Input
}

func NewHuman(in Input) *Human {
	return &Human{Input: in}
}

func (h *Human) Kind() Kind { return KindHuman }

func (h *Human) Move(ctx context.Context, s board.State, marker board.Cell) (int, error) {
	return h.Input.ReadMove(ctx, s, marker)
}

// Agent is a seat played by sampling from a policy table. It only reads
// the table.
type Agent struct {
	Table    *policy.Table
	Selector *policy.Selector
}

func NewAgent(t *policy.Table, sel *policy.Selector) *Agent {
	return &Agent{
		Table:    t,
		Selector: sel,
	}
}

func (a *Agent) Kind() Kind { return KindAgent }

func (a *Agent) Move(ctx context.Context, s board.State, _ board.Cell) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	return a.Selector.Select(s, a.Table)
}

package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/cartridge/tictactoe-rl/internal/board"
)

// Selector draws moves from a table's distribution. It owns the only source
// of randomness in play and training.
type Selector struct {
	src rand.Source
}

func NewSelector(seed uint64) *Selector {
	return &Selector{
		src: rand.NewSource(seed),
	}
}

// Select samples a cell for s. Occupied cells carry no mass and are never
// returned.
func (sel *Selector) Select(s board.State, t *Table) (int, error) {
	dist, err := t.Distribution(s)
	if err != nil {
		return -1, err
	}

	cell, ok := sampleuv.NewWeighted(dist, sel.src).Take()
	if !ok {
		return -1, fmt.Errorf("%w: state %s", ErrNoLegalMoves, s)
	}

	return cell, nil
}

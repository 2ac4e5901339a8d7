// Package board models a 3x3 tic-tac-toe grid and decides match outcomes.
package board

import (
	"errors"
	"fmt"
	"strings"
)

// Cells is the number of cells on the board.
const Cells = 9

// NumStates is the number of distinct cell assignments, 3^9.
const NumStates = 19683

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrInvalidKey  = errors.New("invalid board key")
)

// Cell is the content of a single board cell.
type Cell uint8

const (
	Empty   Cell = 0
	PlayerA Cell = 1
	PlayerB Cell = 2
)

// Other returns the opposing marker. Empty maps to Empty.
func (c Cell) Other() Cell {
	switch c {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return Empty
}

// Seat returns 0 for PlayerA and 1 for PlayerB, -1 otherwise.
func (c Cell) Seat() int {
	switch c {
	case PlayerA:
		return 0
	case PlayerB:
		return 1
	}
	return -1
}

func (c Cell) String() string {
	switch c {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	}
	return "-"
}

// State is the full grid. Index 0 is the bottom-left cell, 8 the top-right.
type State [Cells]Cell

// NewState returns a board with no moves made.
func NewState() State {
	return State{}
}

// ApplyMove returns s with cell set to marker.
func ApplyMove(s State, cell int, marker Cell) (State, error) {
	if cell < 0 || cell >= Cells {
		return s, fmt.Errorf("%w: cell %d out of range", ErrIllegalMove, cell)
	}
	if marker != PlayerA && marker != PlayerB {
		return s, fmt.Errorf("%w: marker %d", ErrIllegalMove, marker)
	}
	if s[cell] != Empty {
		return s, fmt.Errorf("%w: cell %d already taken", ErrIllegalMove, cell)
	}

	s[cell] = marker
	return s, nil
}

func (s State) LegalMoves() []int {
	moves := make([]int, 0, Cells)
	for i, c := range s {
		if c == Empty {
			moves = append(moves, i)
		}
	}

	return moves
}

func (s State) Full() bool {
	for _, c := range s {
		if c == Empty {
			return false
		}
	}

	return true
}

// Count returns how many cells hold marker.
func (s State) Count(marker Cell) int {
	n := 0
	for _, c := range s {
		if c == marker {
			n++
		}
	}

	return n
}

// Key returns the base-3 index of s. Cell 0 is the most significant digit,
// so keys order the same way as their string forms.
func (s State) Key() Key {
	var k Key
	for _, c := range s {
		k = k*3 + Key(c)
	}

	return k
}

// String renders s as nine digits, one per cell.
func (s State) String() string {
	var b strings.Builder
	b.Grow(Cells)
	for _, c := range s {
		b.WriteByte('0' + byte(c))
	}

	return b.String()
}

// Key is a canonical board encoding in [0, NumStates).
type Key uint16

// State decodes k. Keys outside [0, NumStates) are reduced modulo 3^9 and
// should be checked with Valid first.
func (k Key) State() State {
	var s State
	for i := Cells - 1; i >= 0; i-- {
		s[i] = Cell(k % 3)
		k /= 3
	}

	return s
}

func (k Key) Valid() bool {
	return int(k) < NumStates
}

func (k Key) String() string {
	return k.State().String()
}

// ParseKey reads the nine digit form produced by State.String.
func ParseKey(str string) (Key, error) {
	if len(str) != Cells {
		return 0, fmt.Errorf("%w: %q has %d cells", ErrInvalidKey, str, len(str))
	}

	var k Key
	for i := 0; i < Cells; i++ {
		d := str[i]
		if d < '0' || d > '2' {
			return 0, fmt.Errorf("%w: %q has digit %q at %d", ErrInvalidKey, str, d, i)
		}
		k = k*3 + Key(d-'0')
	}

	return k, nil
}

// ParseState is ParseKey followed by Key.State.
func ParseState(str string) (State, error) {
	k, err := ParseKey(str)
	if err != nil {
		return State{}, err
	}

	return k.State(), nil
}

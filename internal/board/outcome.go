package board

// Outcome is the result of evaluating a board.
type Outcome uint8

const (
	InProgress Outcome = iota
	PlayerAWins
	PlayerBWins
)

func (o Outcome) String() string {
	switch o {
	case PlayerAWins:
		return "player_a_wins"
	case PlayerBWins:
		return "player_b_wins"
	}
	return "in_progress"
}

// Winner returns the winning marker, or Empty while the match is running.
func (o Outcome) Winner() Cell {
	switch o {
	case PlayerAWins:
		return PlayerA
	case PlayerBWins:
		return PlayerB
	}
	return Empty
}

// Terminal reports whether the match is over.
func (o Outcome) Terminal() bool {
	return o != InProgress
}

// TieWinner is credited with every full board that has no line.
// PlayerB always moves second.
const TieWinner = PlayerB

// Lines lists the rows, columns and diagonals by cell index.
var Lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Evaluate decides the outcome of s. PlayerA's lines are checked first.
// A full board without a line is never a draw: it goes to TieWinner.
func Evaluate(s State) Outcome {
	if s.hasLine(PlayerA) {
		return PlayerAWins
	}
	if s.hasLine(PlayerB) {
		return PlayerBWins
	}
	if s.Full() {
		return winsFor(TieWinner)
	}

	return InProgress
}

// WinningLine returns the first completed line for marker.
func (s State) WinningLine(marker Cell) ([3]int, bool) {
	for _, l := range Lines {
		if s[l[0]] == marker && s[l[1]] == marker && s[l[2]] == marker {
			return l, true
		}
	}

	return [3]int{}, false
}

func (s State) hasLine(marker Cell) bool {
	_, ok := s.WinningLine(marker)
	return ok
}

func winsFor(c Cell) Outcome {
	if c == PlayerA {
		return PlayerAWins
	}
	return PlayerBWins
}

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cartridge/tictactoe-rl/internal/board"
)

var ErrInvalidMove = errors.New("invalid input, please enter number 1-9")

// ParseMove maps the numerals 1-9 to cells 0-8.
func ParseMove(in string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(in))
	if err != nil || n < 1 || n > board.Cells {
		return -1, ErrInvalidMove
	}
	return n - 1, nil
}

// Prompter reads moves and answers from a line based input.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// ReadMove implements game.Input. It asks again until it gets a free cell
// and returns io.EOF when input runs out.
func (p *Prompter) ReadMove(ctx context.Context, s board.State, _ board.Cell) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return -1, err
		}

		line, err := p.readLine(">>> ")
		if err != nil {
			return -1, err
		}

		cell, err := ParseMove(line)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input, please enter number 1-9")
			continue
		}
		if s[cell] != board.Empty {
			fmt.Fprintln(p.out, "Cell already taken")
			continue
		}

		return cell, nil
	}
}

// Confirm asks a yes/no question. Only "y" counts as yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	line, err := p.readLine(question + " [y/N] ")
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(line) == "y", nil
}

func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}

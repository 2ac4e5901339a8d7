// Package console is the terminal side of a match: board rendering, human
// move input and a live training progress line.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/mattn/go-isatty"

	"github.com/cartridge/tictactoe-rl/internal/board"
)

// Rows lists cell indexes as printed, top row first.
var Rows = [3][3]int{
	{6, 7, 8},
	{3, 4, 5},
	{0, 1, 2},
}

// Glyph returns the display character for c.
func Glyph(c board.Cell) string {
	switch c {
	case board.PlayerA:
		return "X"
	case board.PlayerB:
		return "O"
	}
	return " "
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Renderer prints boards unless quiet.
type Renderer struct {
	out   io.Writer
	quiet bool
	au    aurora.Aurora
}

func NewRenderer(out io.Writer, quiet, color bool) *Renderer {
	return &Renderer{
		out:   out,
		quiet: quiet,
		au:    aurora.NewAurora(color),
	}
}

// Render implements game.Renderer.
func (r *Renderer) Render(s board.State) {
	if r.quiet {
		return
	}
	fmt.Fprint(r.out, r.Format(s))
}

// Format draws s as a 3x3 grid framed by blank lines.
func (r *Renderer) Format(s board.State) string {
	var b strings.Builder
	b.WriteString("\n")
	for i, row := range Rows {
		if i > 0 {
			b.WriteString("---------\n")
		}
		cells := make([]string, 0, len(row))
		for _, idx := range row {
			cells = append(cells, r.glyph(s[idx]))
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return b.String()
}

// Println writes a line regardless of quiet. Used for match results and
// prompts that must always reach the player.
func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

func (r *Renderer) glyph(c board.Cell) string {
	g := Glyph(c)
	switch c {
	case board.PlayerA:
		return r.au.Bold(r.au.Cyan(g)).String()
	case board.PlayerB:
		return r.au.Bold(r.au.Magenta(g)).String()
	}
	return g
}

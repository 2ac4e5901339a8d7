package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartridge/tictactoe-rl/internal/board"
)

func TestRendererLayout(t *testing.T) {
	s, err := board.ParseState("120000001")
	require.NoError(t, err)

	var buf bytes.Buffer
	NewRenderer(&buf, false, false).Render(s)

	want := "\n" +
		"  |   | X\n" +
		"---------\n" +
		"  |   |  \n" +
		"---------\n" +
		"X | O |  \n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestRendererQuiet(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, true, false)
	r.Render(board.NewState())
	assert.Zero(t, buf.Len())

	r.Println("You win!")
	assert.Equal(t, "You win!\n", buf.String())
}

func TestRendererColor(t *testing.T) {
	s, err := board.ParseState("100000000")
	require.NoError(t, err)

	out := NewRenderer(io.Discard, false, true).Format(s)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "X")
}

func TestParseMove(t *testing.T) {
	for in, want := range map[string]int{"1": 0, "5": 4, "9": 8, " 3 ": 2} {
		got, err := ParseMove(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "0", "10", "-1", "x", "4.5"} {
		_, err := ParseMove(in)
		assert.ErrorIs(t, err, ErrInvalidMove, in)
	}
}

func TestPrompterReprompts(t *testing.T) {
	s, err := board.ParseState("100000000")
	require.NoError(t, err)

	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("hello\n12\n1\n2\n"), &out)

	cell, err := p.ReadMove(context.Background(), s, board.PlayerB)
	require.NoError(t, err)
	assert.Equal(t, 1, cell)

	assert.Equal(t, 2, strings.Count(out.String(), "Invalid input, please enter number 1-9"))
	assert.Equal(t, 1, strings.Count(out.String(), "Cell already taken"))
	assert.Equal(t, 4, strings.Count(out.String(), ">>> "))
}

func TestPrompterEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("abc\n"), io.Discard)
	_, err := p.ReadMove(context.Background(), board.NewState(), board.PlayerA)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompterCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPrompter(strings.NewReader("1\n"), io.Discard)
	_, err := p.ReadMove(ctx, board.NewState(), board.PlayerA)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfirm(t *testing.T) {
	for in, want := range map[string]bool{"y\n": true, "n\n": false, "yes\n": false, "\n": false, "": false} {
		var out bytes.Buffer
		ok, err := NewPrompter(strings.NewReader(in), &out).Confirm("Overwrite?")
		require.NoError(t, err)
		assert.Equal(t, want, ok, "%q", in)
		assert.Equal(t, "Overwrite? [y/N] ", out.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)

	p.Update(50, 200, [2]int{30, 20})
	p.Update(200, 200, [2]int{110, 90})

	assert.Contains(t, buf.String(), "Training 50/200 (25%)  X wins 30  O wins 20")
	assert.Contains(t, buf.String(), "Training 200/200 (100%)  X wins 110  O wins 90")
}

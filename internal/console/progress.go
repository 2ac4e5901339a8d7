package console

import (
	"fmt"
	"io"

	"github.com/gosuri/uilive"
)

// Progress keeps a single rewritten status line for a training run.
type Progress struct {
	writer *uilive.Writer
}

func NewProgress(out io.Writer) *Progress {
	w := uilive.New()
	w.Out = out

	return &Progress{writer: w}
}

// Update implements trainer.Progress.
func (p *Progress) Update(done, total int, wins [2]int) {
	pct := 100.0
	if total > 0 {
		pct = 100 * float64(done) / float64(total)
	}

	fmt.Fprintf(p.writer, "Training %d/%d (%.0f%%)  X wins %d  O wins %d\n", done, total, pct, wins[0], wins[1])
	p.writer.Flush()
}

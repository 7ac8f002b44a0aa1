// Package console renders download progress on a terminal.
package console

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// Printer writes progress updates on a single line, overwriting the
// previous update with a carriage return.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print renders one progress update. A negative total means the server
// declared no size.
func (p *Printer) Print(offset, total, rate int64) {
	speed := humanize.IBytes(uint64(rate)) + "/s"
	if total < 0 {
		fmt.Fprintf(p.w, "\r%s (%s)        ", humanize.IBytes(uint64(offset)), speed)
		return
	}
	percent := 100.0
	if total > 0 {
		percent = float64(offset) / float64(total) * 100
	}
	fmt.Fprintf(p.w, "\r%.1f%% (%s/%s) %s        ",
		percent, humanize.IBytes(uint64(offset)), humanize.IBytes(uint64(total)), speed)
}

// Finish terminates the progress line so following output starts clean.
func (p *Printer) Finish() {
	fmt.Fprintln(p.w)
}

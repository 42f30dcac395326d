// Package tui renders live run feedback on the terminal.
package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

const maxBarWidth = 40

// Progress draws a bar on a terminal and plain "[done/total]" lines
// anywhere else.
type Progress struct {
	w     io.Writer
	label string
	bar   progress.Model
	tty   bool
	drawn bool
}

// NewProgress returns a Progress writing to w.
func NewProgress(w io.Writer, label string) *Progress {
	p := &Progress{w: w, label: label}
	width := maxBarWidth
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.tty = true
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols-len(label)-20 < width {
			width = max(cols-len(label)-20, 10)
		}
	}
	p.bar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(width), progress.WithoutPercentage())
	return p
}

// Update reports that done of total files are finished.
func (p *Progress) Update(done, total int) {
	if !p.tty {
		fmt.Fprintf(p.w, "%s [%d/%d]\n", p.label, done, total)
		return
	}
	pct := 1.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	fmt.Fprintf(p.w, "\r%s %s %d/%d", labelStyle.Render(p.label), p.bar.ViewAs(pct), done, total)
	p.drawn = true
}

// Done ends the bar line.
func (p *Progress) Done() {
	if p.tty && p.drawn {
		fmt.Fprintln(p.w)
	}
}

// Package report aggregates a persisted processing report into the summary
// digest and renders per-file results for the terminal.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/redactyl/pdfscrub/internal/types"
)

type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// PrintTable renders one row per record followed by a totals footer.
func PrintTable(w io.Writer, recs []types.FileRecord, opts PrintOptions) error {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No PDFs found")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("FILE", "PAGES", "CLEANED", "DROPPED", "BEFORE", "AFTER", "STATUS", "ERROR")
		for _, r := range recs {
			if err := table.Append(
				filepath.Base(r.Path),
				strconv.Itoa(r.TotalPages),
				strconv.Itoa(r.CleanedPages),
				strconv.Itoa(r.DroppedPages),
				humanBytes(r.SizeBefore),
				humanBytes(r.SizeAfter),
				statusText(r.Status, opts.NoColor),
				truncate(r.Error, 60),
			); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	d := FromRecords(recs)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Files: %d (ok: %d, failed: %d)  Pages: %d (cleaned: %d, dropped: %d)\n",
		d.TotalFiles, d.Succeeded, d.Failed, d.TotalPages, d.CleanedPages, d.DroppedPages)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Run duration: %.2fs\n", opts.Duration.Seconds())
	}
	return nil
}

func statusText(s types.Status, noColor bool) string {
	if noColor {
		return string(s)
	}
	if s == types.StatusSuccess {
		return okStyle.Render(string(s))
	}
	return failStyle.Render(string(s))
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

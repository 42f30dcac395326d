package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/redactyl/pdfscrub/internal/audit"
)

// PrintHistory renders past runs, one row each, in the order given.
func PrintHistory(w io.Writer, runs []audit.RunRecord) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header("RUN", "SOURCE", "FILES", "OK", "FAILED", "PAGES", "DROPPED", "DURATION", "HALTED")
	for _, r := range runs {
		if err := table.Append(
			r.RunID,
			truncate(r.Source, 40),
			strconv.Itoa(r.FilesProcessed),
			strconv.Itoa(r.Succeeded),
			strconv.Itoa(r.Failed),
			strconv.Itoa(r.TotalPages),
			strconv.Itoa(r.DroppedPages),
			r.Duration,
			truncate(r.Halted, 40),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

package report

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/redactyl/pdfscrub/internal/ledger"
	"github.com/redactyl/pdfscrub/internal/types"
)

var (
	// ErrNoData means the report holds no records, so no percentage exists.
	ErrNoData = errors.New("no data to summarize")
	// ErrNoPages means no page was processed, so the cleaned share is undefined.
	ErrNoPages = errors.New("no pages to summarize")
)

// noDataLine is the whole summary written for an empty report.
const noDataLine = "No data to summarize: the report has no records"

// Digest aggregates a persisted report.
type Digest struct {
	TotalFiles   int `json:"total_files"`
	Succeeded    int `json:"succeeded"`
	Failed       int `json:"failed"`
	TotalPages   int `json:"total_pages"`
	CleanedPages int `json:"cleaned_pages"`
	DroppedPages int `json:"dropped_pages"`
}

// FromRecords tallies statuses and sums page counters.
func FromRecords(recs []types.FileRecord) Digest {
	var d Digest
	for _, r := range recs {
		d.TotalFiles++
		switch r.Status {
		case types.StatusSuccess:
			d.Succeeded++
		case types.StatusFailure:
			d.Failed++
		}
		d.TotalPages += r.TotalPages
		d.CleanedPages += r.CleanedPages
		d.DroppedPages += r.DroppedPages
	}
	return d
}

// PctSuccessful is the share of successful files, in percent.
func (d Digest) PctSuccessful() (float64, error) {
	if d.TotalFiles == 0 {
		return 0, ErrNoData
	}
	return float64(d.Succeeded) / float64(d.TotalFiles) * 100, nil
}

// PctCleaned is the share of cleaned pages, in percent.
func (d Digest) PctCleaned() (float64, error) {
	if d.TotalFiles == 0 {
		return 0, ErrNoData
	}
	if d.TotalPages == 0 {
		return 0, ErrNoPages
	}
	return float64(d.CleanedPages) / float64(d.TotalPages) * 100, nil
}

// Lines renders the six summary lines. It returns ErrNoData for an empty
// digest; a digest without pages renders its cleaned share as n/a.
func (d Digest) Lines() ([]string, error) {
	succ, err := d.PctSuccessful()
	if err != nil {
		return nil, err
	}
	cleaned := "n/a"
	if pct, err := d.PctCleaned(); err == nil {
		cleaned = fmt.Sprintf("%.2f%%", pct)
	}
	return []string{
		fmt.Sprintf("Total PDFs Processed: %d", d.TotalFiles),
		fmt.Sprintf("Total Successful: %d (%.2f%% successful)", d.Succeeded, succ),
		fmt.Sprintf("Total Failed: %d", d.Failed),
		fmt.Sprintf("Total Pages: %d", d.TotalPages),
		fmt.Sprintf("Cleaned Pages: %d (%s cleaned)", d.CleanedPages, cleaned),
		fmt.Sprintf("Dropped Pages: %d", d.DroppedPages),
	}, nil
}

// String renders the summary text, or the no-data notice.
func (d Digest) String() string {
	lines, err := d.Lines()
	if err != nil {
		return noDataLine
	}
	return strings.Join(lines, "\n")
}

// Summarize reads the report at csvPath and aggregates it. The digest is
// returned together with ErrNoData when the report has no records.
func Summarize(csvPath string) (Digest, error) {
	l, err := ledger.Load(csvPath)
	if err != nil {
		return Digest{}, err
	}
	d := FromRecords(l.Records())
	if d.TotalFiles == 0 {
		return d, ErrNoData
	}
	return d, nil
}

// WriteSummary aggregates the report at csvPath and writes the summary text
// to summaryPath. An empty report still produces a summary file holding the
// no-data notice, and ErrNoData is returned alongside the digest.
func WriteSummary(csvPath, summaryPath string) (Digest, error) {
	d, err := Summarize(csvPath)
	if err != nil && !errors.Is(err, ErrNoData) {
		return d, err
	}
	if werr := os.WriteFile(summaryPath, []byte(d.String()), 0o644); werr != nil {
		return d, fmt.Errorf("write summary: %w", werr)
	}
	return d, err
}

// Package ledger keeps the per-file records of a run in processing order and
// persists them as the CSV processing report.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/redactyl/pdfscrub/internal/types"
)

// Header is the column row of a persisted ledger.
var Header = []string{
	"File Path",
	"Total Pages",
	"Cleaned Pages",
	"Dropped Pages",
	"Size Before (bytes)",
	"Size After (bytes)",
	"Status",
	"Error",
}

// Ledger is an append-only list of file records.
type Ledger struct {
	records []types.FileRecord
}

// New returns an empty ledger.
func New() *Ledger { return &Ledger{} }

// Log appends rec.
func (l *Ledger) Log(rec types.FileRecord) {
	l.records = append(l.records, rec)
}

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// Records returns a copy of the records in insertion order.
func (l *Ledger) Records() []types.FileRecord {
	out := make([]types.FileRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Save writes the ledger as CSV to path, replacing any existing file.
func (l *Ledger) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := l.Write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Write encodes the ledger as CSV with a header row.
func (l *Ledger) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, r := range l.records {
		row := []string{
			r.Path,
			strconv.Itoa(r.TotalPages),
			strconv.Itoa(r.CleanedPages),
			strconv.Itoa(r.DroppedPages),
			strconv.FormatInt(r.SizeBefore, 10),
			strconv.FormatInt(r.SizeAfter, 10),
			string(r.Status),
			r.Error,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Load reads a ledger previously written by Save.
func Load(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a CSV ledger. Columns are located by header name, so extra
// or reordered columns are tolerated.
func Read(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("report is empty: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read report header: %w", err)
	}
	col := map[string]int{}
	for i, h := range head {
		col[h] = i
	}
	for _, h := range Header {
		if _, ok := col[h]; !ok {
			return nil, fmt.Errorf("report is missing column %q", h)
		}
	}
	cr.FieldsPerRecord = len(head)

	l := New()
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read report row %d: %w", line, err)
		}
		rec, err := parseRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("report row %d: %w", line, err)
		}
		l.Log(rec)
	}
	return l, nil
}

func parseRow(row []string, col map[string]int) (types.FileRecord, error) {
	var (
		rec types.FileRecord
		err error
	)
	atoi := func(name string) int {
		if err != nil {
			return 0
		}
		var n int
		n, err = strconv.Atoi(row[col[name]])
		if err != nil {
			err = fmt.Errorf("%s: %w", name, err)
		}
		return n
	}
	atoi64 := func(name string) int64 {
		if err != nil {
			return 0
		}
		var n int64
		n, err = strconv.ParseInt(row[col[name]], 10, 64)
		if err != nil {
			err = fmt.Errorf("%s: %w", name, err)
		}
		return n
	}
	rec.Path = row[col["File Path"]]
	rec.TotalPages = atoi("Total Pages")
	rec.CleanedPages = atoi("Cleaned Pages")
	rec.DroppedPages = atoi("Dropped Pages")
	rec.SizeBefore = atoi64("Size Before (bytes)")
	rec.SizeAfter = atoi64("Size After (bytes)")
	rec.Status = types.Status(row[col["Status"]])
	rec.Error = row[col["Error"]]
	return rec, err
}

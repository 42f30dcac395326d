package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redactyl/pdfscrub/internal/types"
)

// maxRecordBytes bounds one JSONL line; a run lists every file it touched.
const maxRecordBytes = 16 << 20

type RunRecord struct {
	Timestamp      time.Time     `json:"timestamp"`
	RunID          string        `json:"run_id"`
	Source         string        `json:"source"`
	Dest           string        `json:"dest"`
	FilesProcessed int           `json:"files_processed"`
	Succeeded      int           `json:"succeeded"`
	Failed         int           `json:"failed"`
	TotalPages     int           `json:"total_pages"`
	CleanedPages   int           `json:"cleaned_pages"`
	DroppedPages   int           `json:"dropped_pages"`
	Duration       string        `json:"duration"`
	ReportPath     string        `json:"report_path"`
	SummaryPath    string        `json:"summary_path"`
	Halted         string        `json:"halted,omitempty"`
	Files          []FileSummary `json:"files,omitempty"`
}

type FileSummary struct {
	Path     string `json:"path"`
	Status   string `json:"status"`
	Dropped  int    `json:"dropped,omitempty"`
	Checksum string `json:"checksum,omitempty"`
	Error    string `json:"error,omitempty"`
}

type AuditLog struct {
	logPath string
}

func NewAuditLog(path string) *AuditLog {
	return &AuditLog{logPath: path}
}

// LoadHistory returns every recorded run, newest first. Lines that fail to
// decode are skipped.
func (a *AuditLog) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var record RunRecord
		if err := json.Unmarshal(line, &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (a *AuditLog) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("run_%d", record.Timestamp.Unix())
	}

	// owner-only: the log lists every processed path
	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// RunInfo identifies a run for CreateRunRecord.
type RunInfo struct {
	Started     time.Time
	Source      string
	Dest        string
	ReportPath  string
	SummaryPath string
	Duration    time.Duration
	Halted      error
}

func CreateRunRecord(info RunInfo, recs []types.FileRecord) RunRecord {
	rec := RunRecord{
		Timestamp:      info.Started,
		RunID:          "run_" + info.Started.Format("20060102T150405"),
		Source:         info.Source,
		Dest:           info.Dest,
		FilesProcessed: len(recs),
		Duration:       info.Duration.String(),
		ReportPath:     info.ReportPath,
		SummaryPath:    info.SummaryPath,
		Files:          make([]FileSummary, 0, len(recs)),
	}
	if info.Halted != nil {
		rec.Halted = info.Halted.Error()
	}
	for _, r := range recs {
		if r.OK() {
			rec.Succeeded++
		} else {
			rec.Failed++
		}
		rec.TotalPages += r.TotalPages
		rec.CleanedPages += r.CleanedPages
		rec.DroppedPages += r.DroppedPages
		rec.Files = append(rec.Files, FileSummary{
			Path:     r.Path,
			Status:   string(r.Status),
			Dropped:  r.DroppedPages,
			Checksum: r.Checksum,
			Error:    r.Error,
		})
	}
	return rec
}

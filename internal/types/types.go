package types

// Status is the outcome of processing one file.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusFailure Status = "Failure"
)

// PageOutcome records what happened to a single page during a redaction pass.
type PageOutcome string

const (
	PageCleaned PageOutcome = "cleaned"
	PageDropped PageOutcome = "dropped"
)

// FileRecord describes the result of cleaning one PDF: page counters, sizes
// before and after, and the failure message when Status is StatusFailure.
// CleanedPages+DroppedPages equals TotalPages for successful records and
// SizeAfter is zero for failed ones.
type FileRecord struct {
	Path         string `json:"path"`
	TotalPages   int    `json:"total_pages"`
	CleanedPages int    `json:"cleaned_pages"`
	DroppedPages int    `json:"dropped_pages"`
	SizeBefore   int64  `json:"size_before"`
	SizeAfter    int64  `json:"size_after"`
	Status       Status `json:"status"`
	Error        string `json:"error,omitempty"`
	Checksum     string `json:"checksum,omitempty"` // xxhash64 of the cleaned file; not part of the CSV report
}

// OK reports whether the record describes a successfully cleaned file.
func (r FileRecord) OK() bool { return r.Status == StatusSuccess }

package core

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/redactyl/pdfscrub/internal/config"
	"github.com/redactyl/pdfscrub/internal/engine"
	"github.com/redactyl/pdfscrub/internal/pdf"
	"github.com/redactyl/pdfscrub/internal/scrub"
	"github.com/redactyl/pdfscrub/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type Record = types.FileRecord

// BatchMoveError is returned when a processed file cannot be moved into the
// destination directory.
type BatchMoveError = engine.BatchMoveError

// Config describes one cleaning run. Only Source and Dest are required.
type Config struct {
	Source string
	Dest   string
	// LogsDir defaults to <home>/h2ogpt_rg/logs.
	LogsDir       string
	IncludeGlobs  string
	ExcludeGlobs  string
	SortPaths     bool
	AtomicReplace bool
	Progress      func(done, total int)
	Logger        logrus.FieldLogger
	// Opener defaults to the pdfcpu backend.
	Opener pdf.Opener
}

// Result is what a run produced.
type Result struct {
	Records     []Record
	Processed   int
	Succeeded   int
	Failed      int
	ReportPath  string
	SummaryPath string
	Summary     string
	Duration    time.Duration
}

// Clean is the stable entrypoint for other programs. It redacts every PDF
// under cfg.Source, moves them to cfg.Dest and writes the report and summary
// into the logs directory.
func Clean(cfg Config) (Result, error) {
	run, err := config.NewRun(cfg.Source, cfg.Dest, cfg.LogsDir, time.Now())
	if err != nil {
		return Result{}, err
	}
	opener := cfg.Opener
	if opener == nil {
		opener = pdf.NewPDFCPU()
	}
	opts := []scrub.Option{scrub.WithAtomicReplace(cfg.AtomicReplace)}
	if cfg.Logger != nil {
		opts = append(opts, scrub.WithLogger(cfg.Logger))
	}
	rep, err := engine.Execute(run, engine.Config{
		IncludeGlobs: cfg.IncludeGlobs,
		ExcludeGlobs: cfg.ExcludeGlobs,
		SortPaths:    cfg.SortPaths,
		Progress:     cfg.Progress,
		Logger:       cfg.Logger,
	}, scrub.New(opener, opts...))
	return Result{
		Records:     rep.Records,
		Processed:   rep.Result.Processed,
		Succeeded:   rep.Result.Succeeded,
		Failed:      rep.Result.Failed,
		ReportPath:  rep.ReportPath,
		SummaryPath: rep.SummaryPath,
		Summary:     rep.Digest.String(),
		Duration:    rep.Result.Duration,
	}, err
}

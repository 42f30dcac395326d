package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/redactyl/pdfscrub/internal/files"
	"github.com/redactyl/pdfscrub/internal/scrub"
	"github.com/redactyl/pdfscrub/internal/types"
)

// Config controls a batch.
type Config struct {
	Root         string
	Dest         string
	IncludeGlobs string
	ExcludeGlobs string
	SortPaths    bool
	// Progress is called after each file with the number done so far.
	Progress func(done, total int)
	Logger   logrus.FieldLogger
}

// Cleaner cleans one file in place. *scrub.Redactor satisfies it.
type Cleaner interface {
	Clean(path string) scrub.Outcome
}

// Recorder receives each file record in processing order.
type Recorder interface {
	Log(rec types.FileRecord)
}

// Result holds batch totals.
type Result struct {
	Discovered int
	Processed  int
	Succeeded  int
	Failed     int
	Moved      int
	Duration   time.Duration
}

// BatchMoveError reports a file that could not be moved into the
// destination. It halts the batch.
type BatchMoveError struct {
	Path string
	Dest string
	Err  error
}

func (e *BatchMoveError) Error() string {
	return fmt.Sprintf("move %s into %s: %v", e.Path, e.Dest, e.Err)
}

func (e *BatchMoveError) Unwrap() error { return e.Err }

func logger(cfg Config) logrus.FieldLogger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Run cleans every PDF under cfg.Root with c, records the outcome with rec
// and moves the file into cfg.Dest. Files are handled one at a time. The
// first move failure stops the batch and is returned as *BatchMoveError
// along with the totals so far.
func Run(cfg Config, c Cleaner, rec Recorder) (Result, error) {
	start := time.Now()
	log := logger(cfg)
	var res Result

	paths, err := Discover(cfg)
	if err != nil {
		return res, err
	}
	res.Discovered = len(paths)
	if err := os.MkdirAll(cfg.Dest, 0o755); err != nil {
		return res, fmt.Errorf("create destination directory: %w", err)
	}
	log.WithField("count", len(paths)).Debug("discovered PDFs")

	for i, p := range paths {
		out := c.Clean(p)
		rec.Log(out.Record)
		res.Processed++
		if out.Record.OK() {
			res.Succeeded++
		} else {
			res.Failed++
		}

		if files.Exists(filepath.Join(cfg.Dest, filepath.Base(p))) {
			log.WithField("file", filepath.Base(p)).Warn("overwriting existing file in destination")
		}
		dst, err := files.Move(out.Record.Path, cfg.Dest)
		if err != nil {
			res.Duration = time.Since(start)
			return res, &BatchMoveError{Path: out.Record.Path, Dest: cfg.Dest, Err: err}
		}
		res.Moved++
		log.WithFields(logrus.Fields{"file": p, "dest": dst, "status": out.Record.Status}).Debug("file done")

		if cfg.Progress != nil {
			cfg.Progress(i+1, len(paths))
		}
	}
	res.Duration = time.Since(start)
	return res, nil
}

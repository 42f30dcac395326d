package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/redactyl/pdfscrub/internal/audit"
	"github.com/redactyl/pdfscrub/internal/config"
	"github.com/redactyl/pdfscrub/internal/ledger"
	"github.com/redactyl/pdfscrub/internal/report"
	"github.com/redactyl/pdfscrub/internal/types"
)

// Report is what a finished run leaves behind.
type Report struct {
	Result      Result
	Records     []types.FileRecord
	Digest      report.Digest
	ReportPath  string
	SummaryPath string
}

// Execute performs a full run: batch, ledger, summary and audit entry.
// cfg.Root and cfg.Dest are taken from run. The ledger and summary are
// written even when the batch halts on a move failure; that failure is
// returned after they are saved.
func Execute(run config.Run, cfg Config, c Cleaner) (Report, error) {
	log := logger(cfg)
	rep := Report{ReportPath: run.ReportPath(), SummaryPath: run.SummaryPath()}
	if err := run.EnsureLogsDir(); err != nil {
		return rep, err
	}
	cfg.Root, cfg.Dest = run.Source, run.Dest

	log.WithFields(logrus.Fields{"source": run.Source, "dest": run.Dest}).Info("run started")
	l := ledger.New()
	res, batchErr := Run(cfg, c, l)
	rep.Result = res
	rep.Records = l.Records()

	if err := l.Save(rep.ReportPath); err != nil {
		return rep, errors.Join(batchErr, fmt.Errorf("save report: %w", err))
	}
	d, err := report.WriteSummary(rep.ReportPath, rep.SummaryPath)
	rep.Digest = d
	if err != nil && !errors.Is(err, report.ErrNoData) {
		return rep, errors.Join(batchErr, err)
	}

	info := audit.RunInfo{
		Started:     run.Started,
		Source:      run.Source,
		Dest:        run.Dest,
		ReportPath:  rep.ReportPath,
		SummaryPath: rep.SummaryPath,
		Duration:    time.Since(run.Started),
		Halted:      batchErr,
	}
	if err := audit.NewAuditLog(run.AuditPath()).LogRun(audit.CreateRunRecord(info, rep.Records)); err != nil {
		log.WithError(err).Warn("could not append audit record")
	}

	log.WithFields(logrus.Fields{
		"files":    res.Processed,
		"failed":   res.Failed,
		"duration": res.Duration,
	}).Info("run finished")
	return rep, batchErr
}

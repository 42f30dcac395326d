package pdfscrub

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/redactyl/pdfscrub/internal/config"
	"github.com/redactyl/pdfscrub/internal/engine"
	"github.com/redactyl/pdfscrub/internal/report"
	"github.com/redactyl/pdfscrub/internal/scrub"
	"github.com/redactyl/pdfscrub/internal/tui"
)

func runClean(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd.ErrOrStderr(), s.LogLevel, s.NoColor)
	if err != nil {
		return err
	}
	if err := engine.ValidateGlobs(s.Include); err != nil {
		return err
	}
	if err := engine.ValidateGlobs(s.Exclude); err != nil {
		return err
	}

	run, err := config.NewRun(args[0], args[1], s.LogsDir, time.Now())
	if err != nil {
		return err
	}

	cfg := engine.Config{
		IncludeGlobs: s.Include,
		ExcludeGlobs: s.Exclude,
		SortPaths:    s.SortPaths,
		Logger:       log,
	}
	var bar *tui.Progress
	if !s.NoProgress {
		bar = tui.NewProgress(cmd.ErrOrStderr(), "Processing PDFs")
		cfg.Progress = bar.Update
	}

	redactor := scrub.New(newOpener(), scrub.WithLogger(log), scrub.WithAtomicReplace(s.AtomicReplace))
	rep, runErr := engine.Execute(run, cfg, redactor)
	if bar != nil {
		bar.Done()
	}

	out := cmd.OutOrStdout()
	if s.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep.Records); err != nil {
			return err
		}
		// keep stdout parseable
		out = cmd.ErrOrStderr()
	} else if s.Table {
		if err := report.PrintTable(out, rep.Records, report.PrintOptions{NoColor: s.NoColor, Duration: rep.Result.Duration}); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}
	printPaths(out, rep)
	return nil
}

func printPaths(w io.Writer, rep engine.Report) {
	fmt.Fprintf(w, "PDF processing completed. Report saved at %s\n", rep.ReportPath)
	fmt.Fprintf(w, "Summary log saved at %s\n", rep.SummaryPath)
}

package pipeline

import (
	"context"
	"log/slog"

	"github.com/complyscan/complyscan/internal/analyzer"
)

// Worker runs one audit job at a time.
type Worker struct {
	analyzer *analyzer.Analyzer
	log      *slog.Logger
}

func NewWorker(a *analyzer.Analyzer, log *slog.Logger) *Worker {
	return &Worker{analyzer: a, log: log}
}

// Process runs the full audit for a job and records the outcome.
func (w *Worker) Process(ctx context.Context, job *Job) {
	if ctx.Err() != nil {
		job.Fail("shutdown before processing")
		return
	}

	job.SetStatus(StatusAnalyzing)
	w.log.Info("audit started", "job_id", job.ID, "path", job.Path, "doc_type", job.DocType)

	report, err := w.analyzer.FullAudit(job.Path, job.DocType, job.InvoiceAmount)
	if err != nil {
		job.Fail(err.Error())
		w.log.Error("audit failed", "job_id", job.ID, "error", err)
		return
	}

	job.Complete(report)
	w.log.Info("audit completed", "job_id", job.ID,
		"critical_findings", report.HasCriticalFindings())
}

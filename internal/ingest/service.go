package ingest

import (
	"context"
	"os"
	"time"

	"github.com/adityarao/billsync-backend/internal/jobs"
	"github.com/adityarao/billsync-backend/internal/tabular"
	"github.com/adityarao/billsync-backend/pkg/logger"
	"github.com/adityarao/billsync-backend/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Service runs ingestion jobs. Start returns immediately with a job id; the
// run itself proceeds on a background goroutine and reports progress through
// the tracker.
type Service struct {
	committer *Committer
	tracker   *jobs.Tracker
	logg      *logger.Logger
	metrics   *metrics.IngestMetrics
	sheetName string
}

type ServiceParams struct {
	Committer *Committer
	Tracker   *jobs.Tracker
	Logger    *logger.Logger
	Metrics   *metrics.IngestMetrics
	SheetName string
}

func NewService(params ServiceParams) *Service {
	return &Service{
		committer: params.Committer,
		tracker:   params.Tracker,
		logg:      params.Logger,
		metrics:   params.Metrics,
		sheetName: params.SheetName,
	}
}

// Start registers a run for the uploaded file and kicks it off. The file is
// owned by the run from here on and is removed when the run ends, whatever
// the outcome.
func (s *Service) Start(ctx context.Context, filePath string) string {
	jobID := uuid.NewString()
	s.tracker.Create(jobID)

	runCtx := s.logg.WithJobID(context.WithoutCancel(ctx), jobID)
	go s.run(runCtx, jobID, filePath)
	return jobID
}

// Status returns the tracker snapshot for one run.
func (s *Service) Status(jobID string) (jobs.State, bool) {
	return s.tracker.Get(jobID)
}

func (s *Service) run(ctx context.Context, jobID, filePath string) {
	start := time.Now()
	defer func() {
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			s.logg.Warn(s.logg.WithField(ctx, "file", filePath), "failed to remove upload after run")
		}
	}()

	source, err := tabular.Open(filePath, s.sheetName)
	if err != nil {
		s.abort(ctx, jobID, start, err)
		return
	}
	rows, err := source.ReadAll(ctx)
	if err != nil {
		s.abort(ctx, jobID, start, err)
		return
	}

	aggregates, warnings := GroupRows(rows)
	if len(warnings) > 0 {
		dropped := make([]error, len(warnings))
		for i, w := range warnings {
			dropped[i] = w
		}
		warnCtx := s.logg.WithFields(ctx, map[string]any{
			"dropped_rows": len(warnings),
			"detail":       multierr.Combine(dropped...).Error(),
		})
		s.logg.Warn(warnCtx, "source rows dropped before grouping")
	}

	s.tracker.SetTotal(jobID, len(aggregates))
	s.logg.Info(s.logg.WithField(ctx, "orders", len(aggregates)), "ingestion run started")

	// Orders commit strictly one after another; identity merges for the same
	// customer stay ordered that way.
	for _, agg := range aggregates {
		orderCtx := s.logg.WithBillNumber(ctx, agg.BillNumber)
		outcome, err := s.committer.Commit(ctx, agg)
		s.tracker.Record(jobID, outcome)
		s.metrics.IncOrder(outcome.String())
		if err != nil {
			s.logg.Error(orderCtx, "order failed to commit", err)
		}
	}

	s.tracker.Complete(jobID)
	s.metrics.IncRun("completed")
	s.metrics.ObserveRunDuration("completed", time.Since(start))
	s.logg.Info(ctx, "ingestion run completed")
}

func (s *Service) abort(ctx context.Context, jobID string, start time.Time, err error) {
	s.tracker.Fail(jobID, err.Error())
	s.metrics.IncRun("failed")
	s.metrics.ObserveRunDuration("failed", time.Since(start))
	s.logg.Error(ctx, "ingestion run aborted", err)
}

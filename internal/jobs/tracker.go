package jobs

import (
	"sync"
	"time"

	"github.com/adityarao/billsync-backend/pkg/enums"
)

// State is a point-in-time snapshot of one ingestion run.
type State struct {
	JobID      string          `json:"job_id"`
	Status     enums.JobStatus `json:"status"`
	TotalRows  int             `json:"total_rows"`
	Inserted   int             `json:"inserted"`
	Skipped    int             `json:"skipped"`
	Failed     int             `json:"failed"`
	Error      string          `json:"error,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}

// Tracker keeps run state in process memory for polling. State does not
// survive a restart; the orders table is the durable record.
type Tracker struct {
	mu   sync.RWMutex
	runs map[string]*State
}

func NewTracker() *Tracker {
	return &Tracker{runs: make(map[string]*State)}
}

// Create registers a pending run under the given id.
func (t *Tracker) Create(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.runs[jobID] = &State{
		JobID:     jobID,
		Status:    enums.JobStatusPending,
		StartedAt: time.Now().UTC(),
	}
}

// SetTotal records how many orders the run will attempt.
func (t *Tracker) SetTotal(jobID string, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if run, ok := t.runs[jobID]; ok {
		run.TotalRows = total
	}
}

// Record bumps the counter for a single order outcome.
func (t *Tracker) Record(jobID string, outcome enums.OrderOutcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	run, ok := t.runs[jobID]
	if !ok {
		return
	}
	switch outcome {
	case enums.OrderOutcomeInserted:
		run.Inserted++
	case enums.OrderOutcomeSkipped:
		run.Skipped++
	case enums.OrderOutcomeFailed:
		run.Failed++
	}
}

// Complete marks the run finished. Per-order failures do not make a run
// FAILED; only an aborted run does.
func (t *Tracker) Complete(jobID string) {
	t.finish(jobID, enums.JobStatusCompleted, "")
}

// Fail marks the run aborted with the given cause.
func (t *Tracker) Fail(jobID string, cause string) {
	t.finish(jobID, enums.JobStatusFailed, cause)
}

func (t *Tracker) finish(jobID string, status enums.JobStatus, cause string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	run, ok := t.runs[jobID]
	if !ok {
		return
	}
	now := time.Now().UTC()
	run.Status = status
	run.Error = cause
	run.FinishedAt = &now
}

// Get returns a copy of the run state, or false for an unknown id.
func (t *Tracker) Get(jobID string) (State, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	run, ok := t.runs[jobID]
	if !ok {
		return State{}, false
	}
	snapshot := *run
	if run.FinishedAt != nil {
		finished := *run.FinishedAt
		snapshot.FinishedAt = &finished
	}
	return snapshot, true
}

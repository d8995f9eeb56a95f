package jobs

import (
	"sync"
	"testing"

	"github.com/adityarao/billsync-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerLifecycle(t *testing.T) {
	tracker := NewTracker()
	tracker.Create("job-1")

	state, ok := tracker.Get("job-1")
	require.True(t, ok)
	assert.Equal(t, enums.JobStatusPending, state.Status)
	assert.Nil(t, state.FinishedAt)

	tracker.SetTotal("job-1", 3)
	tracker.Record("job-1", enums.OrderOutcomeInserted)
	tracker.Record("job-1", enums.OrderOutcomeSkipped)
	tracker.Record("job-1", enums.OrderOutcomeFailed)
	tracker.Complete("job-1")

	state, ok = tracker.Get("job-1")
	require.True(t, ok)
	assert.Equal(t, enums.JobStatusCompleted, state.Status)
	assert.Equal(t, 3, state.TotalRows)
	assert.Equal(t, 1, state.Inserted)
	assert.Equal(t, 1, state.Skipped)
	assert.Equal(t, 1, state.Failed)
	require.NotNil(t, state.FinishedAt)
}

func TestTrackerFail(t *testing.T) {
	tracker := NewTracker()
	tracker.Create("job-2")
	tracker.Fail("job-2", "open workbook: file is corrupt")

	state, ok := tracker.Get("job-2")
	require.True(t, ok)
	assert.Equal(t, enums.JobStatusFailed, state.Status)
	assert.Equal(t, "open workbook: file is corrupt", state.Error)
}

func TestTrackerUnknownJob(t *testing.T) {
	tracker := NewTracker()

	_, ok := tracker.Get("missing")
	assert.False(t, ok)

	// Updates for unknown ids are dropped, not panics.
	tracker.SetTotal("missing", 5)
	tracker.Record("missing", enums.OrderOutcomeInserted)
	tracker.Complete("missing")
}

func TestTrackerSnapshotIsolation(t *testing.T) {
	tracker := NewTracker()
	tracker.Create("job-3")

	before, _ := tracker.Get("job-3")
	tracker.Record("job-3", enums.OrderOutcomeInserted)
	after, _ := tracker.Get("job-3")

	assert.Equal(t, 0, before.Inserted)
	assert.Equal(t, 1, after.Inserted)
}

func TestTrackerConcurrentRecords(t *testing.T) {
	tracker := NewTracker()
	tracker.Create("job-4")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Record("job-4", enums.OrderOutcomeInserted)
		}()
	}
	wg.Wait()

	state, _ := tracker.Get("job-4")
	assert.Equal(t, 50, state.Inserted)
}

package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepository struct {
	bills []string
	err   error
}

func (s stubRepository) ListBillNumbers(ctx context.Context) ([]string, error) {
	return s.bills, s.err
}

func TestDeltaThreeWaySplit(t *testing.T) {
	svc := NewService(stubRepository{bills: []string{"INV-1", "INV-2", "INV-3"}})

	report, err := svc.Delta(context.Background(), []string{"INV-2", "INV-4", "INV-1"})
	require.NoError(t, err)

	assert.Equal(t, 3, report.SourceCount)
	assert.Equal(t, 3, report.PersistedCount)
	assert.Equal(t, 2, report.MatchedCount)
	assert.Equal(t, []string{"INV-4"}, report.Missing)
	assert.Equal(t, []string{"INV-3"}, report.Extra)
}

func TestDeltaNormalizesSourceEntries(t *testing.T) {
	svc := NewService(stubRepository{bills: []string{"INV-1"}})

	report, err := svc.Delta(context.Background(), []string{" INV-1 ", "INV-1", "", "  "})
	require.NoError(t, err)

	// Whitespace is trimmed, empties dropped, repeats counted once.
	assert.Equal(t, 1, report.SourceCount)
	assert.Equal(t, 1, report.MatchedCount)
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Extra)
}

func TestDeltaExactMatchOnly(t *testing.T) {
	svc := NewService(stubRepository{bills: []string{"INV-1"}})

	report, err := svc.Delta(context.Background(), []string{"inv-1"})
	require.NoError(t, err)

	assert.Equal(t, 0, report.MatchedCount)
	assert.Equal(t, []string{"inv-1"}, report.Missing)
	assert.Equal(t, []string{"INV-1"}, report.Extra)
}

func TestDeltaEmptyInputs(t *testing.T) {
	svc := NewService(stubRepository{})

	report, err := svc.Delta(context.Background(), nil)
	require.NoError(t, err)

	assert.Zero(t, report.SourceCount)
	assert.Zero(t, report.MatchedCount)
	assert.NotNil(t, report.Missing)
	assert.NotNil(t, report.Extra)
}

func TestDeltaRepositoryError(t *testing.T) {
	svc := NewService(stubRepository{err: errors.New("db down")})

	_, err := svc.Delta(context.Background(), []string{"INV-1"})
	require.Error(t, err)
}

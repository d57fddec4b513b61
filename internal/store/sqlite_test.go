package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleContract() *model.Contract {
	return &model.Contract{
		ProgramTitle: "Leadership Masterclass",
		Status:       model.StatusReadyToFill,
	}
}

func TestSQLite_RunLifecycle(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "brochure.pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)

	require.NoError(t, s.CompleteRun(ctx, run.ID, sampleContract()))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Contract)
	assert.Equal(t, "Leadership Masterclass", got.Contract.ProgramTitle)
	assert.Empty(t, got.Error)
}

func TestSQLite_FailRun(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "broken.pdf")
	require.NoError(t, err)
	require.NoError(t, s.FailRun(ctx, run.ID, "open: not a pdf"))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	assert.Equal(t, "open: not a pdf", got.Error)
	assert.Nil(t, got.Contract)
}

func TestSQLite_UpdateMissingRun(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	assert.Error(t, s.CompleteRun(ctx, "missing", sampleContract()))
	assert.Error(t, s.FailRun(ctx, "missing", "x"))

	_, err := s.GetRun(ctx, "missing")
	assert.Error(t, err)
}

func TestSQLite_ListRunsFilter(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	a, err := s.CreateRun(ctx, "a.pdf")
	require.NoError(t, err)
	_, err = s.CreateRun(ctx, "b.pdf")
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(ctx, a.ID, sampleContract()))

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	complete, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, a.ID, complete[0].ID)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), configWithDriver("oracle"))
	assert.Error(t, err)
}

func TestNew_DefaultsToSQLite(t *testing.T) {
	cfg := configWithDriver("")
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "runs.db")

	s, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &SQLiteStore{}, s)
}

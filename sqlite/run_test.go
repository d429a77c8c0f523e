package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/devdocs"
	"github.com/fwojciec/devdocs/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr[T any](v T) *T {
	return &v
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("creates running run with generated ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()

		run := &devdocs.Run{Requested: []string{"python", "go"}}
		require.NoError(t, svc.CreateRun(ctx, run))

		assert.NotEmpty(t, run.ID, "ID should be generated")
		assert.Equal(t, devdocs.RunRunning, run.Status)
		assert.False(t, run.StartedAt.IsZero(), "StartedAt should be set")
	})

	t.Run("returns error for invalid status", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		err := svc.CreateRun(context.Background(), &devdocs.Run{Status: "bogus"})
		require.Error(t, err)
		assert.Equal(t, devdocs.EINVALID, devdocs.ErrorCode(err))
	})
}

func TestRunService_FinishRun(t *testing.T) {
	t.Parallel()

	t.Run("sets status, resolved slugs, and finish time", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()

		run := &devdocs.Run{Requested: []string{"python"}}
		require.NoError(t, svc.CreateRun(ctx, run))

		finished, err := svc.FinishRun(ctx, run.ID, devdocs.RunUpdate{
			Resolved: []string{"python~3.12"},
			Status:   devdocs.RunSucceeded,
		})
		require.NoError(t, err)
		assert.Equal(t, devdocs.RunSucceeded, finished.Status)
		assert.Equal(t, []string{"python~3.12"}, finished.Resolved)
		assert.False(t, finished.FinishedAt.IsZero())

		last, err := svc.LastRun(ctx, devdocs.RunFilter{})
		require.NoError(t, err)
		assert.Equal(t, run.ID, last.ID)
		assert.Equal(t, []string{"python"}, last.Requested)
		assert.Equal(t, []string{"python~3.12"}, last.Resolved)
		assert.Equal(t, devdocs.RunSucceeded, last.Status)
		assert.False(t, last.FinishedAt.IsZero())
	})

	t.Run("records failure message", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()

		run := &devdocs.Run{Requested: []string{"go"}}
		require.NoError(t, svc.CreateRun(ctx, run))

		finished, err := svc.FinishRun(ctx, run.ID, devdocs.RunUpdate{
			Status: devdocs.RunFailed,
			Error:  "fetch entries for go: HTTP 500",
		})
		require.NoError(t, err)
		assert.Equal(t, "fetch entries for go: HTTP 500", finished.Error)
	})

	t.Run("returns ENOTFOUND for unknown run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		_, err := svc.FinishRun(context.Background(), "nonexistent-id", devdocs.RunUpdate{Status: devdocs.RunSucceeded})
		require.Error(t, err)
		assert.Equal(t, devdocs.ENOTFOUND, devdocs.ErrorCode(err))
	})
}

func TestRunService_LastRun(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND when no runs exist", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		_, err := svc.LastRun(context.Background(), devdocs.RunFilter{})
		require.Error(t, err)
		assert.Equal(t, devdocs.ENOTFOUND, devdocs.ErrorCode(err))
	})

	t.Run("returns most recently started run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()

		older := &devdocs.Run{Requested: []string{"go"}, StartedAt: time.Now().Add(-time.Hour)}
		newer := &devdocs.Run{Requested: []string{"go"}}
		require.NoError(t, svc.CreateRun(ctx, older))
		require.NoError(t, svc.CreateRun(ctx, newer))

		last, err := svc.LastRun(ctx, devdocs.RunFilter{})
		require.NoError(t, err)
		assert.Equal(t, newer.ID, last.ID)
	})

	t.Run("filters by status and requested set", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()

		ok := &devdocs.Run{Requested: []string{"go"}, StartedAt: time.Now().Add(-2 * time.Hour)}
		require.NoError(t, svc.CreateRun(ctx, ok))
		_, err := svc.FinishRun(ctx, ok.ID, devdocs.RunUpdate{Status: devdocs.RunSucceeded})
		require.NoError(t, err)

		failed := &devdocs.Run{Requested: []string{"go"}, StartedAt: time.Now().Add(-time.Hour)}
		require.NoError(t, svc.CreateRun(ctx, failed))
		_, err = svc.FinishRun(ctx, failed.ID, devdocs.RunUpdate{Status: devdocs.RunFailed})
		require.NoError(t, err)

		other := &devdocs.Run{Requested: []string{"python"}}
		require.NoError(t, svc.CreateRun(ctx, other))
		_, err = svc.FinishRun(ctx, other.ID, devdocs.RunUpdate{Status: devdocs.RunSucceeded})
		require.NoError(t, err)

		last, err := svc.LastRun(ctx, devdocs.RunFilter{
			Status:    ptr(devdocs.RunSucceeded),
			Requested: []string{"go"},
		})
		require.NoError(t, err)
		assert.Equal(t, ok.ID, last.ID)

		_, err = svc.LastRun(ctx, devdocs.RunFilter{Requested: []string{"rust"}})
		assert.Equal(t, devdocs.ENOTFOUND, devdocs.ErrorCode(err))
	})
}

func TestRunService_Fetches(t *testing.T) {
	t.Parallel()

	t.Run("records and finds fetches by run and slug", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()

		run := &devdocs.Run{Requested: []string{"go", "python"}}
		require.NoError(t, svc.CreateRun(ctx, run))

		goFetch := &devdocs.Fetch{RunID: run.ID, Slug: "go", Entries: 42, Bytes: 1024, ContentHash: "abc"}
		pyFetch := &devdocs.Fetch{RunID: run.ID, Slug: "python~3.12", Entries: 7, Bytes: 256, ContentHash: "def"}
		require.NoError(t, svc.CreateFetch(ctx, goFetch))
		require.NoError(t, svc.CreateFetch(ctx, pyFetch))
		assert.NotEmpty(t, goFetch.ID)

		all, err := svc.FindFetches(ctx, devdocs.FetchFilter{RunID: &run.ID})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		bySlug, err := svc.FindFetches(ctx, devdocs.FetchFilter{Slug: ptr("go")})
		require.NoError(t, err)
		require.Len(t, bySlug, 1)
		assert.Equal(t, 42, bySlug[0].Entries)
		assert.Equal(t, 1024, bySlug[0].Bytes)
		assert.Equal(t, "abc", bySlug[0].ContentHash)
		assert.Equal(t, run.ID, bySlug[0].RunID)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()

		run := &devdocs.Run{}
		require.NoError(t, svc.CreateRun(ctx, run))
		for _, slug := range []string{"a", "b", "c"} {
			require.NoError(t, svc.CreateFetch(ctx, &devdocs.Fetch{RunID: run.ID, Slug: slug}))
		}

		page, err := svc.FindFetches(ctx, devdocs.FetchFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, page, 2)

		rest, err := svc.FindFetches(ctx, devdocs.FetchFilter{Offset: 2})
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})

	t.Run("rejects fetch without run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		err := svc.CreateFetch(context.Background(), &devdocs.Fetch{Slug: "go"})
		require.Error(t, err)
		assert.Equal(t, devdocs.EINVALID, devdocs.ErrorCode(err))
	})

	t.Run("rejects fetch for unknown run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		err := svc.CreateFetch(context.Background(), &devdocs.Fetch{RunID: "missing", Slug: "go"})
		require.Error(t, err)
	})
}

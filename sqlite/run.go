package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/devdocs"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ devdocs.RunService = (*RunService)(nil)

// RunService implements devdocs.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records the start of a run.
func (s *RunService) CreateRun(ctx context.Context, run *devdocs.Run) error {
	if run.Status == "" {
		run.Status = devdocs.RunRunning
	}
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, requested, resolved, status, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, encodeSlugs(run.Requested), encodeSlugs(run.Resolved), string(run.Status), run.Error,
		formatTime(run.StartedAt), formatTime(run.FinishedAt))

	return err
}

// FinishRun sets the final status of a run and stamps its finish time.
func (s *RunService) FinishRun(ctx context.Context, id string, upd devdocs.RunUpdate) (*devdocs.Run, error) {
	run, err := s.findRunByID(ctx, id)
	if err != nil {
		return nil, err
	}

	run.Status = upd.Status
	run.Error = upd.Error
	if upd.Resolved != nil {
		run.Resolved = upd.Resolved
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}
	run.FinishedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE runs
		SET resolved = ?, status = ?, error = ?, finished_at = ?
		WHERE id = ?
	`, encodeSlugs(run.Resolved), string(run.Status), run.Error, formatTime(run.FinishedAt), id)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// LastRun returns the most recently started run matching the filter.
func (s *RunService) LastRun(ctx context.Context, filter devdocs.RunFilter) (*devdocs.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, requested, resolved, status, error, started_at, finished_at FROM runs WHERE 1=1")

	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.Requested != nil {
		query.WriteString(" AND requested = ?")
		args = append(args, encodeSlugs(filter.Requested))
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC LIMIT 1")

	run, err := scanRun(s.db.QueryRowContext(ctx, query.String(), args...))
	if err == sql.ErrNoRows {
		return nil, devdocs.Errorf(devdocs.ENOTFOUND, "no index runs recorded")
	}
	return run, err
}

func (s *RunService) findRunByID(ctx context.Context, id string) (*devdocs.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, requested, resolved, status, error, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, devdocs.Errorf(devdocs.ENOTFOUND, "run not found")
	}
	return run, err
}

func scanRun(row *sql.Row) (*devdocs.Run, error) {
	var run devdocs.Run
	var requested, resolved, status, startedAt, finishedAt string

	if err := row.Scan(&run.ID, &requested, &resolved, &status, &run.Error, &startedAt, &finishedAt); err != nil {
		return nil, err
	}
	run.Status = devdocs.RunStatus(status)

	var err error
	if run.Requested, err = decodeSlugs(requested, "requested"); err != nil {
		return nil, err
	}
	if run.Resolved, err = decodeSlugs(resolved, "resolved"); err != nil {
		return nil, err
	}
	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseOptionalTime(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &run, nil
}

// CreateFetch records a persisted entries file.
func (s *RunService) CreateFetch(ctx context.Context, fetch *devdocs.Fetch) error {
	if err := fetch.Validate(); err != nil {
		return err
	}

	fetch.ID = uuid.New().String()
	if fetch.FetchedAt.IsZero() {
		fetch.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fetches (id, run_id, slug, entries, bytes, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, fetch.ID, fetch.RunID, fetch.Slug, fetch.Entries, fetch.Bytes, fetch.ContentHash,
		formatTime(fetch.FetchedAt))

	return err
}

// FindFetches retrieves fetches matching the filter, newest first.
func (s *RunService) FindFetches(ctx context.Context, filter devdocs.FetchFilter) ([]*devdocs.Fetch, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, slug, entries, bytes, content_hash, fetched_at FROM fetches WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fetches []*devdocs.Fetch
	for rows.Next() {
		var fetch devdocs.Fetch
		var fetchedAt string

		if err := rows.Scan(&fetch.ID, &fetch.RunID, &fetch.Slug, &fetch.Entries, &fetch.Bytes,
			&fetch.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}

		var parseErr error
		fetch.FetchedAt, parseErr = parseRFC3339(fetchedAt, "fetched_at")
		if parseErr != nil {
			return nil, parseErr
		}

		fetches = append(fetches, &fetch)
	}

	return fetches, rows.Err()
}

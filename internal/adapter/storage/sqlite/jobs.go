package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/port"
)

const jobColumns = `id, user_id, video_url, video_title, video_duration, video_path,
	transcript_path, status, progress, current_step, error_message, clips_created,
	created_at, started_at, completed_at`

func (s *Store) CreateJob(ctx context.Context, job *domain.Job) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if job.Status == "" {
		job.Status = domain.JobStatusPending
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO jobs (`+jobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.UserID, job.VideoURL, job.VideoTitle, job.VideoDuration, job.VideoPath,
		job.TranscriptPath, string(job.Status), job.Progress, job.CurrentStep, job.ErrorMessage,
		job.ClipsCreated, job.CreatedAt.UTC(), job.StartedAt, job.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

func (s *Store) UpdateJob(ctx context.Context, job *domain.Job) error {
	res, err := s.db.ExecContext(ctx, updateJobSQL, updateJobArgs(job)...)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return expectRow(res)
}

// CompleteJob writes the job row and inserts its clips in one transaction.
func (s *Store) CompleteJob(ctx context.Context, job *domain.Job, clips []domain.Clip) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, updateJobSQL, updateJobArgs(job)...)
		if err != nil {
			return fmt.Errorf("update job: %w", err)
		}
		if err := expectRow(res); err != nil {
			return err
		}
		for i := range clips {
			if err := insertClip(ctx, tx, &clips[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) ListJobsByStatus(ctx context.Context, statuses ...domain.JobStatus) ([]*domain.Job, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(statuses)), ",")
	args := make([]any, len(statuses))
	for i, st := range statuses {
		args[i] = string(st)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE status IN (`+placeholders+`) ORDER BY created_at, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var jobs []*domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// FailActiveJobs marks every job left in a running stage as failed. It is
// meant for startup, when no worker can still own those jobs.
func (s *Store) FailActiveJobs(ctx context.Context, message string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE jobs
		SET status = ?, error_message = ?, completed_at = ?
		WHERE status IN (?, ?, ?, ?)`,
		string(domain.JobStatusFailed), message, time.Now().UTC(),
		string(domain.JobStatusDownloading), string(domain.JobStatusTranscribing),
		string(domain.JobStatusAnalyzing), string(domain.JobStatusSlicing),
	)
	if err != nil {
		return 0, fmt.Errorf("fail active jobs: %w", err)
	}
	return res.RowsAffected()
}

const updateJobSQL = `UPDATE jobs SET
	video_title = ?, video_duration = ?, video_path = ?, transcript_path = ?,
	status = ?, progress = ?, current_step = ?, error_message = ?, clips_created = ?,
	started_at = ?, completed_at = ?
	WHERE id = ?`

func updateJobArgs(job *domain.Job) []any {
	return []any{
		job.VideoTitle, job.VideoDuration, job.VideoPath, job.TranscriptPath,
		string(job.Status), job.Progress, job.CurrentStep, job.ErrorMessage, job.ClipsCreated,
		nullUTC(job.StartedAt), nullUTC(job.CompletedAt),
		job.ID,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		job    domain.Job
		status string
	)
	err := row.Scan(
		&job.ID, &job.UserID, &job.VideoURL, &job.VideoTitle, &job.VideoDuration, &job.VideoPath,
		&job.TranscriptPath, &status, &job.Progress, &job.CurrentStep, &job.ErrorMessage,
		&job.ClipsCreated, &job.CreatedAt, &job.StartedAt, &job.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	job.Status = domain.JobStatus(status)
	return &job, nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullUTC(t sql.NullTime) sql.NullTime {
	if t.Valid {
		t.Time = t.Time.UTC()
	}
	return t
}

var _ port.JobStore = (*Store)(nil)

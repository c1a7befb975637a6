package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/clipr/internal/domain"
)

func insertClip(ctx context.Context, tx *sql.Tx, c *domain.Clip) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	criteria, err := json.Marshal(nonNil(c.CriteriaMatched))
	if err != nil {
		return fmt.Errorf("encode criteria: %w", err)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO clips (
		id, job_id, filename, file_path, metadata_path, suggested_title, start_time, end_time,
		duration, viral_score, criteria_matched, reasoning, file_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.JobID, c.Filename, c.FilePath, c.MetadataPath, c.SuggestedTitle, c.StartTime, c.EndTime,
		c.Duration, c.ViralScore, string(criteria), c.Reasoning, c.FileSize, c.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert clip %s: %w", c.Filename, err)
	}
	return nil
}

func (s *Store) ListClips(ctx context.Context, jobID string) ([]domain.Clip, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, job_id, filename, file_path, metadata_path, suggested_title, start_time, end_time,
		duration, viral_score, criteria_matched, reasoning, file_size, created_at
		FROM clips WHERE job_id = ? ORDER BY filename`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list clips: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var clips []domain.Clip
	for rows.Next() {
		var (
			c        domain.Clip
			criteria string
		)
		if err := rows.Scan(&c.ID, &c.JobID, &c.Filename, &c.FilePath, &c.MetadataPath, &c.SuggestedTitle,
			&c.StartTime, &c.EndTime, &c.Duration, &c.ViralScore, &criteria, &c.Reasoning,
			&c.FileSize, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan clip: %w", err)
		}
		if err := json.Unmarshal([]byte(criteria), &c.CriteriaMatched); err != nil {
			return nil, fmt.Errorf("decode criteria for clip %s: %w", c.ID, err)
		}
		clips = append(clips, c)
	}
	return clips, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package domain

import (
	"database/sql"
	"fmt"
	"time"
)

type JobStatus string

const (
	JobStatusPending      JobStatus = "pending"
	JobStatusDownloading  JobStatus = "downloading"
	JobStatusTranscribing JobStatus = "transcribing"
	JobStatusAnalyzing    JobStatus = "analyzing"
	JobStatusSlicing      JobStatus = "slicing"
	JobStatusCompleted    JobStatus = "completed"
	JobStatusFailed       JobStatus = "failed"
	JobStatusCancelled    JobStatus = "cancelled"
)

// ActiveStatuses are the statuses a job holds while a worker is running it.
var ActiveStatuses = []JobStatus{
	JobStatusDownloading,
	JobStatusTranscribing,
	JobStatusAnalyzing,
	JobStatusSlicing,
}

const (
	CancelledMessage   = "Job cancelled by user"
	NoSegmentsMessage  = "No viral segments found"
	InterruptedMessage = "Job interrupted by server restart"
)

// Progress band boundaries. Each stage owns [start, end) of the 0..100 range.
const (
	ProgressMetadata        = 10
	ProgressDownloadStart   = 20
	ProgressTranscribeStart = 40
	ProgressAnalyzeStart    = 60
	ProgressSliceStart      = 80
	ProgressDone            = 100
)

type Job struct {
	ID             string
	UserID         string
	VideoURL       string
	VideoTitle     string
	VideoDuration  float64
	VideoPath      string
	TranscriptPath string
	Status         JobStatus
	Progress       int
	CurrentStep    string
	ErrorMessage   string
	ClipsCreated   int
	CreatedAt      time.Time
	StartedAt      sql.NullTime
	CompletedAt    sql.NullTime
}

func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

func (s JobStatus) IsActive() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// CanTransition reports whether a job may move from one status to another.
// Stages only move forward; any non-terminal status may fail or be cancelled.
func CanTransition(from, to JobStatus) bool {
	if from.IsTerminal() {
		return false
	}
	switch to {
	case JobStatusFailed, JobStatusCancelled:
		return true
	}
	switch from {
	case JobStatusPending:
		return to == JobStatusDownloading
	case JobStatusDownloading:
		return to == JobStatusTranscribing
	case JobStatusTranscribing:
		return to == JobStatusAnalyzing
	case JobStatusAnalyzing:
		return to == JobStatusSlicing || to == JobStatusCompleted
	case JobStatusSlicing:
		return to == JobStatusCompleted
	}
	return false
}

// TransitionTo moves the job to status, stamping StartedAt on the first stage
// and CompletedAt on terminal statuses.
func (j *Job) TransitionTo(status JobStatus, now time.Time) error {
	if j.Status == status {
		return nil
	}
	if !CanTransition(j.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, j.Status, status)
	}
	if status == JobStatusDownloading && !j.StartedAt.Valid {
		j.StartedAt = sql.NullTime{Time: now, Valid: true}
	}
	if status.IsTerminal() {
		j.CompletedAt = sql.NullTime{Time: now, Valid: true}
	}
	j.Status = status
	return nil
}

// ScaleProgress maps a stage-local percentage (0..100) into [start, end].
func ScaleProgress(start, end int, percent float64) int {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return start + int(float64(end-start)*percent/100)
}

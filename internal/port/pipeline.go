package port

import (
	"context"

	"github.com/bnema/clipr/internal/domain"
)

// ProgressFunc receives stage-local completion in the range 0..100.
type ProgressFunc func(percent float64)

type DownloadRequest struct {
	URL      string
	Quality  string
	Dir      string
	Filename string
}

type VideoSource interface {
	Metadata(ctx context.Context, url string) (*domain.VideoMetadata, error)
	// Download returns the local path of the video. An existing file at the
	// expected path is returned without fetching.
	Download(ctx context.Context, req DownloadRequest, onProgress ProgressFunc) (string, error)
}

type Transcriber interface {
	// GetOrBuild returns the cached transcript for cacheKey or builds and
	// caches one from audioPath.
	GetOrBuild(ctx context.Context, audioPath, cacheKey string, onProgress ProgressFunc) (*domain.Transcript, error)
}

type Analyzer interface {
	// Score proposes clip windows. Unparseable model output yields an empty
	// list and a nil error.
	Score(ctx context.Context, segments []domain.Segment, criteria []domain.Criterion, constraints domain.ClipConstraints) ([]domain.ClipWindow, error)
}

type EventPublisher interface {
	Publish(jobID string, event domain.Event)
}

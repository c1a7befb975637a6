package port

import (
	"context"

	"github.com/bnema/clipr/internal/domain"
)

type ClipCutter interface {
	// Cut writes one clip and its metadata sidecar. It returns an error when
	// no usable output file was produced.
	Cut(ctx context.Context, req domain.CutRequest) (*domain.CutResult, error)
}

type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, outputPath string) error
}

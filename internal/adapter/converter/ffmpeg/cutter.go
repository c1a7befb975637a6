package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/infrastructure/logger"
	"github.com/bnema/clipr/internal/port"
)

type clipMetadata struct {
	ClipFilename    string   `json:"clip_filename"`
	SourceVideo     string   `json:"source_video"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	StartSeconds    float64  `json:"start_seconds"`
	EndSeconds      float64  `json:"end_seconds"`
	DurationSeconds float64  `json:"duration_seconds"`
	ViralScore      float64  `json:"viral_score"`
	CriteriaMatched []string `json:"criteria_matched"`
	Reasoning       string   `json:"reasoning"`
	SuggestedTitle  string   `json:"suggested_title"`
	KeyQuote        string   `json:"key_quote,omitempty"`
	PaddingBefore   float64  `json:"padding_before"`
	PaddingAfter    float64  `json:"padding_after"`
	Width           int      `json:"width,omitempty"`
	Height          int      `json:"height,omitempty"`
	HasAudio        *bool    `json:"has_audio,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

// Cut extracts one padded window. A stream copy is tried first; if it fails
// or produces an unusable file the window is re-encoded once.
func (c *Converter) Cut(ctx context.Context, req domain.CutRequest) (*domain.CutResult, error) {
	if err := validatePath(req.SourcePath); err != nil {
		return nil, err
	}
	if req.Window.EndSeconds <= req.Window.StartSeconds {
		return nil, fmt.Errorf("%w: invalid window %.2f-%.2f", domain.ErrCutFailed, req.Window.StartSeconds, req.Window.EndSeconds)
	}
	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create clip directory: %w", err)
	}

	outputPath := filepath.Join(req.OutputDir, req.Filename())
	start, end := req.PaddedRange()

	size, err := c.cutOnce(ctx, req.SourcePath, outputPath, start, end, false)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn.Printf("stream copy failed for %s, re-encoding: %v", req.Filename(), err)
		size, err = c.cutOnce(ctx, req.SourcePath, outputPath, start, end, true)
	}
	if err != nil {
		_ = os.Remove(outputPath)
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCutFailed, req.Filename(), err)
	}

	result := &domain.CutResult{
		Path:     outputPath,
		FileSize: size,
		Duration: end - start,
	}

	meta := clipMetadata{
		ClipFilename:    req.Filename(),
		SourceVideo:     req.SourcePath,
		StartTime:       domain.FormatTimestamp(req.Window.StartSeconds),
		EndTime:         domain.FormatTimestamp(req.Window.EndSeconds),
		StartSeconds:    req.Window.StartSeconds,
		EndSeconds:      req.Window.EndSeconds,
		DurationSeconds: req.Window.Duration(),
		ViralScore:      req.Window.ViralScore,
		CriteriaMatched: req.Window.CriteriaMatched,
		Reasoning:       req.Window.Reasoning,
		SuggestedTitle:  req.Window.SuggestedTitle,
		KeyQuote:        req.Window.KeyQuote,
		PaddingBefore:   req.PaddingBefore,
		PaddingAfter:    req.PaddingAfter,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if probe, err := c.Probe(ctx, outputPath); err != nil {
		logger.Warn.Printf("probe failed for clip %s: %v", req.Filename(), err)
	} else {
		meta.Width, meta.Height = probe.Dimensions()
		hasAudio := probe.HasAudio()
		meta.HasAudio = &hasAudio
		if d := probe.Duration(); d > 0 {
			result.Duration = d
		}
	}

	metadataPath := filepath.Join(req.OutputDir, req.MetadataFilename())
	if err := writeJSON(metadataPath, meta); err != nil {
		logger.Warn.Printf("failed to write clip metadata %s: %v", metadataPath, err)
	} else {
		result.MetadataPath = metadataPath
	}

	return result, nil
}

func (c *Converter) cutOnce(ctx context.Context, input, output string, start, end float64, reencode bool) (int64, error) {
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-i", input,
		"-ss", formatTimestamp(start),
		"-t", formatTimestamp(end - start),
	}
	if reencode {
		args = append(args,
			"-c:v", "libx264",
			"-c:a", "aac",
			"-b:a", "192k",
		)
	} else {
		args = append(args, "-c", "copy")
	}
	args = append(args, "-avoid_negative_ts", "make_zero", "-y", output)

	if _, err := c.runner.Run(ctx, c.ffmpegPath, args...); err != nil {
		return 0, err
	}

	info, err := os.Stat(output)
	if err != nil {
		return 0, fmt.Errorf("output file was not created: %w", err)
	}
	if info.Size() < minClipBytes {
		return 0, fmt.Errorf("output file is too small (%d bytes)", info.Size())
	}
	return info.Size(), nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var _ port.ClipCutter = (*Converter)(nil)

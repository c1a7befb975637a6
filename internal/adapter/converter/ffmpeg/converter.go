package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/infrastructure/execx"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains a null byte")
)

// minClipBytes is the smallest output accepted as a real clip.
const minClipBytes = 1000

type Converter struct {
	ffmpegPath  string
	ffprobePath string
	runner      execx.Runner
}

func NewConverter(ffmpegPath, ffprobePath string, runner execx.Runner) *Converter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	if runner == nil {
		runner = execx.New()
	}
	return &Converter{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		runner:      runner,
	}
}

func (c *Converter) Probe(ctx context.Context, inputPath string) (*domain.ProbeResult, error) {
	if err := validatePath(inputPath); err != nil {
		return nil, err
	}
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	}
	res, err := c.runner.Run(ctx, c.ffprobePath, args...)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe domain.ProbeResult
	if err := json.Unmarshal([]byte(res.Stdout), &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if probe.VideoStream() == nil {
		return nil, fmt.Errorf("no video stream found")
	}
	return &probe, nil
}

func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, 0) {
		return ErrInvalidPath
	}
	return nil
}

// formatTimestamp renders seconds as HH:MM:SS.mmm.
func formatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int64(seconds*1000 + 0.5)
	h := ms / 3_600_000
	m := (ms % 3_600_000) / 60_000
	s := (ms % 60_000) / 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms%1000)
}

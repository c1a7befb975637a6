package ffmpeg

import (
	"context"
	"fmt"
	"os"

	"github.com/bnema/clipr/internal/port"
)

// ExtractAudio writes a 16 kHz mono PCM WAV, the input format whisper.cpp expects.
func (c *Converter) ExtractAudio(ctx context.Context, videoPath, outputPath string) error {
	if err := validatePath(videoPath); err != nil {
		return err
	}
	if err := validatePath(outputPath); err != nil {
		return err
	}

	tmpPath := outputPath + ".tmp.wav"
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		tmpPath,
	}
	if _, err := c.runner.Run(ctx, c.ffmpegPath, args...); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("extract audio: %w", err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("finalize audio: %w", err)
	}
	return nil
}

var _ port.AudioExtractor = (*Converter)(nil)

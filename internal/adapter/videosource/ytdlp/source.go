package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/infrastructure/backoff"
	"github.com/bnema/clipr/internal/infrastructure/execx"
	"github.com/bnema/clipr/internal/infrastructure/logger"
	"github.com/bnema/clipr/internal/port"
)

var progressRe = regexp.MustCompile(`^\[download\]\s+([\d.]+)%`)

type Source struct {
	binary  string
	cookies string
	proxy   string
	runner  execx.Runner
	backoff *backoff.Backoff
}

type Option func(*Source)

func WithCookies(cookies string) Option { return func(s *Source) { s.cookies = cookies } }
func WithProxy(proxy string) Option     { return func(s *Source) { s.proxy = proxy } }
func WithRunner(r execx.Runner) Option  { return func(s *Source) { s.runner = r } }
func WithBackoff(b *backoff.Backoff) Option {
	return func(s *Source) { s.backoff = b }
}

func NewSource(binary string, opts ...Option) *Source {
	if binary == "" {
		binary = "yt-dlp"
	}
	s := &Source{
		binary:  binary,
		runner:  execx.New(),
		backoff: backoff.New(500*time.Millisecond, 4*time.Second, 2.0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type videoInfo struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	Uploader string  `json:"uploader"`
}

func (s *Source) Metadata(ctx context.Context, url string) (*domain.VideoMetadata, error) {
	var lastErr error
	strategies := metadataStrategies(s.cookies)

	for i, st := range strategies {
		if i > 0 {
			if err := s.backoff.Wait(ctx, i); err != nil {
				return nil, err
			}
		}

		args := append([]string{"--dump-single-json", "--skip-download", "--no-playlist", "--no-warnings"}, st.Args...)
		args = append(args, s.proxyArgs()...)
		args = append(args, url)

		res, err := s.runner.Run(ctx, s.binary, args...)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			logger.Debug.Printf("yt-dlp metadata strategy %s failed: %s", st.Name, logger.SanitizeForLog(execx.LastLine(res.Stderr)))
			if !isRetryable(res.Stderr) {
				break
			}
			continue
		}

		info, err := parseInfo(res.Stdout)
		if err != nil {
			lastErr = err
			continue
		}
		return &domain.VideoMetadata{
			ID:       info.ID,
			Title:    info.Title,
			Duration: info.Duration,
			Uploader: info.Uploader,
		}, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no strategy returned a title")
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrNoMetadata, lastErr)
}

// parseInfo accepts either a single video object or a playlist wrapper.
func parseInfo(stdout string) (*videoInfo, error) {
	var raw struct {
		videoInfo
		Entries []videoInfo `json:"entries"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &raw); err != nil {
		return nil, fmt.Errorf("decode yt-dlp output: %w", err)
	}
	info := raw.videoInfo
	if info.Title == "" && len(raw.Entries) > 0 {
		info = raw.Entries[0]
	}
	if info.Title == "" {
		return nil, errors.New("metadata has no title")
	}
	return &info, nil
}

func (s *Source) Download(ctx context.Context, req port.DownloadRequest, onProgress port.ProgressFunc) (string, error) {
	if err := os.MkdirAll(req.Dir, 0755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	finalPath := filepath.Join(req.Dir, req.Filename+".mp4")
	if info, err := os.Stat(finalPath); err == nil && info.Size() > 0 {
		logger.Info.Printf("using cached download %s", finalPath)
		report(onProgress, 100)
		return finalPath, nil
	}

	template := filepath.Join(req.Dir, req.Filename+".%(ext)s")
	strategies := downloadStrategies(req.Quality, s.cookies)

	var lastErr error
	for i, st := range strategies {
		if i > 0 {
			if err := s.backoff.Wait(ctx, i); err != nil {
				return "", err
			}
		}

		args := append([]string{
			"--newline",
			"--no-playlist",
			"--no-warnings",
			"--no-part",
			"--merge-output-format", "mp4",
			"--remux-video", "mp4",
			"-S", "res,ext:mp4:m4a,vcodec:h264,acodec:aac",
			"-o", template,
		}, st.Args...)
		args = append(args, s.proxyArgs()...)
		args = append(args, req.URL)

		res, err := s.runner.Stream(ctx, func(line string) {
			if m := progressRe.FindStringSubmatch(line); m != nil {
				if pct, perr := strconv.ParseFloat(m[1], 64); perr == nil {
					report(onProgress, pct)
				}
			}
		}, s.binary, args...)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			logger.Warn.Printf("yt-dlp download strategy %s failed: %s", st.Name, logger.SanitizeForLog(execx.LastLine(res.Stderr)))
			if !isRetryable(res.Stderr) {
				break
			}
			continue
		}

		path, err := locateOutput(req.Dir, req.Filename, finalPath)
		if err != nil {
			lastErr = err
			continue
		}
		logger.Info.Printf("downloaded %s with strategy %s", path, st.Name)
		report(onProgress, 100)
		return path, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no download strategies available")
	}
	return "", fmt.Errorf("%w after %d strategies: %v", domain.ErrDownloadFailed, len(strategies), lastErr)
}

// locateOutput finds the file yt-dlp wrote. Remuxing normally yields the
// .mp4 path, but audio-only fallbacks can keep another extension.
func locateOutput(dir, name, preferred string) (string, error) {
	if info, err := os.Stat(preferred); err == nil && info.Size() > 0 {
		return preferred, nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, name+".*"))
	if err != nil {
		return "", err
	}
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Size() > 0 && !info.IsDir() {
			return m, nil
		}
	}
	return "", errors.New("yt-dlp reported success but no output file was found")
}

func (s *Source) proxyArgs() []string {
	if s.proxy == "" {
		return nil
	}
	return []string{"--proxy", s.proxy}
}

func report(fn port.ProgressFunc, pct float64) {
	if fn != nil {
		fn(pct)
	}
}

var _ port.VideoSource = (*Source)(nil)

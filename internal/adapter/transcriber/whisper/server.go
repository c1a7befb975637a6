package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/port"
)

type ServerConfig struct {
	BaseURL  string
	Language string
	Client   *http.Client
}

// serverEngine talks to a running whisper.cpp server, which keeps the model
// loaded between requests.
type serverEngine struct {
	cfg ServerConfig
}

// NewServer builds a Transcriber backed by a whisper.cpp server.
func NewServer(srv ServerConfig, cfg Config, cache Cache) (*Transcriber, error) {
	if srv.Client == nil {
		srv.Client = &http.Client{Timeout: 2 * time.Hour}
	}
	srv.BaseURL = strings.TrimRight(srv.BaseURL, "/")
	return newTranscriber(cfg, &serverEngine{cfg: srv}, cache)
}

func (e *serverEngine) prepare(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.cfg.BaseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := e.cfg.Client.Do(req)
	if err != nil {
		return fmt.Errorf("whisper server unreachable: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("whisper server unhealthy: %s", resp.Status)
	}
	return nil
}

type serverResponse struct {
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
	Error string `json:"error"`
}

func (e *serverEngine) transcribe(ctx context.Context, audioPath string, onProgress port.ProgressFunc) ([]domain.Segment, error) {
	body, contentType, err := multipartAudio(audioPath, e.cfg.Language)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.BaseURL+"/inference", body)
	if err != nil {
		_ = body.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	report(onProgress, 0)
	resp, err := e.cfg.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("whisper server request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("read whisper server response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whisper server returned %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}

	var out serverResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode whisper server response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("whisper server: %s", out.Error)
	}

	segs := make([]domain.Segment, 0, len(out.Segments))
	for _, s := range out.Segments {
		if text := strings.TrimSpace(s.Text); text != "" {
			segs = append(segs, domain.Segment{Start: s.Start, End: s.End, Text: text})
		}
	}
	return segs, nil
}

// multipartAudio streams the form body so the WAV is never held in memory.
// The writer goroutine ends when the body is fully read or closed.
func multipartAudio(audioPath, language string) (io.ReadCloser, string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("open audio: %w", err)
	}

	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	go func() {
		defer func() { _ = f.Close() }()
		pw.CloseWithError(writeForm(w, f, filepath.Base(audioPath), language))
	}()
	return pr, w.FormDataContentType(), nil
}

func writeForm(w *multipart.Writer, audio io.Reader, filename, language string) error {
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return fmt.Errorf("read audio: %w", err)
	}
	fields := [][2]string{{"response_format", "verbose_json"}, {"temperature", "0.0"}}
	if lang := normalizeLanguage(language); lang != "" {
		fields = append(fields, [2]string{"language", lang})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}
	return w.Close()
}

package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/infrastructure/execx"
	"github.com/bnema/clipr/internal/port"
)

var progressRe = regexp.MustCompile(`progress\s*=\s*(\d+)%`)

type CLIConfig struct {
	Binary   string
	Model    string // model file, or a directory holding .bin/.gguf files
	Language string
	Threads  int
	WorkDir  string
	Runner   execx.Runner
}

// cliEngine drives the whisper.cpp command line tool.
type cliEngine struct {
	cfg       CLIConfig
	modelPath string

	stat     func(name string) (os.FileInfo, error)
	readDir  func(name string) ([]os.DirEntry, error)
	readFile func(name string) ([]byte, error)
}

// NewCLI builds a Transcriber backed by the whisper.cpp CLI.
func NewCLI(cli CLIConfig, cfg Config, cache Cache) (*Transcriber, error) {
	if cli.Binary == "" {
		cli.Binary = "whisper-cli"
	}
	if cli.Runner == nil {
		cli.Runner = execx.New()
	}
	if cli.WorkDir == "" {
		cli.WorkDir = os.TempDir()
	}
	return newTranscriber(cfg, &cliEngine{
		cfg:      cli,
		stat:     os.Stat,
		readDir:  os.ReadDir,
		readFile: os.ReadFile,
	}, cache)
}

func (e *cliEngine) prepare(context.Context) error {
	path, err := e.resolveModelPath(e.cfg.Model)
	if err != nil {
		return err
	}
	e.modelPath = path
	return nil
}

func (e *cliEngine) transcribe(ctx context.Context, audioPath string, onProgress port.ProgressFunc) ([]domain.Segment, error) {
	if err := os.MkdirAll(e.cfg.WorkDir, 0755); err != nil {
		return nil, fmt.Errorf("create whisper work dir: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	outBase := filepath.Join(e.cfg.WorkDir, base+"_whisper")
	jsonPath := outBase + ".json"
	defer func() { _ = os.Remove(jsonPath) }()

	_, err := e.cfg.Runner.Stream(ctx, func(line string) {
		if m := progressRe.FindStringSubmatch(line); m != nil {
			if pct, perr := strconv.ParseFloat(m[1], 64); perr == nil {
				report(onProgress, pct)
			}
		}
	}, e.cfg.Binary, buildArgs(e.modelPath, audioPath, outBase, e.cfg.Language, e.cfg.Threads)...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("whisper.cpp transcription failed: %w", err)
	}

	data, err := e.readFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("whisper.cpp completed but transcript json is missing: %w", err)
	}
	return parseCLIOutput(data)
}

// buildArgs builds whisper.cpp args for JSON export with progress output.
func buildArgs(modelPath, audioPath, outBase, language string, threads int) []string {
	args := []string{
		"-m", modelPath,
		"-f", audioPath,
		"-of", outBase,
		"-oj",
		"-pp",
	}
	if threads > 0 {
		args = append(args, "-t", strconv.Itoa(threads))
	}
	if lang := normalizeLanguage(language); lang != "" {
		args = append(args, "-l", lang)
	}
	return args
}

type cliOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// parseCLIOutput converts whisper.cpp JSON (millisecond offsets) into
// ordered segments, dropping empty text.
func parseCLIOutput(data []byte) ([]domain.Segment, error) {
	var out cliOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode whisper.cpp json: %w", err)
	}
	segs := make([]domain.Segment, 0, len(out.Transcription))
	for _, t := range out.Transcription {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		segs = append(segs, domain.Segment{
			Start: float64(t.Offsets.From) / 1000,
			End:   float64(t.Offsets.To) / 1000,
			Text:  text,
		})
	}
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start })
	return segs, nil
}

func (e *cliEngine) resolveModelPath(rawPath string) (string, error) {
	modelPath := strings.TrimSpace(rawPath)
	if modelPath == "" {
		return "", fmt.Errorf("%w: whisper model path is empty", domain.ErrNotConfigured)
	}

	info, err := e.stat(modelPath)
	if err != nil {
		return "", fmt.Errorf("cannot access model path: %s", modelPath)
	}
	if !info.IsDir() {
		return modelPath, nil
	}

	entries, err := e.readDir(modelPath)
	if err != nil {
		return "", fmt.Errorf("cannot read model directory: %s", modelPath)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".bin" || ext == ".gguf" {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no .bin or .gguf model files found in: %s", modelPath)
	}
	sort.Strings(names)
	return filepath.Join(modelPath, names[0]), nil
}

// normalizeLanguage trims the configured language. whisper.cpp decodes as
// English when no language is given, so "auto" is passed through to turn on
// detection and only an empty value is dropped.
func normalizeLanguage(raw string) string {
	lang := strings.TrimSpace(raw)
	if strings.EqualFold(lang, "auto") {
		return "auto"
	}
	return lang
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      int
	DataDir   string
	LogLevel  string
	LogFormat string

	BehindProxy  bool
	SubmitLimit  int
	SubmitWindow time.Duration

	MaxWorkers      int
	ShutdownTimeout time.Duration

	MinClipDuration   float64
	MaxClipDuration   float64
	MaxClipsPerVideo  int
	MinViralScore     float64
	ClipPaddingBefore float64
	ClipPaddingAfter  float64
	ActiveCriteria    []string
	CriteriaDir       string

	VideoQuality string
	YtDlpPath    string
	YtDlpCookies string
	YtDlpProxy   string

	FFmpegPath  string
	FFprobePath string

	WhisperPath         string
	WhisperModel        string
	WhisperLanguage     string
	WhisperThreads      int
	WhisperConcurrency  int
	WhisperServerURL    string
	TranscriptCacheSize int

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	RedisURL string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var p parser
	cfg := &Config{
		Port:      p.int("PORT", 7890),
		DataDir:   getEnv("DATA_DIR", "/data"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		BehindProxy:  p.bool("BEHIND_PROXY", false),
		SubmitLimit:  p.int("SUBMIT_RATE_LIMIT", 10),
		SubmitWindow: p.duration("SUBMIT_RATE_WINDOW", time.Minute),

		MaxWorkers:      p.int("MAX_WORKERS", 1),
		ShutdownTimeout: p.duration("SHUTDOWN_TIMEOUT", 30*time.Second),

		MinClipDuration:   p.float("MIN_CLIP_DURATION", 15),
		MaxClipDuration:   p.float("MAX_CLIP_DURATION", 60),
		MaxClipsPerVideo:  p.int("MAX_CLIPS_PER_VIDEO", 5),
		MinViralScore:     p.float("MIN_VIRAL_SCORE", 7.0),
		ClipPaddingBefore: p.float("CLIP_PADDING_BEFORE", 0.5),
		ClipPaddingAfter:  p.float("CLIP_PADDING_AFTER", 0.5),
		ActiveCriteria:    getEnvCSV("ACTIVE_CRITERIA", []string{"viral_hooks", "emotional_peaks", "value_bombs", "humor_moments"}),
		CriteriaDir:       os.Getenv("CRITERIA_DIR"),

		VideoQuality: getEnv("VIDEO_QUALITY", "1080p"),
		YtDlpPath:    getEnv("YT_DLP_PATH", "yt-dlp"),
		YtDlpCookies: os.Getenv("YT_DLP_COOKIES"),
		YtDlpProxy:   os.Getenv("YT_DLP_PROXY"),

		FFmpegPath:  getEnv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: getEnv("FFPROBE_PATH", "ffprobe"),

		WhisperPath:         getEnv("WHISPER_PATH", "whisper-cli"),
		WhisperModel:        getEnv("WHISPER_MODEL", "/models/ggml-small.bin"),
		WhisperLanguage:     getEnv("WHISPER_LANGUAGE", "auto"),
		WhisperThreads:      p.int("WHISPER_THREADS", 4),
		WhisperConcurrency:  p.int("WHISPER_CONCURRENCY", 1),
		WhisperServerURL:    os.Getenv("WHISPER_SERVER_URL"),
		TranscriptCacheSize: p.int("TRANSCRIPT_CACHE_SIZE", 32),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		RedisURL: os.Getenv("REDIS_URL"),
	}
	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.MaxWorkers < 1:
		return fmt.Errorf("MAX_WORKERS must be at least 1")
	case c.MinClipDuration <= 0:
		return fmt.Errorf("MIN_CLIP_DURATION must be positive")
	case c.MinClipDuration > c.MaxClipDuration:
		return fmt.Errorf("MIN_CLIP_DURATION (%.1f) exceeds MAX_CLIP_DURATION (%.1f)", c.MinClipDuration, c.MaxClipDuration)
	case c.MaxClipsPerVideo < 1:
		return fmt.Errorf("MAX_CLIPS_PER_VIDEO must be at least 1")
	case c.MinViralScore < 0 || c.MinViralScore > 10:
		return fmt.Errorf("MIN_VIRAL_SCORE must be between 0 and 10")
	case c.ClipPaddingBefore < 0 || c.ClipPaddingAfter < 0:
		return fmt.Errorf("clip padding must not be negative")
	case len(c.ActiveCriteria) == 0:
		return fmt.Errorf("ACTIVE_CRITERIA must name at least one criterion")
	case c.SubmitLimit < 1:
		return fmt.Errorf("SUBMIT_RATE_LIMIT must be at least 1")
	case c.WhisperConcurrency < 1:
		return fmt.Errorf("WHISPER_CONCURRENCY must be at least 1")
	}
	return nil
}

func (c *Config) TempDir() string   { return filepath.Join(c.DataDir, "temp") }
func (c *Config) OutputDir() string { return filepath.Join(c.DataDir, "output") }
func (c *Config) CacheDir() string  { return filepath.Join(c.DataDir, "cache") }

// parser records the first conversion error so Load can report it once.
type parser struct {
	err error
}

func (p *parser) int(key string, def int) int {
	raw := getEnv(key, strconv.Itoa(def))
	v, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

func (p *parser) float(key string, def float64) float64 {
	raw := getEnv(key, strconv.FormatFloat(def, 'f', -1, 64))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

func (p *parser) bool(key string, def bool) bool {
	raw := getEnv(key, strconv.FormatBool(def))
	v, err := strconv.ParseBool(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, def.String())
	v, err := time.ParseDuration(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvCSV(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/clipr/config"
	"github.com/bnema/clipr/internal/adapter/analyzer/openai"
	"github.com/bnema/clipr/internal/adapter/converter/ffmpeg"
	redisevents "github.com/bnema/clipr/internal/adapter/events/redis"
	HTTPAdapter "github.com/bnema/clipr/internal/adapter/http"
	"github.com/bnema/clipr/internal/adapter/http/ratelimit"
	"github.com/bnema/clipr/internal/adapter/storage/jsonfile"
	sqlitestore "github.com/bnema/clipr/internal/adapter/storage/sqlite"
	"github.com/bnema/clipr/internal/adapter/transcriber/whisper"
	"github.com/bnema/clipr/internal/adapter/videosource/ytdlp"
	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/infrastructure/execx"
	"github.com/bnema/clipr/internal/infrastructure/logger"
	"github.com/bnema/clipr/internal/port"
	"github.com/bnema/clipr/internal/service"
)

func main() {
	if err := run(); err != nil {
		logger.Error.Printf("%v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}

	logger.Info.Printf("starting clipr on port %d, workers=%d", cfg.Port, cfg.MaxWorkers)

	for _, dir := range []string{cfg.DataDir, cfg.TempDir(), cfg.OutputDir(), cfg.CacheDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlitestore.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer func() { _ = store.Close() }()

	transcriber, err := newTranscriber(cfg)
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	criteria, err := openai.LoadCriteria(cfg.CriteriaDir, cfg.ActiveCriteria)
	if err != nil {
		return fmt.Errorf("failed to load criteria: %w", err)
	}

	eventBus := service.NewEventBus()
	events := service.Fanout{eventBus}
	if cfg.RedisURL != "" {
		client, err := redisevents.Dial(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = client.Close() }()
		relay := redisevents.NewRelay(client)
		defer relay.Close()
		events = append(events, relay)
		logger.Info.Printf("relaying job events to redis")
	}

	runner := execx.New()
	converter := ffmpeg.NewConverter(cfg.FFmpegPath, cfg.FFprobePath, runner)
	source := ytdlp.NewSource(cfg.YtDlpPath,
		ytdlp.WithCookies(cfg.YtDlpCookies),
		ytdlp.WithProxy(cfg.YtDlpProxy),
		ytdlp.WithRunner(runner),
	)
	analyzer := openai.New(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if cfg.OpenAIAPIKey == "" {
		logger.Warn.Printf("OPENAI_API_KEY not set, analysis will fail")
	}

	pipeline := service.NewPipeline(service.PipelineDeps{
		Store:       store,
		Source:      source,
		Audio:       converter,
		Transcriber: transcriber,
		Analyzer:    analyzer,
		Cutter:      converter,
		Events:      events,
	}, service.PipelineConfig{
		TempDir:   cfg.TempDir(),
		OutputDir: cfg.OutputDir(),
		Quality:   cfg.VideoQuality,
		Constraints: domain.ClipConstraints{
			MinDuration: cfg.MinClipDuration,
			MaxDuration: cfg.MaxClipDuration,
			MaxClips:    cfg.MaxClipsPerVideo,
			MinScore:    cfg.MinViralScore,
		},
		PaddingBefore: cfg.ClipPaddingBefore,
		PaddingAfter:  cfg.ClipPaddingAfter,
		Criteria:      criteria,
	})

	workerPool := service.NewWorkerPool(pipeline, cfg.MaxWorkers)

	requeued, err := service.Recover(ctx, store, workerPool)
	if err != nil {
		return fmt.Errorf("failed to recover jobs: %w", err)
	}
	if requeued > 0 {
		logger.Info.Printf("requeued %d pending jobs", requeued)
	}
	workerPool.Start(ctx)

	limiter := ratelimit.New(cfg.SubmitLimit, cfg.SubmitWindow, cfg.SubmitWindow*5)
	defer limiter.Close()

	jobSvc := service.NewJobService(store, workerPool)
	server := HTTPAdapter.NewServer(jobSvc, eventBus, limiter, cfg.BehindProxy)
	server.SetHealthCheck(store.Ping)

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info.Printf("server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info.Printf("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error.Printf("http shutdown error: %v", err)
	}

	// In-flight runs are left to finish; whatever outlives the timeout is
	// failed as interrupted on the next start.
	if err := workerPool.Stop(cfg.ShutdownTimeout); err != nil {
		logger.Error.Printf("worker shutdown error: %v", err)
	}

	logger.Info.Printf("shutdown complete")
	return nil
}

func newTranscriber(cfg *config.Config) (port.Transcriber, error) {
	cache, err := jsonfile.NewTranscriptStore(cfg.CacheDir())
	if err != nil {
		return nil, err
	}
	opts := whisper.Config{
		Concurrency: cfg.WhisperConcurrency,
		MemoryItems: cfg.TranscriptCacheSize,
	}
	if cfg.WhisperServerURL != "" {
		logger.Info.Printf("using whisper server at %s", cfg.WhisperServerURL)
		return whisper.NewServer(whisper.ServerConfig{
			BaseURL:  cfg.WhisperServerURL,
			Language: cfg.WhisperLanguage,
		}, opts, cache)
	}
	return whisper.NewCLI(whisper.CLIConfig{
		Binary:   cfg.WhisperPath,
		Model:    cfg.WhisperModel,
		Language: cfg.WhisperLanguage,
		Threads:  cfg.WhisperThreads,
		WorkDir:  cfg.TempDir(),
		Runner:   execx.New(),
	}, opts, cache)
}

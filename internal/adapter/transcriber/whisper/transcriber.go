package whisper

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/infrastructure/logger"
	"github.com/bnema/clipr/internal/port"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/semaphore"
)

// Cache is the durable transcript cache keyed by job.
type Cache interface {
	Get(key string) ([]domain.Segment, error)
	Save(key string, segments []domain.Segment) error
	Path(key string) string
}

// engine runs inference. prepare does the expensive one-time setup.
type engine interface {
	prepare(ctx context.Context) error
	transcribe(ctx context.Context, audioPath string, onProgress port.ProgressFunc) ([]domain.Segment, error)
}

type Transcriber struct {
	engine engine
	cache  Cache
	memory *lru.Cache[string, []domain.Segment]
	sem    *semaphore.Weighted

	initMu      sync.Mutex
	initialized bool
}

type Config struct {
	Concurrency int
	MemoryItems int
}

func newTranscriber(cfg Config, eng engine, cache Cache) (*Transcriber, error) {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.MemoryItems < 1 {
		cfg.MemoryItems = 16
	}
	memory, err := lru.New[string, []domain.Segment](cfg.MemoryItems)
	if err != nil {
		return nil, fmt.Errorf("create transcript lru: %w", err)
	}
	return &Transcriber{
		engine: eng,
		cache:  cache,
		memory: memory,
		sem:    semaphore.NewWeighted(int64(cfg.Concurrency)),
	}, nil
}

func (t *Transcriber) GetOrBuild(ctx context.Context, audioPath, cacheKey string, onProgress port.ProgressFunc) (*domain.Transcript, error) {
	if segs, ok := t.lookup(cacheKey); ok {
		report(onProgress, 100)
		return &domain.Transcript{Segments: segs, CachePath: t.cache.Path(cacheKey)}, nil
	}

	if err := t.ready(ctx); err != nil {
		return nil, err
	}

	if err := t.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer t.sem.Release(1)

	// Another worker may have built it while we waited.
	if segs, ok := t.lookup(cacheKey); ok {
		report(onProgress, 100)
		return &domain.Transcript{Segments: segs, CachePath: t.cache.Path(cacheKey)}, nil
	}

	segs, err := t.engine.transcribe(ctx, audioPath, onProgress)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return &domain.Transcript{}, nil
	}

	if err := t.cache.Save(cacheKey, segs); err != nil {
		return nil, fmt.Errorf("persist transcript: %w", err)
	}
	t.memory.Add(cacheKey, segs)
	report(onProgress, 100)

	return &domain.Transcript{Segments: clone(segs), CachePath: t.cache.Path(cacheKey)}, nil
}

func (t *Transcriber) lookup(key string) ([]domain.Segment, bool) {
	if segs, ok := t.memory.Get(key); ok {
		return clone(segs), true
	}
	segs, err := t.cache.Get(key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn.Printf("transcript cache read for %s failed: %v", key, err)
		}
		return nil, false
	}
	if len(segs) == 0 {
		return nil, false
	}
	t.memory.Add(key, segs)
	return clone(segs), true
}

// ready prepares the engine the first time it is needed. A failed
// preparation is retried on the next call.
func (t *Transcriber) ready(ctx context.Context) error {
	t.initMu.Lock()
	defer t.initMu.Unlock()
	if t.initialized {
		return nil
	}
	if err := t.engine.prepare(ctx); err != nil {
		return err
	}
	t.initialized = true
	return nil
}

func clone(segs []domain.Segment) []domain.Segment {
	out := make([]domain.Segment, len(segs))
	copy(out, segs)
	return out
}

func report(fn port.ProgressFunc, pct float64) {
	if fn != nil {
		fn(pct)
	}
}

var _ port.Transcriber = (*Transcriber)(nil)

package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/infrastructure/backoff"
	"github.com/bnema/clipr/internal/infrastructure/logger"
	"github.com/bnema/clipr/internal/port"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	internalErrorMessage = "Internal error"
	boundsTolerance      = 1.0
)

var errCancelled = errors.New(domain.CancelledMessage)

type PipelineDeps struct {
	Store       port.JobStore
	Source      port.VideoSource
	Audio       port.AudioExtractor
	Transcriber port.Transcriber
	Analyzer    port.Analyzer
	Cutter      port.ClipCutter
	Events      port.EventPublisher
}

type PipelineConfig struct {
	TempDir       string
	OutputDir     string
	Quality       string
	Constraints   domain.ClipConstraints
	PaddingBefore float64
	PaddingAfter  float64
	Criteria      []domain.Criterion
}

// Pipeline runs a job through download, transcribe, analyze and slice. It is
// the only writer of a job's record while the job runs.
type Pipeline struct {
	deps PipelineDeps
	cfg  PipelineConfig

	now   func() time.Time
	newID func() string
	retry *backoff.Backoff
}

func NewPipeline(deps PipelineDeps, cfg PipelineConfig) *Pipeline {
	return &Pipeline{
		deps:  deps,
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
		retry: backoff.New(200*time.Millisecond, 2*time.Second, 2.0),
	}
}

const loadAttempts = 3

// load reads the job, retrying transient store errors. A missing job is not
// retried.
func (p *Pipeline) load(ctx, storeCtx context.Context, jobID string) (*domain.Job, error) {
	for attempt := 1; ; attempt++ {
		job, err := p.deps.Store.GetJob(storeCtx, jobID)
		if err == nil || errors.Is(err, domain.ErrNotFound) || attempt == loadAttempts {
			return job, err
		}
		logger.WithJob(jobID).Warnf("load job (attempt %d): %v", attempt, err)
		if werr := p.retry.Wait(ctx, attempt); werr != nil {
			return nil, err
		}
	}
}

// Run drives jobID to a terminal status. Cancelling ctx cancels the job.
func (p *Pipeline) Run(ctx context.Context, jobID string) {
	log := logger.WithJob(jobID)
	storeCtx := context.WithoutCancel(ctx)

	job, err := p.load(ctx, storeCtx, jobID)
	if err != nil {
		log.Errorf("load job, leaving it for the next start: %v", err)
		return
	}
	if job.Status != domain.JobStatusPending {
		log.Warnf("skipping job in status %s", job.Status)
		return
	}

	s := &sequencer{
		p:        p,
		ctx:      ctx,
		storeCtx: storeCtx,
		job:      job,
		log:      log,
	}
	defer s.recoverPanic()

	s.finish(s.run())
}

type sequencer struct {
	p        *Pipeline
	ctx      context.Context
	storeCtx context.Context
	log      *logrus.Entry

	mu        sync.Mutex
	job       *domain.Job
	audioPath string
}

func (s *sequencer) run() error {
	if err := s.checkpoint(); err != nil {
		return err
	}
	if err := s.download(); err != nil {
		return err
	}

	if err := s.checkpoint(); err != nil {
		return err
	}
	transcript, err := s.transcribe()
	if err != nil {
		return err
	}

	if err := s.checkpoint(); err != nil {
		return err
	}
	windows, err := s.analyze(transcript)
	if err != nil {
		return err
	}
	if len(windows) == 0 {
		s.cleanupAudio()
		s.emitLog(domain.NoSegmentsMessage, domain.LevelInfo)
		return s.complete(nil, domain.NoSegmentsMessage)
	}

	if err := s.checkpoint(); err != nil {
		return err
	}
	return s.slice(windows)
}

func (s *sequencer) download() error {
	job := s.job
	if err := s.enter(domain.JobStatusDownloading, domain.ProgressMetadata, "Fetching video metadata"); err != nil {
		return err
	}

	meta, err := s.p.deps.Source.Metadata(s.ctx, job.VideoURL)
	if err != nil {
		return &domain.StageError{Stage: "download", Message: "Failed to fetch video metadata", Err: err}
	}
	if meta == nil || meta.Title == "" {
		return &domain.StageError{Stage: "download", Message: "Failed to fetch video metadata", Err: domain.ErrNoMetadata}
	}

	s.mu.Lock()
	job.VideoTitle = meta.Title
	job.VideoDuration = meta.Duration
	s.mu.Unlock()
	s.emitLog(fmt.Sprintf("Video: %s (%s)", meta.Title, domain.FormatTimestamp(meta.Duration)), domain.LevelInfo)
	s.progress(domain.ProgressDownloadStart, "Downloading video")

	path, err := s.p.deps.Source.Download(s.ctx, port.DownloadRequest{
		URL:      job.VideoURL,
		Quality:  s.p.cfg.Quality,
		Dir:      s.p.cfg.TempDir,
		Filename: "job_" + job.ID,
	}, s.stageProgress(domain.ProgressDownloadStart, domain.ProgressTranscribeStart, "Downloading video"))
	if err != nil {
		return &domain.StageError{Stage: "download", Message: "Video download failed", Err: err}
	}

	s.mu.Lock()
	job.VideoPath = path
	s.mu.Unlock()
	if err := s.persist(); err != nil {
		return err
	}
	s.emitLog("Video downloaded", domain.LevelSuccess)
	return nil
}

func (s *sequencer) transcribe() (*domain.Transcript, error) {
	job := s.job
	if err := s.enter(domain.JobStatusTranscribing, domain.ProgressTranscribeStart, "Extracting audio"); err != nil {
		return nil, err
	}

	audioPath := filepath.Join(s.p.cfg.TempDir, "job_"+job.ID+"_audio.wav")
	if !nonEmptyFile(audioPath) {
		if err := s.p.deps.Audio.ExtractAudio(s.ctx, job.VideoPath, audioPath); err != nil {
			return nil, &domain.StageError{Stage: "transcribe", Message: "Audio extraction failed", Err: err}
		}
		if !nonEmptyFile(audioPath) {
			return nil, &domain.StageError{Stage: "transcribe", Message: "Audio extraction failed", Err: errors.New("empty audio file")}
		}
	}
	s.audioPath = audioPath

	s.progress(domain.ProgressTranscribeStart, "Transcribing audio")
	transcript, err := s.p.deps.Transcriber.GetOrBuild(s.ctx, audioPath, "job_"+job.ID, s.stageProgress(domain.ProgressTranscribeStart, domain.ProgressAnalyzeStart, "Transcribing audio"))
	if err != nil {
		return nil, &domain.StageError{Stage: "transcribe", Message: "Transcription failed", Err: err}
	}
	if transcript == nil || len(transcript.Segments) == 0 {
		return nil, &domain.StageError{Stage: "transcribe", Message: "Transcription failed", Err: domain.ErrNoSegments}
	}

	s.mu.Lock()
	job.TranscriptPath = transcript.CachePath
	s.mu.Unlock()
	if err := s.persist(); err != nil {
		return nil, err
	}
	s.emitLog(fmt.Sprintf("Transcribed %d segments", len(transcript.Segments)), domain.LevelSuccess)
	return transcript, nil
}

func (s *sequencer) analyze(transcript *domain.Transcript) ([]domain.ClipWindow, error) {
	if err := s.enter(domain.JobStatusAnalyzing, domain.ProgressAnalyzeStart, "Analyzing transcript for viral moments"); err != nil {
		return nil, err
	}

	windows, err := s.p.deps.Analyzer.Score(s.ctx, transcript.Segments, s.p.cfg.Criteria, s.p.cfg.Constraints)
	if err != nil {
		return nil, &domain.StageError{Stage: "analyze", Message: "Transcript analysis failed", Err: err}
	}

	selected := s.validate(windows, transcript)
	if len(selected) > 0 {
		s.emitLog(fmt.Sprintf("Found %d viral segments", len(selected)), domain.LevelSuccess)
	}
	return selected, nil
}

// validate keeps windows that lie inside the transcript and meet the clip
// constraints, best score first.
func (s *sequencer) validate(windows []domain.ClipWindow, transcript *domain.Transcript) []domain.ClipWindow {
	spanStart, spanEnd := transcript.Span()
	inside := make([]domain.ClipWindow, 0, len(windows))
	for _, w := range windows {
		if w.StartSeconds < spanStart-boundsTolerance || w.EndSeconds > spanEnd+boundsTolerance {
			s.log.Warnf("dropping window %.1f-%.1f outside transcript %.1f-%.1f", w.StartSeconds, w.EndSeconds, spanStart, spanEnd)
			continue
		}
		inside = append(inside, w)
	}
	selected := domain.SelectWindows(inside, s.p.cfg.Constraints)
	if dropped := len(windows) - len(selected); dropped > 0 {
		s.log.Infof("%d of %d candidate windows rejected", dropped, len(windows))
	}
	return selected
}

func (s *sequencer) slice(windows []domain.ClipWindow) error {
	job := s.job
	if err := s.enter(domain.JobStatusSlicing, domain.ProgressSliceStart, "Creating clips"); err != nil {
		return err
	}

	outDir := filepath.Join(s.p.cfg.OutputDir, job.ID)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return &domain.StageError{Stage: "slice", Message: "Failed to create output directory", Err: err}
	}
	base := domain.SanitizeBaseName(job.VideoTitle)

	total := len(windows)
	clips := make([]domain.Clip, 0, total)
	for i, w := range windows {
		if err := s.checkpoint(); err != nil {
			return err
		}
		pct := float64(i) / float64(total) * 100
		s.progress(domain.ScaleProgress(domain.ProgressSliceStart, domain.ProgressDone, pct), fmt.Sprintf("Cutting clip %d of %d", i+1, total))

		res, err := s.p.deps.Cutter.Cut(s.ctx, domain.CutRequest{
			SourcePath:    job.VideoPath,
			OutputDir:     outDir,
			BaseName:      base,
			Index:         i + 1,
			Window:        w,
			PaddingBefore: s.p.cfg.PaddingBefore,
			PaddingAfter:  s.p.cfg.PaddingAfter,
		})
		if err != nil {
			if s.ctx.Err() != nil {
				return errCancelled
			}
			s.log.Warnf("clip %d failed: %v", i+1, err)
			s.emitLog(fmt.Sprintf("Clip %d failed: %s", i+1, domain.UserMessage(err)), domain.LevelWarning)
			continue
		}

		duration := res.Duration
		if duration <= 0 {
			duration = w.Duration()
		}
		clips = append(clips, domain.Clip{
			ID:              s.p.newID(),
			JobID:           job.ID,
			Filename:        filepath.Base(res.Path),
			FilePath:        res.Path,
			MetadataPath:    res.MetadataPath,
			SuggestedTitle:  w.SuggestedTitle,
			StartTime:       w.StartSeconds,
			EndTime:         w.EndSeconds,
			Duration:        duration,
			ViralScore:      w.ViralScore,
			CriteriaMatched: w.CriteriaMatched,
			Reasoning:       w.Reasoning,
			FileSize:        res.FileSize,
			CreatedAt:       s.p.now(),
		})
		s.emitLog(fmt.Sprintf("Created clip %d: %s", i+1, w.SuggestedTitle), domain.LevelSuccess)
	}

	s.cleanupAudio()

	message := ""
	switch failed := total - len(clips); {
	case len(clips) == 0:
		message = fmt.Sprintf("No clips could be cut (%d attempted)", total)
		s.emitLog(message, domain.LevelWarning)
	case failed > 0:
		s.emitLog(fmt.Sprintf("%d of %d clips failed", failed, total), domain.LevelWarning)
	}
	return s.complete(clips, message)
}

// complete persists the completed job with its clips in one write.
func (s *sequencer) complete(clips []domain.Clip, message string) error {
	s.mu.Lock()
	done := *s.job
	s.mu.Unlock()

	if err := done.TransitionTo(domain.JobStatusCompleted, s.p.now()); err != nil {
		return err
	}
	done.Progress = domain.ProgressDone
	done.CurrentStep = "Completed"
	done.ClipsCreated = len(clips)
	done.ErrorMessage = message

	if err := s.p.deps.Store.CompleteJob(s.storeCtx, &done, clips); err != nil {
		return fmt.Errorf("save completed job: %w", err)
	}

	s.mu.Lock()
	*s.job = done
	s.mu.Unlock()

	s.emit(domain.Event{Type: domain.EventProgress, Percent: domain.ProgressDone, Step: done.CurrentStep})
	s.emit(domain.Event{Type: domain.EventComplete, ClipsCreated: done.ClipsCreated})
	s.log.Infof("job completed with %d clips", done.ClipsCreated)
	return nil
}

// finish turns the run's error into the job's terminal status.
func (s *sequencer) finish(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, errCancelled) || s.ctx.Err() != nil {
		s.log.Info("job cancelled")
		s.terminate(domain.JobStatusCancelled, domain.CancelledMessage)
		return
	}
	s.log.Errorf("job failed: %v", err)
	s.terminate(domain.JobStatusFailed, domain.UserMessage(err))
}

func (s *sequencer) recoverPanic() {
	if r := recover(); r != nil {
		s.log.Errorf("pipeline panic: %v\n%s", r, debug.Stack())
		s.terminate(domain.JobStatusFailed, internalErrorMessage)
	}
}

func (s *sequencer) terminate(status domain.JobStatus, message string) {
	s.mu.Lock()
	job := s.job
	if job.Status.IsTerminal() {
		s.mu.Unlock()
		return
	}
	if err := job.TransitionTo(status, s.p.now()); err != nil {
		s.mu.Unlock()
		s.log.Errorf("mark job %s: %v", status, err)
		return
	}
	job.ErrorMessage = message
	s.mu.Unlock()

	if err := s.persist(); err != nil {
		s.log.Errorf("persist %s job: %v", status, err)
	}
	s.emit(domain.Event{Type: domain.EventError, Message: message})
}

// enter moves the job into a stage and persists it.
func (s *sequencer) enter(status domain.JobStatus, percent int, step string) error {
	s.mu.Lock()
	err := s.job.TransitionTo(status, s.p.now())
	if err == nil {
		if percent > s.job.Progress {
			s.job.Progress = percent
		}
		s.job.CurrentStep = step
	}
	progress := s.job.Progress
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := s.persist(); err != nil {
		return err
	}
	s.emit(domain.Event{Type: domain.EventProgress, Percent: progress, Step: step})
	return nil
}

// progress records forward progress. Lower values are ignored and
// unchanged values are not re-written.
func (s *sequencer) progress(percent int, step string) {
	s.mu.Lock()
	if percent < s.job.Progress {
		percent = s.job.Progress
	}
	if percent == s.job.Progress && step == s.job.CurrentStep {
		s.mu.Unlock()
		return
	}
	s.job.Progress = percent
	s.job.CurrentStep = step
	s.mu.Unlock()

	if err := s.persist(); err != nil {
		s.log.Warnf("persist progress: %v", err)
	}
	s.emit(domain.Event{Type: domain.EventProgress, Percent: percent, Step: step})
}

// stageProgress maps a stage-local percent into [start, end]. Reports that go
// backwards are held at the best seen so far.
func (s *sequencer) stageProgress(start, end int, step string) port.ProgressFunc {
	var best float64
	return func(pct float64) {
		best = max(best, pct)
		s.progress(domain.ScaleProgress(start, end, best), stepWithPercent(step, best))
	}
}

// stepWithPercent appends the stage-local percent, e.g. "Downloading video (42%)".
func stepWithPercent(step string, pct float64) string {
	return fmt.Sprintf("%s (%d%%)", step, int(min(max(pct, 0), 100)))
}

func (s *sequencer) persist() error {
	s.mu.Lock()
	snapshot := *s.job
	s.mu.Unlock()
	if err := s.p.deps.Store.UpdateJob(s.storeCtx, &snapshot); err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

func (s *sequencer) checkpoint() error {
	if s.ctx.Err() != nil {
		return errCancelled
	}
	return nil
}

func (s *sequencer) cleanupAudio() {
	if s.audioPath == "" {
		return
	}
	if err := os.Remove(s.audioPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warnf("remove scratch audio: %v", err)
	}
	s.audioPath = ""
}

func (s *sequencer) emitLog(message string, level domain.LogLevel) {
	s.emit(domain.Event{Type: domain.EventLog, Message: message, Level: level})
}

func (s *sequencer) emit(event domain.Event) {
	if s.p.deps.Events == nil {
		return
	}
	event.JobID = s.job.ID
	event.Timestamp = s.p.now()
	s.p.deps.Events.Publish(s.job.ID, event)
}

func nonEmptyFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}

package whisper

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/clipr/internal/adapter/storage/jsonfile"
	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/infrastructure/execx/execxtest"
	"github.com/bnema/clipr/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	prepareErr  error
	prepares    atomic.Int32
	runs        atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
	segments    []domain.Segment
}

func (f *fakeEngine) prepare(context.Context) error {
	f.prepares.Add(1)
	return f.prepareErr
}

func (f *fakeEngine) transcribe(_ context.Context, _ string, onProgress port.ProgressFunc) ([]domain.Segment, error) {
	f.runs.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	report(onProgress, 50)
	time.Sleep(f.delay)
	return f.segments, nil
}

func newCache(t *testing.T) *jsonfile.TranscriptStore {
	t.Helper()
	cache, err := jsonfile.NewTranscriptStore(t.TempDir())
	require.NoError(t, err)
	return cache
}

var sampleSegments = []domain.Segment{
	{Start: 0, End: 3.2, Text: "Nobody tells you this."},
	{Start: 3.2, End: 7.9, Text: "Here is the secret."},
}

func TestTranscriber_GetOrBuild_CachesResult(t *testing.T) {
	eng := &fakeEngine{segments: sampleSegments}
	cache := newCache(t)
	tr, err := newTranscriber(Config{}, eng, cache)
	require.NoError(t, err)

	var first []float64
	got1, err := tr.GetOrBuild(context.Background(), "/a.wav", "job_1", func(p float64) { first = append(first, p) })
	require.NoError(t, err)

	var second []float64
	got2, err := tr.GetOrBuild(context.Background(), "/a.wav", "job_1", func(p float64) { second = append(second, p) })
	require.NoError(t, err)

	assert.Equal(t, got1.Segments, got2.Segments)
	assert.Equal(t, cache.Path("job_1"), got1.CachePath)
	assert.Equal(t, int32(1), eng.runs.Load())
	assert.Equal(t, []float64{50, 100}, first)
	assert.Equal(t, []float64{100}, second)
	assert.FileExists(t, cache.Path("job_1"))
}

func TestTranscriber_GetOrBuild_DiskCacheSurvivesRestart(t *testing.T) {
	cache := newCache(t)
	require.NoError(t, cache.Save("job_9", sampleSegments))
	eng := &fakeEngine{}
	tr, err := newTranscriber(Config{}, eng, cache)
	require.NoError(t, err)

	got, err := tr.GetOrBuild(context.Background(), "/a.wav", "job_9", nil)

	require.NoError(t, err)
	assert.Equal(t, sampleSegments, got.Segments)
	assert.Zero(t, eng.runs.Load())
	assert.Zero(t, eng.prepares.Load())
}

func TestTranscriber_GetOrBuild_KeysDoNotCollide(t *testing.T) {
	eng := &fakeEngine{segments: sampleSegments}
	tr, err := newTranscriber(Config{}, eng, newCache(t))
	require.NoError(t, err)

	_, err = tr.GetOrBuild(context.Background(), "/same-title.wav", "job_1", nil)
	require.NoError(t, err)
	_, err = tr.GetOrBuild(context.Background(), "/same-title.wav", "job_2", nil)
	require.NoError(t, err)

	assert.Equal(t, int32(2), eng.runs.Load())
}

func TestTranscriber_GetOrBuild_EmptyNotCached(t *testing.T) {
	eng := &fakeEngine{}
	cache := newCache(t)
	tr, err := newTranscriber(Config{}, eng, cache)
	require.NoError(t, err)

	got, err := tr.GetOrBuild(context.Background(), "/silence.wav", "job_1", nil)

	require.NoError(t, err)
	assert.Empty(t, got.Segments)
	assert.NoFileExists(t, cache.Path("job_1"))
}

func TestTranscriber_PrepareOnceAndRetriedOnFailure(t *testing.T) {
	eng := &fakeEngine{prepareErr: errors.New("model missing"), segments: sampleSegments}
	tr, err := newTranscriber(Config{}, eng, newCache(t))
	require.NoError(t, err)

	_, err = tr.GetOrBuild(context.Background(), "/a.wav", "job_1", nil)
	require.Error(t, err)

	eng.prepareErr = nil
	_, err = tr.GetOrBuild(context.Background(), "/a.wav", "job_1", nil)
	require.NoError(t, err)
	_, err = tr.GetOrBuild(context.Background(), "/b.wav", "job_2", nil)
	require.NoError(t, err)

	assert.Equal(t, int32(2), eng.prepares.Load())
}

func TestTranscriber_SerializesInference(t *testing.T) {
	eng := &fakeEngine{segments: sampleSegments, delay: 20 * time.Millisecond}
	tr, err := newTranscriber(Config{Concurrency: 1}, eng, newCache(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, key := range []string{"job_1", "job_2", "job_3"} {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			_, _ = tr.GetOrBuild(context.Background(), "/a.wav", k, nil)
		}(key)
	}
	wg.Wait()

	assert.Equal(t, int32(1), eng.maxInFlight.Load())
	assert.Equal(t, int32(3), eng.runs.Load())
}

func TestCLIEngine_Transcribe(t *testing.T) {
	workDir := t.TempDir()
	model := filepath.Join(t.TempDir(), "ggml-small.bin")
	require.NoError(t, os.WriteFile(model, []byte("model"), 0644))

	runner := &execxtest.Runner{Handler: func(_ context.Context, call execxtest.Call) execxtest.Reply {
		var outBase string
		for i, a := range call.Args {
			if a == "-of" {
				outBase = call.Args[i+1]
			}
		}
		_ = os.WriteFile(outBase+".json", []byte(`{"transcription":[
			{"offsets":{"from":0,"to":3200},"text":" Nobody tells you this."},
			{"offsets":{"from":3200,"to":3300},"text":"   "},
			{"offsets":{"from":3300,"to":7900},"text":" Here is the secret."}]}`), 0644)
		return execxtest.Reply{Lines: []string{
			"whisper_print_progress_callback: progress =  10%",
			"whisper_print_progress_callback: progress =  60%",
		}}
	}}

	tr, err := NewCLI(CLIConfig{Model: model, Language: "en", Threads: 2, WorkDir: workDir, Runner: runner}, Config{}, newCache(t))
	require.NoError(t, err)

	var progress []float64
	got, err := tr.GetOrBuild(context.Background(), "/data/temp/job_1_audio.wav", "job_1", func(p float64) {
		progress = append(progress, p)
	})

	require.NoError(t, err)
	require.Len(t, got.Segments, 2)
	assert.Equal(t, domain.Segment{Start: 3.3, End: 7.9, Text: "Here is the secret."}, got.Segments[1])
	assert.Equal(t, []float64{10, 60, 100}, progress)

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "whisper-cli", calls[0].Name)
	assert.Equal(t, []string{
		"-m", model, "-f", "/data/temp/job_1_audio.wav",
		"-of", filepath.Join(workDir, "job_1_audio_whisper"),
		"-oj", "-pp", "-t", "2", "-l", "en",
	}, calls[0].Args)
	assert.NoFileExists(t, filepath.Join(workDir, "job_1_audio_whisper.json"))
}

func TestCLIEngine_ResolveModelDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ggml-small.bin"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ggml-base.bin"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), nil, 0644))
	e := &cliEngine{stat: os.Stat, readDir: os.ReadDir}

	got, err := e.resolveModelPath(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ggml-base.bin"), got)

	_, err = e.resolveModelPath("")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	_, err = e.resolveModelPath(t.TempDir())
	assert.ErrorContains(t, err, "no .bin or .gguf")
}

func TestCLIEngine_Failure(t *testing.T) {
	model := filepath.Join(t.TempDir(), "m.bin")
	require.NoError(t, os.WriteFile(model, nil, 0644))
	runner := &execxtest.Runner{Handler: func(context.Context, execxtest.Call) execxtest.Reply {
		return execxtest.Fail("whisper-cli", 1, "error: failed to read WAV file")
	}}
	tr, err := NewCLI(CLIConfig{Model: model, WorkDir: t.TempDir(), Runner: runner}, Config{}, newCache(t))
	require.NoError(t, err)

	_, err = tr.GetOrBuild(context.Background(), "/a.wav", "job_1", nil)

	assert.ErrorContains(t, err, "failed to read WAV file")
}

func TestServerEngine_Transcribe(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "job_1_audio.wav")
	require.NoError(t, os.WriteFile(audio, []byte("RIFF"), 0644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		require.Equal(t, "/inference", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "verbose_json", r.FormValue("response_format"))
		assert.Equal(t, "de", r.FormValue("language"))
		_, _ = w.Write([]byte(`{"segments":[{"start":0.5,"end":4.0,"text":" Hallo zusammen"}]}`))
	}))
	defer srv.Close()

	tr, err := NewServer(ServerConfig{BaseURL: srv.URL + "/", Language: "de"}, Config{}, newCache(t))
	require.NoError(t, err)

	got, err := tr.GetOrBuild(context.Background(), audio, "job_1", nil)

	require.NoError(t, err)
	assert.Equal(t, []domain.Segment{{Start: 0.5, End: 4.0, Text: "Hallo zusammen"}}, got.Segments)
}

func TestServerEngine_ErrorStatus(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "a.wav")
	require.NoError(t, os.WriteFile(audio, []byte("RIFF"), 0644))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			return
		}
		http.Error(w, "bad audio", http.StatusBadRequest)
	}))
	defer srv.Close()

	tr, err := NewServer(ServerConfig{BaseURL: srv.URL}, Config{}, newCache(t))
	require.NoError(t, err)

	_, err = tr.GetOrBuild(context.Background(), audio, "job_1", nil)

	assert.ErrorContains(t, err, "bad audio")
}

func TestBuildArgs_Language(t *testing.T) {
	tests := []struct {
		name     string
		language string
		want     []string
	}{
		{name: "auto detection passed through", language: "auto", want: []string{"-l", "auto"}},
		{name: "auto any case", language: " AUTO ", want: []string{"-l", "auto"}},
		{name: "explicit language", language: "fr", want: []string{"-l", "fr"}},
		{name: "empty leaves whisper default", language: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := buildArgs("m.bin", "a.wav", "out", tt.language, 0)

			base := []string{"-m", "m.bin", "-f", "a.wav", "-of", "out", "-oj", "-pp"}
			assert.Equal(t, append(base, tt.want...), args)
		})
	}
}

func TestServerEngine_AutoLanguageAndStreamedBody(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "job_2_audio.wav")
	payload := bytes.Repeat([]byte("RIFFdata"), 256<<10)
	require.NoError(t, os.WriteFile(audio, payload, 0644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			return
		}
		assert.Equal(t, int64(-1), r.ContentLength)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "auto", r.FormValue("language"))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "job_2_audio.wav", header.Filename)
		got, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, len(payload), len(got))
		_, _ = w.Write([]byte(`{"segments":[{"start":0,"end":2,"text":"Bonjour"}]}`))
	}))
	defer srv.Close()

	tr, err := NewServer(ServerConfig{BaseURL: srv.URL, Language: "auto"}, Config{}, newCache(t))
	require.NoError(t, err)

	got, err := tr.GetOrBuild(context.Background(), audio, "job_2", nil)

	require.NoError(t, err)
	assert.Equal(t, []domain.Segment{{Start: 0, End: 2, Text: "Bonjour"}}, got.Segments)
}

func TestServerEngine_MissingAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	tr, err := NewServer(ServerConfig{BaseURL: srv.URL}, Config{}, newCache(t))
	require.NoError(t, err)

	_, err = tr.GetOrBuild(context.Background(), filepath.Join(t.TempDir(), "missing.wav"), "job_3", nil)

	assert.ErrorContains(t, err, "open audio")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7890, cfg.Port)
	assert.Equal(t, 1, cfg.MaxWorkers)
	assert.Equal(t, 15.0, cfg.MinClipDuration)
	assert.Equal(t, 60.0, cfg.MaxClipDuration)
	assert.Equal(t, 5, cfg.MaxClipsPerVideo)
	assert.Equal(t, 7.0, cfg.MinViralScore)
	assert.Equal(t, 0.5, cfg.ClipPaddingBefore)
	assert.Equal(t, []string{"viral_hooks", "emotional_peaks", "value_bombs", "humor_moments"}, cfg.ActiveCriteria)
	assert.Equal(t, "1080p", cfg.VideoQuality)
	assert.Equal(t, "gpt-4-turbo-preview", cfg.OpenAIModel)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.BehindProxy)
	assert.Equal(t, 10, cfg.SubmitLimit)
	assert.Equal(t, time.Minute, cfg.SubmitWindow)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/clipr")
	t.Setenv("MAX_WORKERS", "3")
	t.Setenv("MIN_VIRAL_SCORE", "8.5")
	t.Setenv("ACTIVE_CRITERIA", " viral_hooks , humor_moments,, ")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxWorkers)
	assert.Equal(t, 8.5, cfg.MinViralScore)
	assert.Equal(t, []string{"viral_hooks", "humor_moments"}, cfg.ActiveCriteria)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/srv/clipr/temp", cfg.TempDir())
	assert.Equal(t, "/srv/clipr/output", cfg.OutputDir())
	assert.Equal(t, "/srv/clipr/cache", cfg.CacheDir())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "bad port", key: "PORT", value: "http", wantErr: "invalid PORT"},
		{name: "bad float", key: "MIN_CLIP_DURATION", value: "short", wantErr: "invalid MIN_CLIP_DURATION"},
		{name: "bad duration", key: "SHUTDOWN_TIMEOUT", value: "soon", wantErr: "invalid SHUTDOWN_TIMEOUT"},
		{name: "zero workers", key: "MAX_WORKERS", value: "0", wantErr: "MAX_WORKERS"},
		{name: "min above max", key: "MIN_CLIP_DURATION", value: "90", wantErr: "exceeds MAX_CLIP_DURATION"},
		{name: "score out of range", key: "MIN_VIRAL_SCORE", value: "11", wantErr: "MIN_VIRAL_SCORE"},
		{name: "bad bool", key: "BEHIND_PROXY", value: "maybe", wantErr: "invalid BEHIND_PROXY"},
		{name: "zero submit limit", key: "SUBMIT_RATE_LIMIT", value: "0", wantErr: "SUBMIT_RATE_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

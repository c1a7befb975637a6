package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/clipr/internal/domain"
)

// TranscriptStore keeps one JSON file of segments per cache key.
type TranscriptStore struct {
	mu  sync.RWMutex
	dir string
}

type transcriptFile struct {
	Key      string           `json:"key"`
	Segments []domain.Segment `json:"segments"`
}

func NewTranscriptStore(dir string) (*TranscriptStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &TranscriptStore{dir: dir}, nil
}

// Path returns where the transcript for key lives on disk.
func (s *TranscriptStore) Path(key string) string {
	return filepath.Join(s.dir, safeKey(key)+"_transcript.json")
}

// Get returns domain.ErrNotFound when no transcript was saved for key.
func (s *TranscriptStore) Get(key string) ([]domain.Segment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var f transcriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode transcript %s: %w", key, err)
	}
	return f.Segments, nil
}

func (s *TranscriptStore) Save(key string, segments []domain.Segment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(transcriptFile{Key: key, Segments: segments}, "", "  ")
	if err != nil {
		return err
	}

	path := s.Path(key)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func (s *TranscriptStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func safeKey(key string) string {
	return strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
}

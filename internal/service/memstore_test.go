package service

import (
	"context"
	"sort"
	"sync"

	"github.com/bnema/clipr/internal/domain"
)

// memStore is an in-memory JobStore that keeps every written version of a job.
type memStore struct {
	mu      sync.Mutex
	jobs    map[string]domain.Job
	history map[string][]domain.Job
	clips   map[string][]domain.Clip

	// getErrs are returned by successive GetJob calls before the store answers.
	getErrs []error
	gets    int
}

func newMemStore() *memStore {
	return &memStore{
		jobs:    make(map[string]domain.Job),
		history: make(map[string][]domain.Job),
		clips:   make(map[string][]domain.Clip),
	}
}

func (m *memStore) put(job domain.Job) {
	m.jobs[job.ID] = job
	m.history[job.ID] = append(m.history[job.ID], job)
}

func (m *memStore) CreateJob(_ context.Context, job *domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(*job)
	return nil
}

func (m *memStore) GetJob(_ context.Context, id string) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if len(m.getErrs) > 0 {
		err := m.getErrs[0]
		m.getErrs = m.getErrs[1:]
		return nil, err
	}
	job, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &job, nil
}

func (m *memStore) UpdateJob(_ context.Context, job *domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[job.ID]; !ok {
		return domain.ErrNotFound
	}
	m.put(*job)
	return nil
}

func (m *memStore) CompleteJob(_ context.Context, job *domain.Job, clips []domain.Clip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(*job)
	m.clips[job.ID] = append(m.clips[job.ID], clips...)
	return nil
}

func (m *memStore) ListClips(_ context.Context, jobID string) ([]domain.Clip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Clip(nil), m.clips[jobID]...), nil
}

func (m *memStore) ListJobsByStatus(_ context.Context, statuses ...domain.JobStatus) ([]*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Job
	for _, job := range m.jobs {
		for _, s := range statuses {
			if job.Status == s {
				j := job
				out = append(out, &j)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) FailActiveJobs(_ context.Context, message string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, job := range m.jobs {
		if job.Status.IsActive() {
			job.Status = domain.JobStatusFailed
			job.ErrorMessage = message
			m.put(job)
			n++
		}
	}
	return n, nil
}

func (m *memStore) job(id string) domain.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.jobs[id]
}

func (m *memStore) statuses(id string) []domain.JobStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.JobStatus
	for _, j := range m.history[id] {
		if len(out) == 0 || out[len(out)-1] != j.Status {
			out = append(out, j.Status)
		}
	}
	return out
}

func (m *memStore) progressHistory(id string) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []int
	for _, j := range m.history[id] {
		out = append(out, j.Progress)
	}
	return out
}

func (m *memStore) steps(id string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, j := range m.history[id] {
		if len(out) == 0 || out[len(out)-1] != j.CurrentStep {
			out = append(out, j.CurrentStep)
		}
	}
	return out
}

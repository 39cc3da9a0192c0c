package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/pkg/types"
)

// probeBatchBudget caps each module run at this many sequential probe
// batches (up to Concurrency probes of at most Timeout each). The job
// deadline grants that budget to every run, plus one extra for setup.
const probeBatchBudget = 100

// newJobID generates an identifier for a job. Extracted as a variable so
// tests can make IDs deterministic.
var newJobID = defaultNewJobID

func defaultNewJobID() string {
	// Timestamp-based ID, good enough for an in-memory store.
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// Manager manages recon job lifecycle: create, execute, track, store results.
// Every job gets its own framework so concurrent jobs against different
// targets never share state.
type Manager struct {
	mu       sync.RWMutex
	jobs     map[string]*Job
	registry *module.Registry
}

// NewManager creates a job manager backed by the given module registry.
func NewManager(registry *module.Registry) *Manager {
	return &Manager{
		jobs:     make(map[string]*Job),
		registry: registry,
	}
}

// Registry exposes the backing module registry.
func (m *Manager) Registry() *module.Registry {
	return m.registry
}

// Create creates a new pending recon job and returns a snapshot of it.
func (m *Manager) Create(target types.Target, runs []module.Run, opts module.Options) *Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, len(runs))
	for i, run := range runs {
		names[i] = run.Name
	}

	job := &Job{
		ID:        newJobID(),
		Target:    target,
		Modules:   names,
		Runs:      runs,
		Options:   opts,
		Status:    StatusPending,
		CreatedAt: time.Now(),
		Progress: JobProgress{
			TotalModules: len(runs),
		},
	}
	m.jobs[job.ID] = job
	return job.snapshot()
}

// Start launches the recon job in a background goroutine.
func (m *Manager) Start(jobID string) error {
	m.mu.Lock()
	job, ok := m.jobs[jobID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("job %q not found", jobID)
	}
	job.Status = StatusRunning
	job.StartedAt = time.Now()
	m.mu.Unlock()

	go m.execute(job)
	return nil
}

func (m *Manager) execute(job *Job) {
	defer func() {
		if r := recover(); r != nil {
			m.mu.Lock()
			job.Status = StatusFailed
			job.Error = fmt.Sprintf("panic: %v", r)
			job.CompletedAt = time.Now()
			m.mu.Unlock()
		}
	}()

	ctx := context.Background()
	if job.Options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Options.Timeout*time.Duration(probeBatchBudget*(len(job.Runs)+1)))
		defer cancel()
	}

	fw := module.NewFramework(m.registry)
	fw.SetTarget(job.Target)

	for _, run := range job.Runs {
		m.mu.Lock()
		job.Progress.CurrentModule = run.Name
		m.mu.Unlock()

		opts := job.Options
		opts.Extra = run.Extra
		result := fw.RunModule(ctx, run.Name, opts)

		m.mu.Lock()
		job.Results = append(job.Results, result)
		job.Progress.CompletedModules++
		m.mu.Unlock()
	}

	m.mu.Lock()
	job.Status = StatusCompleted
	job.CompletedAt = time.Now()
	job.Progress.CurrentModule = ""
	m.mu.Unlock()
}

// Get returns a snapshot of a job by ID. The copy is detached from the
// executing goroutine, so callers can marshal it without racing execute.
func (m *Manager) Get(jobID string) (*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job %q not found", jobID)
	}
	return job.snapshot(), nil
}

// List returns snapshots of all jobs sorted by CreatedAt descending.
func (m *Manager) List() []*Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		result = append(result, j.snapshot())
	}
	sort.Slice(result, func(i, k int) bool {
		return result[i].CreatedAt.After(result[k].CreatedAt)
	})
	return result
}

// Delete removes a job from the manager.
func (m *Manager) Delete(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[jobID]; !ok {
		return fmt.Errorf("job %q not found", jobID)
	}
	delete(m.jobs, jobID)
	return nil
}

package jobs

import (
	"time"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/pkg/types"
)

// JobStatus represents the current state of a scan job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// JobProgress tracks module-level progress within a job.
type JobProgress struct {
	TotalModules     int    `json:"total_modules"`
	CompletedModules int    `json:"completed_modules"`
	CurrentModule    string `json:"current_module"`
}

// Job represents an async recon job.
type Job struct {
	ID          string               `json:"id"`
	Target      types.Target         `json:"target"`
	Modules     []string             `json:"modules"`
	Runs        []module.Run         `json:"-"`
	Options     module.Options       `json:"-"`
	Status      JobStatus            `json:"status"`
	Results     []types.ModuleResult `json:"results,omitempty"`
	Error       string               `json:"error,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	StartedAt   time.Time            `json:"started_at,omitempty"`
	CompletedAt time.Time            `json:"completed_at,omitempty"`
	Progress    JobProgress          `json:"progress"`
}

// snapshot returns a detached copy that is safe to read or marshal while
// the executing goroutine keeps mutating the live job. Callers must hold
// the manager lock.
func (j *Job) snapshot() *Job {
	c := *j
	c.Modules = append([]string(nil), j.Modules...)
	c.Runs = append([]module.Run(nil), j.Runs...)
	c.Results = append([]types.ModuleResult(nil), j.Results...)
	return &c
}

// SuccessCount returns how many modules completed without error.
func (j *Job) SuccessCount() int {
	n := 0
	for _, r := range j.Results {
		if r.Success {
			n++
		}
	}
	return n
}

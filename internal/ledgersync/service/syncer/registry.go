package syncer

import (
	"sync"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

// registry keeps running jobs and finished jobs younger than retention.
type registry struct {
	retention time.Duration

	mu   sync.Mutex
	jobs map[string]*model.SyncJob
}

func newRegistry(retention time.Duration) *registry {
	return &registry{retention: retention, jobs: make(map[string]*model.SyncJob)}
}

func (r *registry) add(job *model.SyncJob, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked(now)
	r.jobs[job.JobID] = job
}

func (r *registry) get(jobID string) (*model.SyncJob, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	return job, ok
}

func (r *registry) pruneLocked(now time.Time) {
	for id, job := range r.jobs {
		snap := job.Snapshot()
		if snap.CompletedAt != nil && now.Sub(*snap.CompletedAt) > r.retention {
			delete(r.jobs, id)
		}
	}
}

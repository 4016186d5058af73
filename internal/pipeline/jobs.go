package pipeline

import (
	"sync"
	"time"

	"github.com/complyscan/complyscan/internal/analyzer"
	"github.com/complyscan/complyscan/internal/catalog"
)

// JobStatus represents the state of an audit job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusAnalyzing JobStatus = "analyzing"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of a single document audit.
type Job struct {
	mu sync.Mutex

	ID            string               `json:"job_id"`
	Path          string               `json:"path"`
	DocType       catalog.DocumentType `json:"doc_type"`
	InvoiceAmount *float64             `json:"invoice_amount,omitempty"`

	Status JobStatus `json:"status"`
	Error  string    `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Set on completion; not read before Status is completed.
	report *analyzer.AuditReport
}

// NewJob creates a queued job with a fresh sortable ID.
func NewJob(path string, docType catalog.DocumentType, invoiceAmount *float64) *Job {
	now := time.Now()
	return &Job{
		ID:            newJobID(),
		Path:          path,
		DocType:       docType,
		InvoiceAmount: invoiceAmount,
		Status:        StatusQueued,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.UpdatedAt = time.Now()
}

// Complete marks the job done and attaches its report.
func (j *Job) Complete(report *analyzer.AuditReport) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusCompleted
	j.report = report
	j.UpdatedAt = time.Now()
}

// Fail marks the job failed with the error message.
func (j *Job) Fail(msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusFailed
	j.Error = msg
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state. Report is
// only present once the job completed.
type JobSnapshot struct {
	ID            string                `json:"job_id"`
	Path          string                `json:"path"`
	DocType       catalog.DocumentType  `json:"doc_type"`
	InvoiceAmount *float64              `json:"invoice_amount,omitempty"`
	Status        JobStatus             `json:"status"`
	Error         string                `json:"error,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Report        *analyzer.AuditReport `json:"report,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:            j.ID,
		Path:          j.Path,
		DocType:       j.DocType,
		InvoiceAmount: j.InvoiceAmount,
		Status:        j.Status,
		Error:         j.Error,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
		Report:        j.report,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
			delete(s.jobs, id)
		}
	}
}

package jobModel

import (
	"context"
	"time"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IndexInit     InternalStatus = "Init"
	NormalizeCall InternalStatus = "Normalize"
	ChunkCall     InternalStatus = "Chunk"
	EmbedAndStore InternalStatus = "EmbedAndStore"
	Error         InternalStatus = "Error"
	Complete      InternalStatus = "Complete"
)

// Job tracks one asynchronous indexing request from upload to completion.
type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	// FileName is the name the client uploaded; FilePath is where the
	// server staged the bytes for the worker.
	FileName string `json:"file_name,omitempty"`
	FilePath string `json:"file_path,omitempty"`

	DocumentType  string `json:"document_type,omitempty"`
	UnitsLoaded   int    `json:"units_loaded,omitempty"`
	ChunksIndexed int    `json:"chunks_indexed,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

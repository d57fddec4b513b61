package model

import "time"

// RunStatus tracks a document run through the store.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one processed document with its resulting contract.
type Run struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Status    RunStatus `json:"status"`
	Contract  *Contract `json:"contract,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

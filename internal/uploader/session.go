// Package uploader drives files through the direct-to-storage upload
// workflow: mint a ticket from the API, PUT the bytes straight to the
// presigned URL with progress reporting, and reconcile the store and the
// media records on removal.
//
// Session state lives in an explicit map owned by the Orchestrator; all
// transitions go through the pure apply function so the lifecycle is
// testable without any I/O.
package uploader

import "sync"

// Status is the lifecycle state of one upload session.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusUploading Status = "uploading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusDeleting  Status = "deleting"
)

// Session tracks one file from selection to completion or removal.
type Session struct {
	ID          string
	FileName    string
	ContentType string
	Size        int64
	Status      Status
	// Progress is 0-100 and never regresses while uploading.
	Progress int
	// StorageKey is empty until the ticket response arrives. Removal without
	// a key short-circuits to local cleanup only.
	StorageKey string
	// FileURL is the public URL the object will be reachable under,
	// derived from the presigned URL when the ticket arrives.
	FileURL string
	// Failed is set on transfer or deletion failure.
	Failed bool
	// Preview holds the raw bytes for local preview rendering until released.
	Preview *Preview

	// prior remembers the status to revert to when a delete fails.
	prior Status
}

type event interface{ isEvent() }

type eventStart struct{}
type eventTicket struct {
	key     string
	fileURL string
}
type eventProgress struct{ pct int }
type eventSucceeded struct{}
type eventFailed struct{}
type eventDeleting struct{}
type eventDeleteFailed struct{}

func (eventStart) isEvent()        {}
func (eventTicket) isEvent()       {}
func (eventProgress) isEvent()     {}
func (eventSucceeded) isEvent()    {}
func (eventFailed) isEvent()       {}
func (eventDeleting) isEvent()     {}
func (eventDeleteFailed) isEvent() {}

// apply returns the session after ev. Events that are invalid for the current
// status leave the session unchanged, so a late callback against a session
// that already moved on is a silent no-op.
func apply(s Session, ev event) Session {
	switch e := ev.(type) {
	case eventStart:
		if s.Status == StatusIdle {
			s.Status = StatusUploading
			s.Progress = 0
			s.Failed = false
		}
	case eventTicket:
		if s.Status == StatusUploading {
			s.StorageKey = e.key
			s.FileURL = e.fileURL
		}
	case eventProgress:
		if s.Status == StatusUploading && e.pct > s.Progress {
			if e.pct > 100 {
				e.pct = 100
			}
			s.Progress = e.pct
		}
	case eventSucceeded:
		if s.Status == StatusUploading {
			s.Status = StatusSucceeded
			s.Progress = 100
			s.Failed = false
		}
	case eventFailed:
		if s.Status == StatusUploading {
			s.Status = StatusFailed
			s.Failed = true
		}
	case eventDeleting:
		if s.Status != StatusDeleting {
			s.prior = s.Status
			s.Status = StatusDeleting
		}
	case eventDeleteFailed:
		if s.Status == StatusDeleting {
			s.Status = s.prior
			s.Failed = true
		}
	}
	return s
}

// Preview is a revocable reference to the raw file bytes, kept so a UI can
// render the file before the uploaded copy is reachable. Release must be
// called on every removal path to drop the reference; it is idempotent.
type Preview struct {
	mu       sync.Mutex
	data     []byte
	released bool
}

// NewPreview wraps data in a revocable handle.
func NewPreview(data []byte) *Preview {
	return &Preview{data: data}
}

// Bytes returns the previewed bytes, or nil after Release.
func (p *Preview) Bytes() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data
}

// Release drops the byte reference. Safe to call more than once.
func (p *Preview) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = nil
	p.released = true
}

// Released reports whether the handle has been revoked.
func (p *Preview) Released() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}

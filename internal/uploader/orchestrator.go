package uploader

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// File is one file selected for upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Flow bundles the validation limits of one upload surface. Violations are
// rejected locally, before any network call.
type Flow struct {
	// MaxFiles caps how many files one batch may contain.
	MaxFiles int
	// MaxFileSize caps the byte size of each file.
	MaxFileSize int64
	// AcceptedTypes lists accepted MIME types; a trailing "/*" matches the
	// whole top-level type, e.g. "image/*".
	AcceptedTypes []string
}

// Preset flows matching the catalog's upload surfaces.
var (
	// PosterFlow covers single-image slots (posters, profile images).
	PosterFlow = Flow{MaxFiles: 5, MaxFileSize: 5 << 20, AcceptedTypes: []string{"image/*"}}
	// GalleryFlow covers bulk image galleries.
	GalleryFlow = Flow{MaxFiles: 10, MaxFileSize: 25 << 20, AcceptedTypes: []string{"image/*"}}
	// VideoFlow covers trailers and clips.
	VideoFlow = Flow{MaxFiles: 5, MaxFileSize: 25 << 20, AcceptedTypes: []string{"video/mp4", "video/webm", "video/quicktime"}}
)

// Accepts reports whether contentType matches the flow's accepted set.
func (f Flow) Accepts(contentType string) bool {
	for _, t := range f.AcceptedTypes {
		if prefix, ok := strings.CutSuffix(t, "/*"); ok {
			if strings.HasPrefix(contentType, prefix+"/") {
				return true
			}
			continue
		}
		if contentType == t {
			return true
		}
	}
	return false
}

func (f Flow) tooManyFilesMessage() string {
	return fmt.Sprintf("You can upload up to %d files at a time.", f.MaxFiles)
}

func (f Flow) fileTooLargeMessage() string {
	return fmt.Sprintf("Each file must be less than %dMB.", f.MaxFileSize>>20)
}

// Notifier receives user-facing upload notifications.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type logNotifier struct{}

func (logNotifier) Success(msg string) { log.Printf("upload ok: %s", msg) }
func (logNotifier) Error(msg string)   { log.Printf("upload error: %s", msg) }

// Orchestrator owns the session map and drives each accepted file through
// ticket issuance, transfer, and terminal state. Files in one batch upload
// concurrently and independently: no queue, no concurrency cap, no ordering
// guarantee across files.
type Orchestrator struct {
	client   *Client
	flow     Flow
	notifier Notifier

	// OnProgress, when set before the first Add, observes every progress
	// update. Progress per session is monotonic and ends at exactly 100 on
	// success.
	OnProgress func(sessionID string, pct int)

	mu       sync.Mutex
	sessions map[string]Session
	wg       sync.WaitGroup
}

// NewOrchestrator creates an Orchestrator for one upload flow. notifier may
// be nil, in which case notifications go to the process log.
func NewOrchestrator(client *Client, flow Flow, notifier Notifier) *Orchestrator {
	if notifier == nil {
		notifier = logNotifier{}
	}
	return &Orchestrator{
		client:   client,
		flow:     flow,
		notifier: notifier,
		sessions: make(map[string]Session),
	}
}

// Add validates a batch and starts one concurrent upload per accepted file.
// It returns the session IDs of the files that passed validation. Rejected
// files produce a notification and nothing else: no session, no network call.
func (o *Orchestrator) Add(ctx context.Context, files []File) []string {
	if len(files) > o.flow.MaxFiles {
		o.notifier.Error(o.flow.tooManyFilesMessage())
		return nil
	}

	var ids []string
	for _, f := range files {
		if !o.flow.Accepts(f.ContentType) {
			o.notifier.Error(fmt.Sprintf("File type %s is not allowed.", f.ContentType))
			continue
		}
		if int64(len(f.Data)) > o.flow.MaxFileSize {
			o.notifier.Error(o.flow.fileTooLargeMessage())
			continue
		}

		s := Session{
			ID:          uuid.New().String(),
			FileName:    f.Name,
			ContentType: f.ContentType,
			Size:        int64(len(f.Data)),
			Status:      StatusIdle,
			Preview:     NewPreview(f.Data),
		}
		s = apply(s, eventStart{})

		o.mu.Lock()
		o.sessions[s.ID] = s
		o.mu.Unlock()

		ids = append(ids, s.ID)
		o.wg.Add(1)
		go func(id string, f File) {
			defer o.wg.Done()
			o.upload(ctx, id, f)
		}(s.ID, f)
	}
	return ids
}

// upload runs the per-file algorithm: ticket, transfer, terminal state.
func (o *Orchestrator) upload(ctx context.Context, id string, f File) {
	ticket, err := o.client.CreateTicket(ctx, f.Name, f.ContentType, int64(len(f.Data)))
	if err != nil {
		o.update(id, eventFailed{})
		o.notifier.Error(err.Error())
		return
	}

	o.update(id, eventTicket{key: ticket.Key, fileURL: PublicURL(ticket.PresignedURL)})

	err = o.client.Put(ctx, ticket.PresignedURL, f.ContentType, f.Data, func(pct int) {
		o.update(id, eventProgress{pct: pct})
		if o.OnProgress != nil {
			o.OnProgress(id, pct)
		}
	})
	if err != nil {
		o.update(id, eventFailed{})
		o.notifier.Error(err.Error())
		return
	}

	o.update(id, eventSucceeded{})
	o.notifier.Success(fmt.Sprintf("%s uploaded successfully.", f.Name))
}

// Remove drops a session. With no storage key the removal is purely local:
// the preview is released and no remote call is made. With a key, the
// session moves to deleting and the object is deleted from the store; on
// failure the session reverts to its prior status with the failure flag set
// so the user can retry.
func (o *Orchestrator) Remove(ctx context.Context, id string) error {
	o.mu.Lock()
	s, ok := o.sessions[id]
	if !ok {
		o.mu.Unlock()
		return nil
	}

	if s.StorageKey == "" {
		o.dropLocked(id, s)
		o.mu.Unlock()
		return nil
	}

	s = apply(s, eventDeleting{})
	o.sessions[id] = s
	o.mu.Unlock()

	if err := o.client.DeleteFile(ctx, s.StorageKey); err != nil {
		o.update(id, eventDeleteFailed{})
		o.notifier.Error(err.Error())
		return err
	}

	o.mu.Lock()
	if s, ok := o.sessions[id]; ok {
		o.dropLocked(id, s)
	}
	o.mu.Unlock()
	return nil
}

// dropLocked releases the preview and removes the session. Caller holds o.mu.
func (o *Orchestrator) dropLocked(id string, s Session) {
	if s.Preview != nil {
		s.Preview.Release()
	}
	delete(o.sessions, id)
}

// update applies ev to the session if it is still tracked. Updates against a
// removed session are silent no-ops: an in-flight transfer is never aborted
// by removal, its late callbacks just land nowhere.
func (o *Orchestrator) update(id string, ev event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, ok := o.sessions[id]
	if !ok {
		return
	}
	o.sessions[id] = apply(s, ev)
}

// Session returns a snapshot of one session.
func (o *Orchestrator) Session(id string) (Session, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, ok := o.sessions[id]
	return s, ok
}

// Sessions returns a snapshot of all tracked sessions.
func (o *Orchestrator) Sessions() []Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Session, 0, len(o.sessions))
	for _, s := range o.sessions {
		out = append(out, s)
	}
	return out
}

// Wait blocks until every started upload has reached a terminal state.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

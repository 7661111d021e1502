package uploader

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureNotifier records notifications for assertions.
type captureNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *captureNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *captureNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *captureNotifier) allErrors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

// testBackend fakes the catalog API and the blob store behind it.
type testBackend struct {
	api  *httptest.Server
	blob *httptest.Server

	ticketCalls atomic.Int64
	putCalls    atomic.Int64
	deleteCalls atomic.Int64

	mu          sync.Mutex
	deletedKeys []string
	putStatus   int
	deleteBody  string
	deleteCode  int
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{putStatus: http.StatusOK, deleteCode: http.StatusOK}

	b.blob = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		b.putCalls.Add(1)
		w.WriteHeader(b.putStatus)
	}))
	t.Cleanup(b.blob.Close)

	b.api = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/file":
			b.ticketCalls.Add(1)
			var req struct {
				FileName string `json:"fileName"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			key := uuid.New().String() + "-" + req.FileName
			_ = json.NewEncoder(w).Encode(map[string]string{
				"presignedUrl": b.blob.URL + "/media/" + key + "?X-Amz-Signature=abc",
				"key":          key,
			})
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/file/"):
			b.deleteCalls.Add(1)
			b.mu.Lock()
			b.deletedKeys = append(b.deletedKeys, strings.TrimPrefix(r.URL.Path, "/api/file/"))
			code, body := b.deleteCode, b.deleteBody
			b.mu.Unlock()
			w.WriteHeader(code)
			if body != "" {
				_, _ = w.Write([]byte(body))
			} else {
				_, _ = w.Write([]byte(`{"message":"file deleted successfully"}`))
			}
		case r.Method == http.MethodPost && r.URL.Path == "/api/media":
			_ = r.ParseForm()
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode([]map[string]interface{}{{
				"id":      uuid.New().String(),
				"fileUrl": r.PostFormValue("fileUrl"),
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(b.api.Close)

	return b
}

func TestUploadSucceedsEndToEnd(t *testing.T) {
	b := newTestBackend(t)
	notifier := &captureNotifier{}
	client := NewClient(b.api.URL, "tok")
	orch := NewOrchestrator(client, PosterFlow, notifier)

	var mu sync.Mutex
	var observed []int
	orch.OnProgress = func(id string, pct int) {
		mu.Lock()
		observed = append(observed, pct)
		mu.Unlock()
	}

	jpeg := make([]byte, 2<<20) // 2MB
	ids := orch.Add(context.Background(), []File{{Name: "photo.jpg", ContentType: "image/jpeg", Data: jpeg}})
	require.Len(t, ids, 1)
	orch.Wait()

	s, ok := orch.Session(ids[0])
	require.True(t, ok)
	assert.Equal(t, StatusSucceeded, s.Status)
	assert.Equal(t, 100, s.Progress)
	assert.False(t, s.Failed)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}-photo\.jpg$`), s.StorageKey)
	assert.Equal(t, b.blob.URL+"/media/"+s.StorageKey, s.FileURL, "file URL is the presigned URL without its signature")

	// Progress is monotonic and ends at exactly 100.
	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, observed)
	for i := 1; i < len(observed); i++ {
		assert.GreaterOrEqual(t, observed[i], observed[i-1])
	}
	assert.Equal(t, 100, observed[len(observed)-1])

	// Explicit registration step.
	records, err := client.RegisterMedia(context.Background(), Registration{
		ContentID: "c1",
		FileURL:   s.FileURL,
		Type:      "image",
		Category:  "poster",
		Title:     s.FileName,
		FileSize:  s.Size,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
}

func TestOversizedFileIsRejectedLocally(t *testing.T) {
	b := newTestBackend(t)
	notifier := &captureNotifier{}
	orch := NewOrchestrator(NewClient(b.api.URL, ""), PosterFlow, notifier)

	big := make([]byte, 30<<20) // 30MB against a 5MB ceiling
	ids := orch.Add(context.Background(), []File{{Name: "huge.jpg", ContentType: "image/jpeg", Data: big}})
	orch.Wait()

	assert.Empty(t, ids, "no session is created for a rejected file")
	assert.Contains(t, notifier.allErrors(), "Each file must be less than 5MB.")
	assert.Zero(t, b.ticketCalls.Load(), "no ticket request for a rejected file")
	assert.Zero(t, b.putCalls.Load())
}

func TestWrongMIMETypeIsRejectedLocally(t *testing.T) {
	b := newTestBackend(t)
	notifier := &captureNotifier{}
	orch := NewOrchestrator(NewClient(b.api.URL, ""), PosterFlow, notifier)

	ids := orch.Add(context.Background(), []File{{Name: "notes.pdf", ContentType: "application/pdf", Data: []byte("pdf")}})
	orch.Wait()

	assert.Empty(t, ids)
	assert.Zero(t, b.ticketCalls.Load())
	require.Len(t, notifier.allErrors(), 1)
	assert.Contains(t, notifier.allErrors()[0], "application/pdf")
}

func TestTooManyFilesRejectsBatch(t *testing.T) {
	b := newTestBackend(t)
	notifier := &captureNotifier{}
	orch := NewOrchestrator(NewClient(b.api.URL, ""), PosterFlow, notifier)

	var files []File
	for i := 0; i < 6; i++ {
		files = append(files, File{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("x")})
	}
	ids := orch.Add(context.Background(), files)
	orch.Wait()

	assert.Empty(t, ids)
	assert.Contains(t, notifier.allErrors(), "You can upload up to 5 files at a time.")
	assert.Zero(t, b.ticketCalls.Load())
}

func TestExpiredPresignedURLFailsSession(t *testing.T) {
	b := newTestBackend(t)
	b.putStatus = http.StatusForbidden
	notifier := &captureNotifier{}
	orch := NewOrchestrator(NewClient(b.api.URL, ""), PosterFlow, notifier)

	ids := orch.Add(context.Background(), []File{{Name: "late.jpg", ContentType: "image/jpeg", Data: []byte("bytes")}})
	require.Len(t, ids, 1)
	orch.Wait()

	s, ok := orch.Session(ids[0])
	require.True(t, ok)
	assert.Equal(t, StatusFailed, s.Status)
	assert.True(t, s.Failed)

	errs := notifier.allErrors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "403", "notification carries the HTTP status")
}

func TestRemoveWithoutKeyIsLocalOnly(t *testing.T) {
	b := newTestBackend(t)
	notifier := &captureNotifier{}
	// Ticket issuance fails, so the session never gets a storage key.
	badAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"storage unreachable"}`))
	}))
	defer badAPI.Close()

	orch := NewOrchestrator(NewClient(badAPI.URL, ""), PosterFlow, notifier)
	ids := orch.Add(context.Background(), []File{{Name: "p.jpg", ContentType: "image/jpeg", Data: []byte("img")}})
	require.Len(t, ids, 1)
	orch.Wait()

	s, ok := orch.Session(ids[0])
	require.True(t, ok)
	require.Empty(t, s.StorageKey)
	preview := s.Preview

	require.NoError(t, orch.Remove(context.Background(), ids[0]))

	_, ok = orch.Session(ids[0])
	assert.False(t, ok, "session is gone after removal")
	assert.True(t, preview.Released(), "preview handle is freed")
	assert.Zero(t, b.deleteCalls.Load(), "no remote call for a keyless removal")
}

func TestRemoveWithKeyDeletesExactlyOnce(t *testing.T) {
	b := newTestBackend(t)
	orch := NewOrchestrator(NewClient(b.api.URL, ""), PosterFlow, &captureNotifier{})

	ids := orch.Add(context.Background(), []File{{Name: "g.jpg", ContentType: "image/jpeg", Data: []byte("img")}})
	require.Len(t, ids, 1)
	orch.Wait()

	s, ok := orch.Session(ids[0])
	require.True(t, ok)
	require.Equal(t, StatusSucceeded, s.Status)
	key := s.StorageKey
	preview := s.Preview

	require.NoError(t, orch.Remove(context.Background(), ids[0]))

	assert.Equal(t, int64(1), b.deleteCalls.Load())
	b.mu.Lock()
	assert.Equal(t, []string{key}, b.deletedKeys)
	b.mu.Unlock()

	_, ok = orch.Session(ids[0])
	assert.False(t, ok)
	assert.True(t, preview.Released())
}

func TestRemoveFailureRevertsSession(t *testing.T) {
	b := newTestBackend(t)
	b.mu.Lock()
	b.deleteCode = http.StatusInternalServerError
	b.deleteBody = `{"error":"boom"}`
	b.mu.Unlock()

	notifier := &captureNotifier{}
	orch := NewOrchestrator(NewClient(b.api.URL, ""), PosterFlow, notifier)

	ids := orch.Add(context.Background(), []File{{Name: "k.jpg", ContentType: "image/jpeg", Data: []byte("img")}})
	require.Len(t, ids, 1)
	orch.Wait()

	err := orch.Remove(context.Background(), ids[0])
	require.Error(t, err)

	s, ok := orch.Session(ids[0])
	require.True(t, ok, "session survives a failed delete so the user can retry")
	assert.Equal(t, StatusSucceeded, s.Status, "reverted to the prior terminal status")
	assert.True(t, s.Failed)
	assert.False(t, s.Preview.Released(), "preview stays intact for retry")
	assert.Contains(t, notifier.allErrors(), "boom")
}

func TestBatchUploadsRunIndependently(t *testing.T) {
	b := newTestBackend(t)
	orch := NewOrchestrator(NewClient(b.api.URL, ""), GalleryFlow, &captureNotifier{})

	var files []File
	for i := 0; i < 4; i++ {
		files = append(files, File{Name: "img.png", ContentType: "image/png", Data: make([]byte, 1024)})
	}
	ids := orch.Add(context.Background(), files)
	require.Len(t, ids, 4)
	orch.Wait()

	for _, id := range ids {
		s, ok := orch.Session(id)
		require.True(t, ok)
		assert.Equal(t, StatusSucceeded, s.Status)
		assert.Equal(t, 100, s.Progress)
	}
	assert.Equal(t, int64(4), b.ticketCalls.Load())
	assert.Equal(t, int64(4), b.putCalls.Load())
}

func TestRemoveUnknownSessionIsNoOp(t *testing.T) {
	b := newTestBackend(t)
	orch := NewOrchestrator(NewClient(b.api.URL, ""), PosterFlow, &captureNotifier{})

	require.NoError(t, orch.Remove(context.Background(), "nope"))
	assert.Zero(t, b.deleteCalls.Load())
}

package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage implements storage.Storage in memory.
type fakeStorage struct {
	presignErr  error
	deleteErr   error
	deletedKeys []string
	lastExpiry  time.Duration
}

func (f *fakeStorage) PresignedPutURL(_ context.Context, key string, expiry time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	f.lastExpiry = expiry
	return "http://store:9000/media/" + key + "?X-Amz-Signature=abc", nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedKeys = append(f.deletedKeys, key)
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "http://store:9000/media/" + key
}

func newTestRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/file", h.CreateTicket)
	r.Delete("/api/file/{key}", h.DeleteFile)
	return r
}

func TestCreateTicket(t *testing.T) {
	t.Run("mints url and key", func(t *testing.T) {
		store := &fakeStorage{}
		h := NewHandler(NewService(store, 360))

		body, _ := json.Marshal(TicketRequest{FileName: "my photo.jpg", ContentType: "image/jpeg", Size: 2097152})
		req := httptest.NewRequest(http.MethodPost, "/api/file", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		newTestRouter(h).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var ticket Ticket
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ticket))
		assert.Regexp(t, `^[0-9a-f-]{36}-my_photo\.jpg$`, ticket.Key, "uuid prefix plus sanitized filename")
		assert.Contains(t, ticket.PresignedURL, ticket.Key)
		assert.Equal(t, 360*time.Second, store.lastExpiry)
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		h := NewHandler(NewService(&fakeStorage{}, 360))

		for _, body := range []string{
			`{"fileName":"","contentType":"image/jpeg","size":10}`,
			`{"fileName":"a.jpg","contentType":"","size":10}`,
			`{"fileName":"a.jpg","contentType":"image/jpeg","size":0}`,
			`{"fileName":"a.jpg","contentType":"image/jpeg","size":-5}`,
			`not json`,
		} {
			req := httptest.NewRequest(http.MethodPost, "/api/file", bytes.NewReader([]byte(body)))
			rec := httptest.NewRecorder()
			newTestRouter(h).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
		}
	})

	t.Run("storage failure yields 500 with error body", func(t *testing.T) {
		h := NewHandler(NewService(&fakeStorage{presignErr: errors.New("minio down")}, 360))

		body, _ := json.Marshal(TicketRequest{FileName: "a.jpg", ContentType: "image/jpeg", Size: 10})
		req := httptest.NewRequest(http.MethodPost, "/api/file", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		newTestRouter(h).ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["error"])
	})
}

func TestDeleteFile(t *testing.T) {
	t.Run("deletes by key", func(t *testing.T) {
		store := &fakeStorage{}
		h := NewHandler(NewService(store, 360))

		req := httptest.NewRequest(http.MethodDelete, "/api/file/abc-photo.jpg", nil)
		rec := httptest.NewRecorder()
		newTestRouter(h).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"abc-photo.jpg"}, store.deletedKeys)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["message"])
	})

	t.Run("missing key yields 400", func(t *testing.T) {
		h := NewHandler(NewService(&fakeStorage{}, 360))

		// Direct call with no route context, as when the key segment is absent.
		req := httptest.NewRequest(http.MethodDelete, "/api/file/", nil)
		rec := httptest.NewRecorder()
		h.DeleteFile(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage failure yields 500", func(t *testing.T) {
		h := NewHandler(NewService(&fakeStorage{deleteErr: errors.New("minio down")}, 360))

		req := httptest.NewRequest(http.MethodDelete, "/api/file/abc", nil)
		rec := httptest.NewRecorder()
		newTestRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"photo.jpg", "photo.jpg"},
		{"my photo.jpg", "my_photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\a\poster.png`, "poster.png"},
		{"trailer (final) #2.mp4", "trailer__final___2.mp4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFileName(tt.in), "input %q", tt.in)
	}
}

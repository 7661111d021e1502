package uploader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	s := Session{ID: "s1", FileName: "poster.jpg", Status: StatusIdle}

	s = apply(s, eventStart{})
	require.Equal(t, StatusUploading, s.Status)
	require.Equal(t, 0, s.Progress)

	s = apply(s, eventTicket{key: "abc-poster.jpg", fileURL: "http://store/media/abc-poster.jpg"})
	assert.Equal(t, "abc-poster.jpg", s.StorageKey)
	assert.Equal(t, "http://store/media/abc-poster.jpg", s.FileURL)

	s = apply(s, eventProgress{pct: 40})
	s = apply(s, eventSucceeded{})
	assert.Equal(t, StatusSucceeded, s.Status)
	assert.Equal(t, 100, s.Progress)
	assert.False(t, s.Failed)
}

func TestSessionProgressMonotonic(t *testing.T) {
	s := apply(Session{Status: StatusIdle}, eventStart{})

	for _, pct := range []int{10, 55, 30, 55, 90, 5} {
		s = apply(s, eventProgress{pct: pct})
	}
	assert.Equal(t, 90, s.Progress, "progress must never regress")

	s = apply(s, eventProgress{pct: 250})
	assert.Equal(t, 100, s.Progress, "progress is clamped to 100")
}

func TestSessionFailureKeepsProgress(t *testing.T) {
	s := apply(Session{Status: StatusIdle}, eventStart{})
	s = apply(s, eventProgress{pct: 73})

	s = apply(s, eventFailed{})
	assert.Equal(t, StatusFailed, s.Status)
	assert.True(t, s.Failed)
	assert.Equal(t, 73, s.Progress, "last known progress is preserved on failure")
}

func TestSessionDeleteFailureRevertsToPriorStatus(t *testing.T) {
	t.Run("from succeeded", func(t *testing.T) {
		s := apply(Session{Status: StatusIdle}, eventStart{})
		s = apply(s, eventSucceeded{})

		s = apply(s, eventDeleting{})
		require.Equal(t, StatusDeleting, s.Status)

		s = apply(s, eventDeleteFailed{})
		assert.Equal(t, StatusSucceeded, s.Status)
		assert.True(t, s.Failed)
	})

	t.Run("from failed", func(t *testing.T) {
		s := apply(Session{Status: StatusIdle}, eventStart{})
		s = apply(s, eventFailed{})

		s = apply(s, eventDeleting{})
		s = apply(s, eventDeleteFailed{})
		assert.Equal(t, StatusFailed, s.Status)
		assert.True(t, s.Failed)
	})
}

func TestSessionInvalidEventsAreNoOps(t *testing.T) {
	s := apply(Session{Status: StatusIdle}, eventStart{})
	s = apply(s, eventSucceeded{})

	// Terminal sessions ignore late transfer callbacks.
	after := apply(s, eventProgress{pct: 10})
	assert.Equal(t, s, after)

	after = apply(s, eventFailed{})
	assert.Equal(t, s, after)

	after = apply(s, eventStart{})
	assert.Equal(t, s, after)
}

func TestPreviewRelease(t *testing.T) {
	p := NewPreview([]byte("raw bytes"))
	require.Equal(t, []byte("raw bytes"), p.Bytes())
	require.False(t, p.Released())

	p.Release()
	assert.Nil(t, p.Bytes())
	assert.True(t, p.Released())

	// Idempotent.
	p.Release()
	assert.True(t, p.Released())
}
